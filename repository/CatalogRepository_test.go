package repository

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogServer(t *testing.T, routes map[string]func(w http.ResponseWriter)) *CatalogRepo {
	t.Helper()
	mux := http.NewServeMux()
	for path, h := range routes {
		h := h
		path := path
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			h(w)
		})
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	repo, err := NewCatalogRepository(srv.URL+"/api/v1/", srv.Client(), nil)
	require.NoError(t, err)
	return repo
}

func writeJSON(body string) func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func TestCatalogRepo_GetProducts(t *testing.T) {
	repo := newCatalogServer(t, map[string]func(http.ResponseWriter){
		"/api/v1/products": writeJSON(`{"results":2,"data":[
			{"_id":"p1","title":"Shirt","price":10,"imageCover":"s.jpg","ratingsAverage":4.5,
			 "brand":{"_id":"b1","name":"Acme"},"category":{"_id":"c1","name":"Men"}},
			{"_id":"p2","title":"Bag","price":149.99,"images":["b1.jpg"]}]}`),
	})

	products, err := repo.GetProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "p1", products[0].Id)
	assert.True(t, decimal.NewFromInt(10).Equal(products[0].Price))
	assert.Equal(t, "Acme", products[0].Brand.Name)
	assert.Equal(t, "Men", products[0].Category.Name)
	assert.True(t, decimal.RequireFromString("149.99").Equal(products[1].Price))
	assert.Equal(t, "b1.jpg", products[1].ImageRef())
}

func TestCatalogRepo_GetProductById(t *testing.T) {
	repo := newCatalogServer(t, map[string]func(http.ResponseWriter){
		"/api/v1/products/p1":   writeJSON(`{"data":{"_id":"p1","title":"Shirt","price":10}}`),
		"/api/v1/products/gone": writeJSON(`{"data":null}`),
	})

	p, err := repo.GetProductById(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Shirt", p.Title)

	_, err = repo.GetProductById(context.Background(), "gone")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrNotFoundError)

	var fe *models.FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "Failed to fetch product", fe.Message)
}

func TestCatalogRepo_BrandsAndCategories(t *testing.T) {
	repo := newCatalogServer(t, map[string]func(http.ResponseWriter){
		"/api/v1/brands":     writeJSON(`{"data":[{"_id":"b1","name":"Acme","slug":"acme","image":"a.png"}]}`),
		"/api/v1/categories": writeJSON(`{"data":[{"_id":"c1","name":"Men"},{"_id":"c2","name":"Women"}]}`),
	})

	brands, err := repo.GetBrands(context.Background())
	require.NoError(t, err)
	require.Len(t, brands, 1)
	assert.Equal(t, "acme", brands[0].Slug)

	cats, err := repo.GetCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, cats, 2)
}

func TestCatalogRepo_Failures(t *testing.T) {
	repo := newCatalogServer(t, map[string]func(http.ResponseWriter){
		"/api/v1/products": func(w http.ResponseWriter) {
			http.Error(w, "boom", http.StatusInternalServerError)
		},
		"/api/v1/brands":     writeJSON(`{"data":[`),
		"/api/v1/categories": writeJSON(`{"data":{"_id":"c1"}}`),
	})

	tests := []struct {
		name    string
		call    func() error
		message string
		status  int
	}{
		{"non 2xx", func() error { _, err := repo.GetProducts(context.Background()); return err }, "Failed to fetch products", http.StatusInternalServerError},
		{"malformed envelope", func() error { _, err := repo.GetBrands(context.Background()); return err }, "Failed to fetch brands", http.StatusOK},
		{"unexpected data shape", func() error { _, err := repo.GetCategories(context.Background()); return err }, "Failed to fetch categories", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			var fe *models.FetchError
			require.True(t, errors.As(err, &fe), "got %v", err)
			assert.Equal(t, tt.message, fe.Message)
			assert.Equal(t, tt.status, fe.Status)
			assert.Contains(t, fe.Error(), tt.message)
		})
	}
}

func TestCatalogRepo_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	repo, err := NewCatalogRepository(url, nil, nil)
	require.NoError(t, err)

	_, err = repo.GetBrands(context.Background())
	var fe *models.FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, 0, fe.Status)
	assert.NotNil(t, fe.Err)
}

func TestNewCatalogRepository_RejectsRelativeURL(t *testing.T) {
	_, err := NewCatalogRepository("/api/v1", nil, nil)
	assert.Error(t, err)
}
