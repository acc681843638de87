package repository

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"storefront/entities"
	"storefront/models"

	"go.uber.org/zap"
)

// CatalogRepository reads the remote catalog. Every call is one GET with no
// retry and no caching.
type CatalogRepository interface {
	GetProducts(ctx context.Context) ([]entities.Product, error)
	GetProductById(ctx context.Context, id string) (entities.Product, error)
	GetBrands(ctx context.Context) ([]entities.Brand, error)
	GetCategories(ctx context.Context) ([]entities.Category, error)
}

type CatalogRepo struct {
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

func NewCatalogRepository(baseURL string, client *http.Client, log *zap.Logger) (*CatalogRepo, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.New("catalog base url must be absolute")
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &CatalogRepo{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		log:     log,
	}, nil
}

type envelope struct {
	Data json.RawMessage `json:"data"`
}

func (c *CatalogRepo) GetProducts(ctx context.Context) ([]entities.Product, error) {
	return fetch[[]entities.Product](ctx, c, "products", "/products", "Failed to fetch products")
}

func (c *CatalogRepo) GetProductById(ctx context.Context, id string) (entities.Product, error) {
	p, err := fetch[entities.Product](ctx, c, "product", "/products/"+url.PathEscape(id), "Failed to fetch product")
	if err != nil {
		return p, err
	}
	if p.Id == "" {
		return p, &models.FetchError{Op: "product", Status: http.StatusOK, Message: "Failed to fetch product", Err: models.ErrNotFoundError}
	}
	return p, nil
}

func (c *CatalogRepo) GetBrands(ctx context.Context) ([]entities.Brand, error) {
	return fetch[[]entities.Brand](ctx, c, "brands", "/brands", "Failed to fetch brands")
}

func (c *CatalogRepo) GetCategories(ctx context.Context) ([]entities.Category, error) {
	return fetch[[]entities.Category](ctx, c, "categories", "/categories", "Failed to fetch categories")
}

func fetch[T any](ctx context.Context, c *CatalogRepo, op, path, message string) (res T, err error) {
	fail := func(status int, cause error) error {
		c.log.Error("fetch: "+message, zap.String("path", path), zap.Int("status", status), zap.Error(cause))
		return &models.FetchError{Op: op, Status: status, Message: message, Err: cause}
	}

	req, e := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if e != nil {
		err = fail(0, e)
		return
	}
	req.Header.Set("Accept", "application/json")

	resp, e := c.client.Do(req)
	if e != nil {
		err = fail(0, e)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		err = fail(resp.StatusCode, nil)
		return
	}

	var env envelope
	if e = json.NewDecoder(resp.Body).Decode(&env); e != nil {
		err = fail(resp.StatusCode, e)
		return
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return
	}
	if e = json.Unmarshal(env.Data, &res); e != nil {
		err = fail(resp.StatusCode, e)
	}
	return
}
