package repository

import (
	"context"
	"testing"

	"storefront/entities"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartRepo_RoundTrip(t *testing.T) {
	ctx := context.Background()
	p := NewMemoryPersistence()
	repo, err := NewCartRepository(p, nil)
	require.NoError(t, err)

	items, err := repo.GetCart(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	want := []entities.CartLineItem{
		{ProductId: "p2", Title: "Bag", Price: decimal.RequireFromString("149.99"), ImageRef: "bag.jpg", Quantity: 1},
		{ProductId: "p1", Title: "Shirt", Price: decimal.NewFromInt(10), ImageRef: "s.jpg", Quantity: 3,
			Brand: &entities.Brand{Id: "b1", Name: "Acme"}},
	}
	require.NoError(t, repo.SetCart(ctx, want))

	reloaded, err := NewCartRepository(p, nil)
	require.NoError(t, err)
	got, err := reloaded.GetCart(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for i := range want {
		assert.Equal(t, want[i].ProductId, got[i].ProductId)
		assert.Equal(t, want[i].Title, got[i].Title)
		assert.True(t, want[i].Price.Equal(got[i].Price))
		assert.Equal(t, want[i].ImageRef, got[i].ImageRef)
		assert.Equal(t, want[i].Quantity, got[i].Quantity)
		assert.Equal(t, want[i].Brand, got[i].Brand)
	}
}

func TestCartRepo_CorruptRecord(t *testing.T) {
	ctx := context.Background()

	for name, payload := range map[string]string{
		"not json":       `[{"id":"p1"`,
		"object":         `{"id":"p1"}`,
		"zero quantity":  `[{"id":"p1","price":"1","quantity":0}]`,
		"missing id":     `[{"price":"1","quantity":1}]`,
		"duplicate id":   `[{"id":"p1","price":"1","quantity":1},{"id":"p1","price":"1","quantity":2}]`,
		"bad price type": `[{"id":"p1","price":true,"quantity":1}]`,
	} {
		t.Run(name, func(t *testing.T) {
			p := NewMemoryPersistence()
			require.NoError(t, p.Set(ctx, CartKey, []byte(payload)))
			repo, err := NewCartRepository(p, nil)
			require.NoError(t, err)

			items, err := repo.GetCart(ctx)
			require.NoError(t, err)
			assert.Empty(t, items)
		})
	}
}
