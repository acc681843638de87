package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront/entities"
	"storefront/models"

	"go.uber.org/zap"
)

// CartRepository persists the cart line items, in display order, under CartKey.
type CartRepository interface {
	GetCart(ctx context.Context) ([]entities.CartLineItem, error)
	SetCart(ctx context.Context, items []entities.CartLineItem) error
}

type CartRepo struct {
	p   Persistence
	log *zap.Logger
}

func NewCartRepository(p Persistence, log *zap.Logger) (*CartRepo, error) {
	if p == nil {
		return nil, errors.New("persistence must be non-nil")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &CartRepo{p: p, log: log}, nil
}

func checkCart(recs []models.CartLineRecord) error {
	seen := make(map[string]struct{}, len(recs))
	for _, r := range recs {
		if r.ProductId == "" {
			return errors.New("line item without product id")
		}
		if r.Quantity < 1 {
			return fmt.Errorf("line item %s has quantity %d", r.ProductId, r.Quantity)
		}
		if _, dup := seen[r.ProductId]; dup {
			return fmt.Errorf("duplicate line item %s", r.ProductId)
		}
		seen[r.ProductId] = struct{}{}
	}
	return nil
}

// GetCart returns an empty cart when nothing, or nothing valid, is stored.
func (c *CartRepo) GetCart(ctx context.Context) ([]entities.CartLineItem, error) {
	recs, _, err := loadRecord(ctx, c.p, c.log, CartKey, checkCart)
	if err != nil {
		return nil, err
	}
	items := make([]entities.CartLineItem, 0, len(recs))
	for _, r := range recs {
		li := entities.CartLineItem{
			ProductId: r.ProductId,
			Title:     r.Title,
			Price:     r.Price,
			ImageRef:  r.ImageRef,
			Quantity:  r.Quantity,
		}
		if r.Brand != nil {
			li.Brand = &entities.Brand{Id: r.Brand.Id, Name: r.Brand.Name}
		}
		items = append(items, li)
	}
	return items, nil
}

func (c *CartRepo) SetCart(ctx context.Context, items []entities.CartLineItem) error {
	recs := make([]models.CartLineRecord, 0, len(items))
	for _, li := range items {
		r := models.CartLineRecord{
			ProductId: li.ProductId,
			Title:     li.Title,
			Price:     li.Price,
			ImageRef:  li.ImageRef,
			Quantity:  li.Quantity,
		}
		if li.Brand != nil {
			r.Brand = &models.BrandRecord{Id: li.Brand.Id, Name: li.Brand.Name}
		}
		recs = append(recs, r)
	}
	return saveRecord(ctx, c.p, c.log, CartKey, recs)
}
