package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"storefront/entities"
	"storefront/models"
	"storefront/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CartService owns the cart line items. Mutations persist the resulting cart
// before committing it in memory, so a failed write keeps the previous cart.
type CartService struct {
	mu    sync.Mutex
	cr    repository.CartRepository
	log   *zap.Logger
	items []entities.CartLineItem
}

func NewCartService(ctx context.Context, cartRepo repository.CartRepository, log *zap.Logger) (*CartService, error) {
	if cartRepo == nil {
		return nil, errors.New("cart repository must be non-nil")
	}
	if log == nil {
		log = zap.NewNop()
	}
	items, err := cartRepo.GetCart(ctx)
	if err != nil {
		return nil, err
	}
	return &CartService{cr: cartRepo, log: log, items: items}, nil
}

func lineFromProduct(p entities.Product) entities.CartLineItem {
	return entities.CartLineItem{
		ProductId: p.Id,
		Title:     p.Title,
		Price:     p.Price,
		ImageRef:  p.ImageRef(),
		Brand:     p.Brand,
		Quantity:  1,
	}
}

func (cs *CartService) indexOf(productId string) int {
	return slices.IndexFunc(cs.items, func(li entities.CartLineItem) bool {
		return li.ProductId == productId
	})
}

// commit must be called with cs.mu held.
func (cs *CartService) commit(ctx context.Context, next []entities.CartLineItem) (entities.Cart, error) {
	if err := cs.cr.SetCart(ctx, next); err != nil {
		cs.log.Error("commit: persist cart", zap.Error(err))
		return entities.NewCart(cs.items), err
	}
	cs.items = next
	return entities.NewCart(next), nil
}

// AddItem increments the quantity of a product already in the cart, or
// appends it with quantity 1.
func (cs *CartService) AddItem(ctx context.Context, product entities.Product) (entities.Cart, error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if product.Id == "" {
		return entities.NewCart(cs.items), fmt.Errorf("product without id: %w", models.ErrBadRequest)
	}
	next := slices.Clone(cs.items)
	if i := cs.indexOf(product.Id); i >= 0 {
		next[i].Quantity++
	} else {
		next = append(next, lineFromProduct(product))
	}
	cart, err := cs.commit(ctx, next)
	if err == nil {
		cs.log.Debug("added to cart", zap.String("product", product.Id), zap.Int("items", cart.ItemCount))
	}
	return cart, err
}

// SetQuantity sets the quantity exactly. A quantity below 1 removes the line
// item; an unknown product id leaves the cart unchanged.
func (cs *CartService) SetQuantity(ctx context.Context, productId string, quantity int) (entities.Cart, error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if quantity < 1 {
		return cs.removeLocked(ctx, productId)
	}
	i := cs.indexOf(productId)
	if i < 0 || cs.items[i].Quantity == quantity {
		return entities.NewCart(cs.items), nil
	}
	next := slices.Clone(cs.items)
	next[i].Quantity = quantity
	return cs.commit(ctx, next)
}

func (cs *CartService) RemoveItem(ctx context.Context, productId string) (entities.Cart, error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.removeLocked(ctx, productId)
}

func (cs *CartService) removeLocked(ctx context.Context, productId string) (entities.Cart, error) {
	i := cs.indexOf(productId)
	if i < 0 {
		return entities.NewCart(cs.items), nil
	}
	next := slices.Delete(slices.Clone(cs.items), i, i+1)
	return cs.commit(ctx, next)
}

// Clear removes every line item.
func (cs *CartService) Clear(ctx context.Context) (entities.Cart, error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if len(cs.items) == 0 {
		return entities.NewCart(nil), nil
	}
	return cs.commit(ctx, []entities.CartLineItem{})
}

func (cs *CartService) Snapshot() entities.Cart {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return entities.NewCart(cs.items)
}

func (cs *CartService) Items() []entities.CartLineItem {
	return cs.Snapshot().Items
}

func (cs *CartService) Total() decimal.Decimal {
	return cs.Snapshot().Total
}

func (cs *CartService) ItemCount() int {
	return cs.Snapshot().ItemCount
}
