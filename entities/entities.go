package entities

import (
	"github.com/shopspring/decimal"
)

type Identity struct {
	Id     string  `json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Avatar *string `json:"avatar"`
}

type Brand struct {
	Id    string `json:"_id"`
	Name  string `json:"name"`
	Slug  string `json:"slug,omitempty"`
	Image string `json:"image,omitempty"`
}

type Category struct {
	Id    string `json:"_id"`
	Name  string `json:"name"`
	Slug  string `json:"slug,omitempty"`
	Image string `json:"image,omitempty"`
}

type Product struct {
	Id             string          `json:"_id"`
	Title          string          `json:"title"`
	Description    string          `json:"description,omitempty"`
	Price          decimal.Decimal `json:"price"`
	ImageCover     string          `json:"imageCover,omitempty"`
	Images         []string        `json:"images,omitempty"`
	RatingsAverage float64         `json:"ratingsAverage,omitempty"`
	Quantity       int             `json:"quantity,omitempty"`
	Brand          *Brand          `json:"brand,omitempty"`
	Category       *Category       `json:"category,omitempty"`
}

// ImageRef is the image shown for the product in lists and the cart.
func (p Product) ImageRef() string {
	if p.ImageCover != "" {
		return p.ImageCover
	}
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return ""
}

type CartLineItem struct {
	ProductId string          `json:"product_id"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	ImageRef  string          `json:"image"`
	Brand     *Brand          `json:"brand,omitempty"`
	Quantity  int             `json:"quantity"`
}

// Subtotal is price times quantity for the line.
func (li CartLineItem) Subtotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Cart is a point-in-time copy of the cart; mutating it does not touch the store.
type Cart struct {
	Items     []CartLineItem  `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

// NewCart copies items and derives the total and item count.
func NewCart(items []CartLineItem) Cart {
	c := Cart{
		Items: make([]CartLineItem, len(items)),
		Total: decimal.Zero,
	}
	copy(c.Items, items)
	for _, li := range items {
		c.Total = c.Total.Add(li.Subtotal())
		c.ItemCount += li.Quantity
	}
	return c
}

// Find returns the line item for productId.
func (c Cart) Find(productId string) (CartLineItem, bool) {
	for _, li := range c.Items {
		if li.ProductId == productId {
			return li, true
		}
	}
	return CartLineItem{}, false
}
