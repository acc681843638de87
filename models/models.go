package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrBadRequest = errors.New("bad request")
var ErrUnauthorized = errors.New("unauthorized")
var ErrServerError = errors.New("server error")
var ErrNotFoundError = errors.New("not found")
var ErrInvalidCredentials = errors.New("Invalid email or password")

// FetchError is returned by the catalog client when a request fails or its
// envelope cannot be decoded.
type FetchError struct {
	Op      string // products, product, brands, categories
	Status  int    // 0 when no response was received
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d", e.Message, e.Status)
	}
	return e.Message
}

func (e *FetchError) Unwrap() error { return e.Err }

// ValidationError carries field level messages for a rejected form.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrBadRequest }

type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type Profile struct {
	Name            string `json:"name" validate:"required,min=2"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

// IdentityRecord is the persisted form of the current identity.
type IdentityRecord struct {
	Id     string  `json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Avatar *string `json:"avatar"`
}

type BrandRecord struct {
	Id   string `json:"_id"`
	Name string `json:"name"`
}

// CartLineRecord is the persisted form of one cart line item.
type CartLineRecord struct {
	ProductId string          `json:"id"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	ImageRef  string          `json:"imageCover"`
	Brand     *BrandRecord    `json:"brand,omitempty"`
	Quantity  int             `json:"quantity"`
}
