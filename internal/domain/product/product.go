package product

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// LocalizedText holds a value in both storefront languages.
type LocalizedText struct {
	En string `json:"en"`
	Ar string `json:"ar"`
}

// Product represents a catalog item available for purchase.
// Prices are stored in OMR, the base currency.
type Product struct {
	ID          string
	Name        LocalizedText
	Description LocalizedText
	Price       decimal.Decimal
	ImageURL    string
	Category    string
}

// Repository defines operations on the product catalog. Read operations serve
// the storefront; mutations are reserved for the admin surface.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	GetByIDs(ctx context.Context, ids []string) ([]Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) error
}
