package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/almasoman/almas-api/internal/domain/pricing"
	"github.com/almasoman/almas-api/internal/domain/product"
	"github.com/almasoman/almas-api/internal/domain/shipping"
)

// ErrNotFound is returned when a requested order does not exist.
var ErrNotFound = errors.New("order not found")

// Line is a purchased item with the product name and unit price captured at
// purchase time. Later catalog edits never rewrite historical orders.
type Line struct {
	ProductID string                `json:"product_id"`
	Name      product.LocalizedText `json:"name"`
	UnitPrice decimal.Decimal       `json:"unit_price"`
	Quantity  int                   `json:"quantity"`
}

// GiftDetails names the recipient when an order is a gift. The gift flag and
// the recipient fields travel together: a nil GiftDetails means not a gift.
type GiftDetails struct {
	RecipientName  string `json:"recipient_name"`
	RecipientPhone string `json:"recipient_phone"`
}

// Order is a placed order with its captured lines, destination, fee
// breakdown, and lifecycle state.
type Order struct {
	ID            string
	SessionID     string
	CustomerName  string
	CustomerPhone string
	Lines         []Line
	Destination   shipping.Destination
	Gift          *GiftDetails
	WithCard      bool
	CardMessage   string
	Pricing       pricing.Breakdown
	CouponCode    string
	PaymentMethod Method
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Repository defines persistence operations for orders.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context) ([]Order, error)
	UpdateStatus(ctx context.Context, id string, s Status) error
}
