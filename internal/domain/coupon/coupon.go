package coupon

import (
	"context"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrInvalidCoupon is returned for every coupon failure a shopper can hit:
// unknown code, inactive coupon, or expired coupon. The storefront does not
// distinguish the causes, so neither does the validator.
var ErrInvalidCoupon = errors.New("invalid coupon code")

// ErrCodeExists is returned when an admin creates or renames a coupon to a
// code that is already taken.
var ErrCodeExists = errors.New("coupon code already exists")

// Coupon is a percentage discount with a calendar expiry.
//
// Codes are stored upper-cased; ExpiryDate is an ISO calendar date (YYYY-MM-DD)
// and is compared lexicographically, which is safe for ISO dates. A coupon
// expiring today is still valid.
type Coupon struct {
	ID                 string
	Code               string
	DiscountPercentage decimal.Decimal
	ExpiryDate         string
	Active             bool
}

// Normalize upper-cases the code in place, matching how codes are persisted.
func (c *Coupon) Normalize() {
	c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
}

// ValidOn reports whether the coupon can be applied on the given ISO date.
func (c *Coupon) ValidOn(today string) bool {
	return c.Active && c.ExpiryDate >= today
}

// Repository provides lookup and admin mutation of coupons.
type Repository interface {
	List(ctx context.Context) ([]Coupon, error)
	// FindByCode performs a case-insensitive lookup and returns
	// ErrInvalidCoupon when no coupon matches.
	FindByCode(ctx context.Context, code string) (*Coupon, error)
	Create(ctx context.Context, c *Coupon) error
	Update(ctx context.Context, c *Coupon) error
	Delete(ctx context.Context, id string) error
}
