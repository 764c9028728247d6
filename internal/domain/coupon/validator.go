package coupon

import (
	"context"
	"time"

	"github.com/go-faster/errors"
)

// Validator resolves a coupon code to a coupon that may be applied today.
type Validator interface {
	Validate(ctx context.Context, code string) (*Coupon, error)
}

// RepoValidator implements Validator against a Repository.
type RepoValidator struct {
	repo  Repository
	today func() string
}

// NewRepoValidator creates a RepoValidator backed by the given Repository.
func NewRepoValidator(repo Repository) *RepoValidator {
	return &RepoValidator{
		repo:  repo,
		today: func() string { return time.Now().UTC().Format(time.DateOnly) },
	}
}

// Validate looks up the code case-insensitively and checks the active flag
// and expiry. The expiry boundary is inclusive: a coupon expiring today still
// validates. Every shopper-facing failure maps to ErrInvalidCoupon.
func (v *RepoValidator) Validate(ctx context.Context, code string) (*Coupon, error) {
	c, err := v.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrInvalidCoupon) {
			return nil, ErrInvalidCoupon
		}
		return nil, errors.Wrap(err, "lookup coupon")
	}

	if !c.ValidOn(v.today()) {
		return nil, ErrInvalidCoupon
	}

	return c, nil
}
