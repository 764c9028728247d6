package coupon

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCouponRepo struct {
	coupon *Coupon
	err    error
}

func (m *mockCouponRepo) List(context.Context) ([]Coupon, error)   { return nil, nil }
func (m *mockCouponRepo) Create(context.Context, *Coupon) error    { return nil }
func (m *mockCouponRepo) Update(context.Context, *Coupon) error    { return nil }
func (m *mockCouponRepo) Delete(context.Context, string) error     { return nil }
func (m *mockCouponRepo) FindByCode(context.Context, string) (*Coupon, error) {
	return m.coupon, m.err
}

func TestRepoValidator_Validate(t *testing.T) {
	const today = "2024-06-15"

	tests := []struct {
		name    string
		repo    *mockCouponRepo
		code    string
		wantPct decimal.Decimal
		wantErr error
	}{
		{
			name: "active coupon with future expiry validates",
			repo: &mockCouponRepo{
				coupon: &Coupon{Code: "SUMMER10", DiscountPercentage: decimal.NewFromInt(10), ExpiryDate: "2024-08-31", Active: true},
			},
			code:    "SUMMER10",
			wantPct: decimal.NewFromInt(10),
		},
		{
			name: "lookup is case-insensitive",
			repo: &mockCouponRepo{
				coupon: &Coupon{Code: "WELCOME20", DiscountPercentage: decimal.NewFromInt(20), ExpiryDate: "2025-12-31", Active: true},
			},
			code:    "welcome20",
			wantPct: decimal.NewFromInt(20),
		},
		{
			name: "coupon expiring today is still valid",
			repo: &mockCouponRepo{
				coupon: &Coupon{Code: "LASTDAY", DiscountPercentage: decimal.NewFromInt(5), ExpiryDate: "2024-06-15", Active: true},
			},
			code:    "LASTDAY",
			wantPct: decimal.NewFromInt(5),
		},
		{
			name: "expired coupon fails with the generic error",
			repo: &mockCouponRepo{
				coupon: &Coupon{Code: "EXPIRED", DiscountPercentage: decimal.NewFromInt(15), ExpiryDate: "2023-01-01", Active: true},
			},
			code:    "EXPIRED",
			wantErr: ErrInvalidCoupon,
		},
		{
			name: "inactive coupon fails with the generic error",
			repo: &mockCouponRepo{
				coupon: &Coupon{Code: "INACTIVE", DiscountPercentage: decimal.NewFromInt(25), ExpiryDate: "2025-12-31", Active: false},
			},
			code:    "INACTIVE",
			wantErr: ErrInvalidCoupon,
		},
		{
			name:    "unknown code fails with the generic error",
			repo:    &mockCouponRepo{err: ErrInvalidCoupon},
			code:    "BOGUS",
			wantErr: ErrInvalidCoupon,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewRepoValidator(tt.repo)
			v.today = func() string { return today }

			got, err := v.Validate(context.Background(), tt.code)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.True(t, tt.wantPct.Equal(got.DiscountPercentage),
				"expected percentage %s, got %s", tt.wantPct, got.DiscountPercentage)
		})
	}
}

func TestRepoValidator_Validate_RepoError(t *testing.T) {
	repoErr := errors.New("connection refused")
	v := NewRepoValidator(&mockCouponRepo{err: repoErr})

	got, err := v.Validate(context.Background(), "SUMMER10")

	require.ErrorIs(t, err, repoErr)
	assert.NotErrorIs(t, err, ErrInvalidCoupon)
	assert.Nil(t, got)
}

func TestCoupon_Normalize(t *testing.T) {
	c := Coupon{Code: " summer10 "}
	c.Normalize()
	assert.Equal(t, "SUMMER10", c.Code)
}
