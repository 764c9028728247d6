package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almasoman/almas-api/internal/domain/coupon"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func pctCoupon(pct int64) *coupon.Coupon {
	return &coupon.Coupon{
		Code:               "TEST",
		DiscountPercentage: decimal.NewFromInt(pct),
		ExpiryDate:         "2099-12-31",
		Active:             true,
	}
}

func TestCompose(t *testing.T) {
	tests := []struct {
		name         string
		subtotal     string
		coupon       *coupon.Coupon
		cardFee      string
		deliveryFee  string
		wantDiscount string
		wantTotal    string
	}{
		{
			name:         "ten percent coupon with standard oman home delivery",
			subtotal:     "100.000",
			coupon:       pctCoupon(10),
			cardFee:      "0",
			deliveryFee:  "2.000",
			wantDiscount: "10.000",
			wantTotal:    "92.000",
		},
		{
			name:         "ten percent coupon with special wilayah delivery",
			subtotal:     "100.000",
			coupon:       pctCoupon(10),
			cardFee:      "0",
			deliveryFee:  "3.000",
			wantDiscount: "10.000",
			wantTotal:    "93.000",
		},
		{
			name:         "no coupon leaves discount at zero",
			subtotal:     "50.000",
			coupon:       nil,
			cardFee:      "0",
			deliveryFee:  "0",
			wantDiscount: "0",
			wantTotal:    "50.000",
		},
		{
			name:         "card fee and delivery fee both added",
			subtotal:     "25.500",
			coupon:       nil,
			cardFee:      "1.000",
			deliveryFee:  "4.000",
			wantDiscount: "0",
			wantTotal:    "30.500",
		},
		{
			name:         "discount rounds to three places",
			subtotal:     "10.001",
			coupon:       pctCoupon(10),
			cardFee:      "0",
			deliveryFee:  "0",
			wantDiscount: "1.000",
			wantTotal:    "9.001",
		},
		{
			name:         "hundred percent coupon zeroes the goods, fees remain",
			subtotal:     "40.000",
			coupon:       pctCoupon(100),
			cardFee:      "1.000",
			deliveryFee:  "2.000",
			wantDiscount: "40.000",
			wantTotal:    "3.000",
		},
		{
			name:         "total clamps at zero",
			subtotal:     "10.000",
			coupon:       &coupon.Coupon{Code: "OVER", DiscountPercentage: decimal.NewFromInt(150), ExpiryDate: "2099-12-31", Active: true},
			cardFee:      "0",
			deliveryFee:  "0",
			wantDiscount: "15.000",
			wantTotal:    "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compose(dec(tt.subtotal), tt.coupon, dec(tt.cardFee), dec(tt.deliveryFee))

			assert.True(t, dec(tt.wantDiscount).Equal(got.Discount),
				"discount: want %s, got %s", tt.wantDiscount, got.Discount)
			assert.True(t, dec(tt.wantTotal).Equal(got.Total),
				"total: want %s, got %s", tt.wantTotal, got.Total)
		})
	}
}

func TestCompose_Idempotent(t *testing.T) {
	c := pctCoupon(20)
	first := Compose(dec("73.450"), c, dec("1.000"), dec("2.000"))
	second := Compose(dec("73.450"), c, dec("1.000"), dec("2.000"))
	assert.Equal(t, first, second)
}

func TestDisplay(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		code   CurrencyCode
		want   string
	}{
		{"base currency unchanged", "92.000", OMR, "92.000"},
		{"usd two places", "100.000", USD, "260.00"},
		{"aed two places", "10.000", AED, "95.30"},
		{"bhd keeps three places", "10.000", BHD, "9.760"},
		{"kwd keeps three places", "10.000", KWD, "7.970"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Display(dec(tt.amount), tt.code)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.StringFixed(placesFor(tt.code)))
		})
	}
}

func placesFor(code CurrencyCode) int32 {
	return currencies[code].decimalPlaces
}

func TestDisplay_UnknownCurrency(t *testing.T) {
	_, err := Display(dec("10.000"), CurrencyCode("XTS"))
	require.ErrorIs(t, err, ErrUnknownCurrency)
}
