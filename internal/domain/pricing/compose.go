// Package pricing computes order totals in the base currency (OMR, 3 decimal
// places) and converts amounts to display currencies.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/almasoman/almas-api/internal/domain/coupon"
)

// basePrecision is the OMR minor-unit precision.
const basePrecision = 3

var hundred = decimal.NewFromInt(100)

// Breakdown is the fee breakdown persisted with every order.
type Breakdown struct {
	Subtotal    decimal.Decimal
	Discount    decimal.Decimal
	CardFee     decimal.Decimal
	DeliveryFee decimal.Decimal
	Total       decimal.Decimal
}

// Compose combines a cart subtotal, an optionally applied coupon, the add-on
// card fee, and the delivery fee into a breakdown. Pure: the same inputs
// always produce the same output.
//
// The discount is not capped at the subtotal, but the final total is clamped
// at zero so an oversized coupon can never produce a negative charge.
func Compose(subtotal decimal.Decimal, c *coupon.Coupon, cardFee, deliveryFee decimal.Decimal) Breakdown {
	discount := decimal.Zero
	if c != nil {
		discount = subtotal.Mul(c.DiscountPercentage).Div(hundred).Round(basePrecision)
	}

	total := subtotal.Sub(discount).Add(cardFee).Add(deliveryFee)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Breakdown{
		Subtotal:    subtotal.Round(basePrecision),
		Discount:    discount,
		CardFee:     cardFee.Round(basePrecision),
		DeliveryFee: deliveryFee.Round(basePrecision),
		Total:       total.Round(basePrecision),
	}
}
