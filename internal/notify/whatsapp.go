// Package notify builds the outbound order notifications: the WhatsApp
// handoff link for direct orders and the confirmation mail.
package notify

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/almasoman/almas-api/internal/domain/order"
	"github.com/almasoman/almas-api/internal/domain/shipping"
)

// WhatsAppLink returns a wa.me deep link to the store number with the order
// summary prefilled, ready for the shopper to send. The number is in
// international format without the leading plus.
func WhatsAppLink(number string, o *order.Order) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", number, url.QueryEscape(summarize(o)))
}

func summarize(o *order.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New order %s\n", o.ID)
	fmt.Fprintf(&b, "Customer: %s (%s)\n", o.CustomerName, o.CustomerPhone)
	b.WriteString("\nItems:\n")
	for _, l := range o.Lines {
		fmt.Fprintf(&b, "- %s x%d @ %s OMR\n", l.Name.En, l.Quantity, l.UnitPrice.StringFixed(3))
	}

	b.WriteString("\nDelivery: ")
	switch d := o.Destination.(type) {
	case shipping.Oman:
		fmt.Fprintf(&b, "Oman, %s, %s (%s)\n", d.Governorate, d.Wilayah, d.DeliveryType)
	case shipping.International:
		fmt.Fprintf(&b, "%s, %s\n", d.CountryKey, d.AddressLine)
	}

	if o.Gift != nil {
		fmt.Fprintf(&b, "Gift for: %s (%s)\n", o.Gift.RecipientName, o.Gift.RecipientPhone)
	}
	if o.WithCard {
		fmt.Fprintf(&b, "Card message: %s\n", o.CardMessage)
	}
	if o.CouponCode != "" {
		fmt.Fprintf(&b, "Coupon: %s (-%s OMR)\n", o.CouponCode, o.Pricing.Discount.StringFixed(3))
	}

	fmt.Fprintf(&b, "\nSubtotal: %s OMR\n", o.Pricing.Subtotal.StringFixed(3))
	if !o.Pricing.CardFee.IsZero() {
		fmt.Fprintf(&b, "Card fee: %s OMR\n", o.Pricing.CardFee.StringFixed(3))
	}
	fmt.Fprintf(&b, "Delivery: %s OMR\n", o.Pricing.DeliveryFee.StringFixed(3))
	fmt.Fprintf(&b, "Total: %s OMR", o.Pricing.Total.StringFixed(3))
	return b.String()
}
