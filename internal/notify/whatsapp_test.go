package notify

import (
	"net/smtp"
	"net/url"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almasoman/almas-api/internal/domain/order"
	"github.com/almasoman/almas-api/internal/domain/pricing"
	"github.com/almasoman/almas-api/internal/domain/product"
	"github.com/almasoman/almas-api/internal/domain/shipping"
)

func sampleOrder() *order.Order {
	return &order.Order{
		ID:            "ord-1",
		CustomerName:  "Fatma",
		CustomerPhone: "96890000000",
		Lines: []order.Line{
			{
				ProductID: "p1",
				Name:      product.LocalizedText{En: "Gold Ring", Ar: "خاتم ذهب"},
				UnitPrice: decimal.RequireFromString("45.500"),
				Quantity:  2,
			},
		},
		Destination: shipping.Oman{
			DeliveryType: shipping.DeliveryHome,
			Governorate:  "muscat",
			Wilayah:      "bawshar",
		},
		CouponCode: "SUMMER10",
		Pricing: pricing.Breakdown{
			Subtotal:    decimal.RequireFromString("91.000"),
			Discount:    decimal.RequireFromString("9.100"),
			DeliveryFee: decimal.RequireFromString("2.000"),
			Total:       decimal.RequireFromString("83.900"),
		},
	}
}

func TestWhatsAppLink(t *testing.T) {
	link := WhatsAppLink("96891111111", sampleOrder())

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "wa.me", u.Host)
	assert.Equal(t, "/96891111111", u.Path)

	text := u.Query().Get("text")
	assert.Contains(t, text, "New order ord-1")
	assert.Contains(t, text, "Gold Ring x2 @ 45.500 OMR")
	assert.Contains(t, text, "Oman, muscat, bawshar (home)")
	assert.Contains(t, text, "Coupon: SUMMER10 (-9.100 OMR)")
	assert.Contains(t, text, "Total: 83.900 OMR")
}

func TestMailer_SendOrderConfirmation(t *testing.T) {
	t.Run("disabled config is a no-op", func(t *testing.T) {
		m := NewMailer(MailConfig{})
		m.send = func(string, smtp.Auth, string, []string, []byte) error {
			t.Fatal("send should not be called")
			return nil
		}
		assert.NoError(t, m.SendOrderConfirmation("a@b.test", sampleOrder()))
	})

	t.Run("sends summary", func(t *testing.T) {
		var gotTo []string
		var gotMsg []byte
		m := NewMailer(MailConfig{Addr: "smtp.test:587", From: "shop@almas.test"})
		m.send = func(_ string, _ smtp.Auth, from string, to []string, msg []byte) error {
			assert.Equal(t, "shop@almas.test", from)
			gotTo, gotMsg = to, msg
			return nil
		}

		require.NoError(t, m.SendOrderConfirmation("fatma@example.test", sampleOrder()))
		assert.Equal(t, []string{"fatma@example.test"}, gotTo)
		assert.Contains(t, string(gotMsg), "Subject: Order ord-1 confirmed")
		assert.Contains(t, string(gotMsg), "Total: 83.900 OMR")
	})
}
