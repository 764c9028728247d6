package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/almasoman/almas-api/internal/domain/order"
	"github.com/almasoman/almas-api/internal/domain/shipping"
	"github.com/almasoman/almas-api/internal/notify"
)

type checkoutRequest struct {
	CustomerName  string             `json:"customer_name"`
	CustomerPhone string             `json:"customer_phone"`
	CustomerEmail string             `json:"customer_email,omitempty"`
	Destination   json.RawMessage    `json:"destination"`
	Gift          *order.GiftDetails `json:"gift,omitempty"`
	WithCard      bool               `json:"with_card"`
	CardMessage   string             `json:"card_message,omitempty"`
	Method        order.Method       `json:"method"`
}

type breakdownResponse struct {
	Subtotal    string `json:"subtotal"`
	Discount    string `json:"discount"`
	CardFee     string `json:"card_fee"`
	DeliveryFee string `json:"delivery_fee"`
	Total       string `json:"total"`
}

type orderResponse struct {
	ID            string             `json:"id"`
	CustomerName  string             `json:"customer_name"`
	CustomerPhone string             `json:"customer_phone"`
	Lines         []cartLineResponse `json:"lines"`
	Destination   json.RawMessage    `json:"destination"`
	Gift          *order.GiftDetails `json:"gift,omitempty"`
	WithCard      bool               `json:"with_card"`
	CardMessage   string             `json:"card_message,omitempty"`
	CouponCode    string             `json:"coupon_code,omitempty"`
	Pricing       breakdownResponse  `json:"pricing"`
	PaymentMethod order.Method       `json:"payment_method"`
	Status        order.Status       `json:"status"`
}

type checkoutResponse struct {
	Order       orderResponse `json:"order"`
	CartCleared bool          `json:"cart_cleared"`
	// PaymentURL is set for gateway orders: the external page to redirect to.
	PaymentURL string `json:"payment_url,omitempty"`
	// WhatsAppURL is set for direct-handoff orders: the prefilled deep link.
	WhatsAppURL string `json:"whatsapp_url,omitempty"`
}

func toOrderResponse(o *order.Order) (orderResponse, error) {
	dest, err := shipping.EncodeDestination(o.Destination)
	if err != nil {
		return orderResponse{}, errors.Wrap(err, "encode destination")
	}

	lines := make([]cartLineResponse, len(o.Lines))
	for i, l := range o.Lines {
		lines[i] = cartLineResponse{
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice.StringFixed(3),
			Quantity:  l.Quantity,
		}
	}

	return orderResponse{
		ID:            o.ID,
		CustomerName:  o.CustomerName,
		CustomerPhone: o.CustomerPhone,
		Lines:         lines,
		Destination:   dest,
		Gift:          o.Gift,
		WithCard:      o.WithCard,
		CardMessage:   o.CardMessage,
		CouponCode:    o.CouponCode,
		Pricing: breakdownResponse{
			Subtotal:    o.Pricing.Subtotal.StringFixed(3),
			Discount:    o.Pricing.Discount.StringFixed(3),
			CardFee:     o.Pricing.CardFee.StringFixed(3),
			DeliveryFee: o.Pricing.DeliveryFee.StringFixed(3),
			Total:       o.Pricing.Total.StringFixed(3),
		},
		PaymentMethod: o.PaymentMethod,
		Status:        o.Status,
	}, nil
}

// Checkout handles POST /api/checkout: it prices the session cart, creates
// the order, and returns the method-specific continuation URL.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionID(w, r)
	if !ok {
		return
	}
	var req checkoutRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var dest shipping.Destination
	if len(req.Destination) > 0 {
		var err error
		dest, err = shipping.DecodeDestination(req.Destination)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid destination")
			return
		}
	}

	result, err := h.orders.Checkout(r.Context(), order.CheckoutRequest{
		SessionID:     session,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Destination:   dest,
		Gift:          req.Gift,
		WithCard:      req.WithCard,
		CardMessage:   req.CardMessage,
		Method:        req.Method,
	})
	if err != nil {
		mapCheckoutError(w, r, err)
		return
	}

	orderBody, err := toOrderResponse(result.Order)
	if err != nil {
		respondInternal(w, r, err)
		return
	}

	resp := checkoutResponse{Order: orderBody, CartCleared: result.CartCleared}
	switch result.Order.PaymentMethod {
	case order.MethodGateway:
		resp.PaymentURL = h.gatewayURL(result.Order)
	case order.MethodWhatsApp:
		cfg, err := h.settings.Get(r.Context())
		if err != nil {
			respondInternal(w, r, err)
			return
		}
		resp.WhatsAppURL = notify.WhatsAppLink(cfg.WhatsAppNumber, result.Order)
	}

	h.sendConfirmation(r, req.CustomerEmail, result.Order)

	respondJSON(w, http.StatusCreated, resp)
}

// sendConfirmation mails the order summary to the address given at checkout.
// Best effort: mailing is optional and never delays or fails the checkout
// response.
func (h *Handler) sendConfirmation(r *http.Request, email string, o *order.Order) {
	if h.mailer == nil || email == "" {
		return
	}
	lg := zctx.From(r.Context())
	go func() {
		if err := h.mailer.SendOrderConfirmation(email, o); err != nil {
			lg.Warn("order confirmation mail", zap.String("order_id", o.ID), zap.Error(err))
		}
	}()
}

// gatewayURL builds the external payment page link for a gateway order.
func (h *Handler) gatewayURL(o *order.Order) string {
	q := url.Values{}
	q.Set("order_id", o.ID)
	q.Set("amount", o.Pricing.Total.StringFixed(3))
	return fmt.Sprintf("%s?%s", h.cfg.GatewayBaseURL, q.Encode())
}

// GetOrder handles GET /api/orders/{id}.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.orderRepo.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondInternal(w, r, err)
		return
	}

	resp, err := toOrderResponse(o)
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}
