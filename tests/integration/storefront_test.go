//go:build integration

package integration

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
)

type addItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type applyCouponRequest struct {
	Code string `json:"code"`
}

type destination struct {
	Kind string           `json:"kind"`
	Oman *omanDestination `json:"oman,omitempty"`
}

type omanDestination struct {
	DeliveryType string `json:"delivery_type"`
	Governorate  string `json:"governorate"`
	Wilayah      string `json:"wilayah"`
}

type checkoutRequest struct {
	CustomerName  string      `json:"customer_name"`
	CustomerPhone string      `json:"customer_phone"`
	Destination   destination `json:"destination"`
	WithCard      bool        `json:"with_card"`
	CardMessage   string      `json:"card_message,omitempty"`
	Method        string      `json:"method"`
}

func homeDelivery() destination {
	return destination{
		Kind: "oman",
		Oman: &omanDestination{DeliveryType: "home", Governorate: "muscat", Wilayah: "seeb"},
	}
}

func officeDelivery() destination {
	return destination{
		Kind: "oman",
		Oman: &omanDestination{DeliveryType: "office", Governorate: "muscat", Wilayah: "seeb"},
	}
}

func TestCart_RequiresSession(t *testing.T) {
	resp := doSession(t, http.MethodGet, "/api/cart", nil, "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestCart_AddAndMerge(t *testing.T) {
	const session = "it-cart-merge"

	resp := doSession(t, http.MethodPost, "/api/cart/items", addItemRequest{ProductID: "1", Quantity: 1}, session)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("add item: expected 200, got %d", resp.StatusCode)
	}

	resp = doSession(t, http.MethodPost, "/api/cart/items", addItemRequest{ProductID: "1", Quantity: 2}, session)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("add item again: expected 200, got %d", resp.StatusCode)
	}

	cart := decodeJSON[cartResponse](t, resp)
	if len(cart.Lines) != 1 {
		t.Fatalf("expected 1 merged line, got %d", len(cart.Lines))
	}
	if cart.Lines[0].Quantity != 3 {
		t.Errorf("quantity: got %d, want 3", cart.Lines[0].Quantity)
	}
	if cart.Subtotal != "135.000" {
		t.Errorf("subtotal: got %q, want 135.000", cart.Subtotal)
	}
}

func TestCart_UnknownProduct(t *testing.T) {
	resp := doSession(t, http.MethodPost, "/api/cart/items", addItemRequest{ProductID: "999", Quantity: 1}, "it-cart-unknown")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
}

func TestCoupon_Lifecycle(t *testing.T) {
	const session = "it-coupon"

	resp := doSession(t, http.MethodPost, "/api/cart/items", addItemRequest{ProductID: "1", Quantity: 1}, session)
	resp.Body.Close()

	// Codes are case-insensitive on the way in, stored uppercased.
	resp = doSession(t, http.MethodPost, "/api/cart/coupon", applyCouponRequest{Code: "summer10"}, session)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("apply coupon: expected 200, got %d", resp.StatusCode)
	}
	cart := decodeJSON[cartResponse](t, resp)
	resp.Body.Close()
	if cart.CouponCode != "SUMMER10" {
		t.Errorf("coupon code: got %q, want SUMMER10", cart.CouponCode)
	}

	resp = doSession(t, http.MethodPost, "/api/cart/coupon", applyCouponRequest{Code: "EXPIRED"}, session)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expired coupon: expected 422, got %d", resp.StatusCode)
	}

	resp = doSession(t, http.MethodPost, "/api/cart/coupon", applyCouponRequest{Code: "INACTIVE"}, session)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("inactive coupon: expected 422, got %d", resp.StatusCode)
	}

	resp = doSession(t, http.MethodDelete, "/api/cart/coupon", nil, session)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("remove coupon: expected 200, got %d", resp.StatusCode)
	}
}

func TestCheckout_WhatsApp(t *testing.T) {
	const session = "it-checkout-whatsapp"

	resp := doSession(t, http.MethodPost, "/api/cart/items", addItemRequest{ProductID: "1", Quantity: 1}, session)
	resp.Body.Close()
	resp = doSession(t, http.MethodPost, "/api/cart/items", addItemRequest{ProductID: "3", Quantity: 2}, session)
	resp.Body.Close()
	resp = doSession(t, http.MethodPost, "/api/cart/coupon", applyCouponRequest{Code: "SUMMER10"}, session)
	resp.Body.Close()

	resp = doSession(t, http.MethodPost, "/api/checkout", checkoutRequest{
		CustomerName:  "Salim Al-Habsi",
		CustomerPhone: "+96899112233",
		Destination:   homeDelivery(),
		Method:        "whatsapp",
	}, session)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	result := decodeJSON[checkoutResponse](t, resp)
	// 45.000 + 2x22.500 = 90.000, minus 10% = 81.000, plus 2.000 home delivery.
	if result.Order.Pricing.Total != "83.000" {
		t.Errorf("total: got %q, want 83.000", result.Order.Pricing.Total)
	}
	if result.Order.Pricing.Discount != "9.000" {
		t.Errorf("discount: got %q, want 9.000", result.Order.Pricing.Discount)
	}
	if result.Order.Status != "pending" {
		t.Errorf("status: got %q, want pending", result.Order.Status)
	}
	if !result.CartCleared {
		t.Error("expected cart to be cleared")
	}
	if !strings.HasPrefix(result.WhatsAppURL, "https://wa.me/96890000000?text=") {
		t.Errorf("whatsapp url: got %q", result.WhatsAppURL)
	}

	cartResp := doSession(t, http.MethodGet, "/api/cart", nil, session)
	defer cartResp.Body.Close()
	cart := decodeJSON[cartResponse](t, cartResp)
	if len(cart.Lines) != 0 {
		t.Errorf("expected empty cart after whatsapp checkout, got %d lines", len(cart.Lines))
	}
}

func TestCheckout_GatewayAndCallback(t *testing.T) {
	const session = "it-checkout-gateway"

	resp := doSession(t, http.MethodPost, "/api/cart/items", addItemRequest{ProductID: "1", Quantity: 1}, session)
	resp.Body.Close()

	resp = doSession(t, http.MethodPost, "/api/checkout", checkoutRequest{
		CustomerName:  "Maha Al-Lawati",
		CustomerPhone: "+96895556677",
		Destination:   officeDelivery(),
		WithCard:      true,
		CardMessage:   "Eid Mubarak",
		Method:        "gateway",
	}, session)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	result := decodeJSON[checkoutResponse](t, resp)
	resp.Body.Close()

	// 45.000 + 1.000 office delivery + 1.000 card fee.
	if result.Order.Pricing.Total != "47.000" {
		t.Errorf("total: got %q, want 47.000", result.Order.Pricing.Total)
	}
	if result.Order.Status != "pending_payment" {
		t.Errorf("status: got %q, want pending_payment", result.Order.Status)
	}
	if result.CartCleared {
		t.Error("cart must survive until the gateway confirms payment")
	}

	payURL, err := url.Parse(result.PaymentURL)
	if err != nil {
		t.Fatalf("parse payment url: %v", err)
	}
	if got := payURL.Query().Get("order_id"); got != result.Order.ID {
		t.Errorf("payment url order_id: got %q, want %q", got, result.Order.ID)
	}
	if got := payURL.Query().Get("amount"); got != "47.000" {
		t.Errorf("payment url amount: got %q, want 47.000", got)
	}

	// Successful callback: order moves to processing, cart is cleared, and the
	// shopper is redirected to the confirmation page.
	cb := doCallback(t, "success", result.Order.ID)
	defer cb.Body.Close()
	if cb.StatusCode != http.StatusFound {
		t.Fatalf("callback: expected 302, got %d", cb.StatusCode)
	}
	loc := cb.Header.Get("Location")
	if !strings.Contains(loc, "/order-confirmation?orderId="+result.Order.ID) {
		t.Errorf("callback location: got %q", loc)
	}

	orderResp := doGet(t, "/api/orders/"+result.Order.ID)
	defer orderResp.Body.Close()
	placed := decodeJSON[orderResponse](t, orderResp)
	if placed.Status != "processing" {
		t.Errorf("status after callback: got %q, want processing", placed.Status)
	}

	cartResp := doSession(t, http.MethodGet, "/api/cart", nil, session)
	defer cartResp.Body.Close()
	cart := decodeJSON[cartResponse](t, cartResp)
	if len(cart.Lines) != 0 {
		t.Errorf("expected cart cleared after successful payment, got %d lines", len(cart.Lines))
	}

	// A duplicate callback must not change the state again; the shopper still
	// lands on the storefront.
	dup := doCallback(t, "success", result.Order.ID)
	defer dup.Body.Close()
	if dup.StatusCode != http.StatusFound {
		t.Fatalf("duplicate callback: expected 302, got %d", dup.StatusCode)
	}
}

func TestCheckout_GatewayFailure(t *testing.T) {
	const session = "it-checkout-failure"

	resp := doSession(t, http.MethodPost, "/api/cart/items", addItemRequest{ProductID: "3", Quantity: 1}, session)
	resp.Body.Close()

	resp = doSession(t, http.MethodPost, "/api/checkout", checkoutRequest{
		CustomerName:  "Ahmed Al-Balushi",
		CustomerPhone: "+96892221100",
		Destination:   officeDelivery(),
		Method:        "gateway",
	}, session)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	result := decodeJSON[checkoutResponse](t, resp)
	resp.Body.Close()

	cb := doCallback(t, "failed", result.Order.ID)
	defer cb.Body.Close()
	if cb.StatusCode != http.StatusFound {
		t.Fatalf("callback: expected 302, got %d", cb.StatusCode)
	}
	if loc := cb.Header.Get("Location"); !strings.HasSuffix(loc, "/cart") {
		t.Errorf("failure callback location: got %q, want .../cart", loc)
	}

	orderResp := doGet(t, "/api/orders/"+result.Order.ID)
	defer orderResp.Body.Close()
	placed := decodeJSON[orderResponse](t, orderResp)
	if placed.Status != "payment_failed" {
		t.Errorf("status: got %q, want payment_failed", placed.Status)
	}

	// The cart keeps its lines so the shopper can retry.
	cartResp := doSession(t, http.MethodGet, "/api/cart", nil, session)
	defer cartResp.Body.Close()
	cart := decodeJSON[cartResponse](t, cartResp)
	if len(cart.Lines) != 1 {
		t.Errorf("expected cart to survive failed payment, got %d lines", len(cart.Lines))
	}
}

func TestCheckout_EmptyCart(t *testing.T) {
	resp := doSession(t, http.MethodPost, "/api/checkout", checkoutRequest{
		CustomerName:  "Nobody",
		CustomerPhone: "+96800000000",
		Destination:   homeDelivery(),
		Method:        "whatsapp",
	}, "it-checkout-empty")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
}

func doCallback(t *testing.T, status, orderID string) *http.Response {
	t.Helper()

	q := url.Values{"status": {status}, "order_id": {orderID}}
	req, err := http.NewRequest(http.MethodGet, baseURL+"/api/payments/callback?"+q.Encode(), nil)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}

	resp, err := noRedirect.Do(req)
	if err != nil {
		t.Fatalf("callback request: %v", err)
	}
	return resp
}
