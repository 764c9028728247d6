//go:build integration

package integration

import (
	"net/http"
	"testing"
)

type adminProductRequest struct {
	Name        localizedText `json:"name"`
	Description localizedText `json:"description"`
	Price       string        `json:"price"`
	ImageURL    string        `json:"image_url"`
	Category    string        `json:"category"`
}

type adminCouponRequest struct {
	Code               string `json:"code"`
	DiscountPercentage string `json:"discount_percentage"`
	ExpiryDate         string `json:"expiry_date"`
	Active             bool   `json:"active"`
}

type couponResponse struct {
	ID                 string `json:"id"`
	Code               string `json:"code"`
	DiscountPercentage string `json:"discount_percentage"`
	ExpiryDate         string `json:"expiry_date"`
	Active             bool   `json:"active"`
}

type settingsResponse struct {
	CardFee        string `json:"card_fee"`
	WhatsAppNumber string `json:"whatsapp_number"`
	HeroImageURL   string `json:"hero_image_url"`
}

func TestAdmin_NoKey(t *testing.T) {
	resp := doAdmin(t, http.MethodGet, "/api/admin/coupons", nil, "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestAdmin_WrongKey(t *testing.T) {
	resp := doAdmin(t, http.MethodGet, "/api/admin/coupons", nil, "wrong-key")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestAdmin_ProductLifecycle(t *testing.T) {
	create := adminProductRequest{
		Name:        localizedText{En: "Test Brooch", Ar: "بروش تجريبي"},
		Description: localizedText{En: "Integration test item", Ar: "عنصر اختبار"},
		Price:       "12.500",
		Category:    "brooches",
	}

	resp := doAdmin(t, http.MethodPost, "/api/admin/products", create, adminAPIKey)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", resp.StatusCode)
	}
	created := decodeJSON[productResponse](t, resp)
	resp.Body.Close()

	if created.ID == "" {
		t.Fatal("created product has empty ID")
	}

	// The shopper endpoint sees the new product immediately.
	getResp := doGet(t, "/api/products/"+created.ID)
	defer getResp.Body.Close()
	if getResp.StatusCode != http.StatusOK {
		t.Fatalf("get created product: expected 200, got %d", getResp.StatusCode)
	}

	delResp := doAdmin(t, http.MethodDelete, "/api/admin/products/"+created.ID, nil, adminAPIKey)
	delResp.Body.Close()
	if delResp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", delResp.StatusCode)
	}

	goneResp := doGet(t, "/api/products/"+created.ID)
	defer goneResp.Body.Close()
	if goneResp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", goneResp.StatusCode)
	}
}

func TestAdmin_CouponUppercased(t *testing.T) {
	resp := doAdmin(t, http.MethodPost, "/api/admin/coupons", adminCouponRequest{
		Code:               "itlower",
		DiscountPercentage: "15",
		ExpiryDate:         "2030-12-31",
		Active:             true,
	}, adminAPIKey)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	created := decodeJSON[couponResponse](t, resp)
	if created.Code != "ITLOWER" {
		t.Errorf("code: got %q, want ITLOWER", created.Code)
	}
}

func TestAdmin_CouponDuplicate(t *testing.T) {
	resp := doAdmin(t, http.MethodPost, "/api/admin/coupons", adminCouponRequest{
		Code:               "SUMMER10",
		DiscountPercentage: "10",
		ExpiryDate:         "2030-12-31",
		Active:             true,
	}, adminAPIKey)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestAdmin_Settings(t *testing.T) {
	resp := doAdmin(t, http.MethodGet, "/api/admin/settings", nil, adminAPIKey)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	settings := decodeJSON[settingsResponse](t, resp)
	resp.Body.Close()

	if settings.CardFee != "1.000" {
		t.Errorf("card_fee: got %q, want 1.000", settings.CardFee)
	}
	if settings.WhatsAppNumber != "96890000000" {
		t.Errorf("whatsapp_number: got %q, want 96890000000", settings.WhatsAppNumber)
	}
}

func TestAdmin_OrderStatus(t *testing.T) {
	// Place an order to act on.
	const session = "it-admin-order"
	addResp := doSession(t, http.MethodPost, "/api/cart/items", addItemRequest{ProductID: "1", Quantity: 1}, session)
	addResp.Body.Close()

	coResp := doSession(t, http.MethodPost, "/api/checkout", checkoutRequest{
		CustomerName:  "Admin Target",
		CustomerPhone: "+96894443322",
		Destination:   officeDelivery(),
		Method:        "whatsapp",
	}, session)
	if coResp.StatusCode != http.StatusCreated {
		t.Fatalf("checkout: expected 201, got %d", coResp.StatusCode)
	}
	placed := decodeJSON[checkoutResponse](t, coResp)
	coResp.Body.Close()

	resp := doAdmin(t, http.MethodPut, "/api/admin/orders/"+placed.Order.ID+"/status",
		map[string]string{"status": "shipped"}, adminAPIKey)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("set status: expected 204, got %d", resp.StatusCode)
	}

	// Payment states are not assignable by hand.
	resp = doAdmin(t, http.MethodPut, "/api/admin/orders/"+placed.Order.ID+"/status",
		map[string]string{"status": "pending_payment"}, adminAPIKey)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("payment state: expected 422, got %d", resp.StatusCode)
	}
}
