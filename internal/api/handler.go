// Package api exposes the storefront and back-office HTTP surface.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/almasoman/almas-api/internal/assistant"
	"github.com/almasoman/almas-api/internal/domain/cart"
	"github.com/almasoman/almas-api/internal/domain/coupon"
	"github.com/almasoman/almas-api/internal/domain/order"
	"github.com/almasoman/almas-api/internal/domain/product"
	"github.com/almasoman/almas-api/internal/domain/settings"
	"github.com/almasoman/almas-api/internal/domain/user"
	"github.com/almasoman/almas-api/internal/notify"
	"github.com/almasoman/almas-api/internal/upload"
)

// sessionHeader carries the storefront session identity. The frontend
// generates it once per browser and sends it on every cart-scoped request.
const sessionHeader = "X-Session-ID"

// Config holds the handler's non-dependency knobs.
type Config struct {
	// FrontendBaseURL is where the payment callback redirects shoppers.
	FrontendBaseURL string
	// GatewayBaseURL is the external payment page gateway checkouts link to.
	GatewayBaseURL string
}

// Handler implements every API endpoint. Routes are attached in NewRouter.
type Handler struct {
	cfg Config

	products  product.Repository
	coupons   coupon.Repository
	validator coupon.Validator
	carts     cart.Store
	orders    *order.Service
	orderRepo order.Repository
	users     user.Repository
	settings  settings.Repository
	uploader  upload.Uploader
	assistant assistant.Assistant
	mailer    *notify.Mailer
}

// NewHandler wires the handler with its dependencies.
func NewHandler(
	cfg Config,
	products product.Repository,
	coupons coupon.Repository,
	validator coupon.Validator,
	carts cart.Store,
	orders *order.Service,
	orderRepo order.Repository,
	users user.Repository,
	siteSettings settings.Repository,
	uploader upload.Uploader,
	shopAssistant assistant.Assistant,
	mailer *notify.Mailer,
) *Handler {
	return &Handler{
		cfg:       cfg,
		products:  products,
		coupons:   coupons,
		validator: validator,
		carts:     carts,
		orders:    orders,
		orderRepo: orderRepo,
		users:     users,
		settings:  siteSettings,
		uploader:  uploader,
		assistant: shopAssistant,
		mailer:    mailer,
	}
}

// errorResponse is the uniform error body.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Code: status, Message: message})
}

// respondInternal logs the error and hides its details from the client.
func respondInternal(w http.ResponseWriter, r *http.Request, err error) {
	zctx.From(r.Context()).Error("internal error",
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	respondError(w, http.StatusInternalServerError, "internal error")
}

// decodeBody parses a JSON request body into dst; a false return means the
// error response was already written.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "malformed request body")
		return false
	}
	return true
}

// sessionID extracts the session header; a false return means the error
// response was already written.
func sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.Header.Get(sessionHeader)
	if id == "" {
		respondError(w, http.StatusBadRequest, "missing "+sessionHeader+" header")
		return "", false
	}
	return id, true
}

// mapCheckoutError translates order service failures onto HTTP statuses.
// Validation problems are the shopper's to fix; anything else is ours.
func mapCheckoutError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, order.ErrCustomerRequired),
		errors.Is(err, order.ErrDestinationRequired),
		errors.Is(err, order.ErrDeliveryTypeRequired),
		errors.Is(err, order.ErrGiftDetailsRequired),
		errors.Is(err, order.ErrInvalidMethod):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, order.ErrEmptyCart):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, coupon.ErrInvalidCoupon):
		respondError(w, http.StatusUnprocessableEntity, "invalid coupon code")
	case errors.Is(err, order.ErrCheckoutInFlight):
		respondError(w, http.StatusConflict, err.Error())
	default:
		respondInternal(w, r, err)
	}
}
