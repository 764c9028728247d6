package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"

	"github.com/almasoman/almas-api/internal/domain/cart"
	"github.com/almasoman/almas-api/internal/domain/coupon"
	"github.com/almasoman/almas-api/internal/domain/product"
)

type cartLineResponse struct {
	ProductID string                `json:"product_id"`
	Name      product.LocalizedText `json:"name"`
	UnitPrice string                `json:"unit_price"`
	Quantity  int                   `json:"quantity"`
}

type cartResponse struct {
	SessionID  string             `json:"session_id"`
	Lines      []cartLineResponse `json:"lines"`
	CouponCode string             `json:"coupon_code,omitempty"`
	Count      int                `json:"count"`
	Subtotal   string             `json:"subtotal"`
}

func toCartResponse(c *cart.Cart) cartResponse {
	lines := make([]cartLineResponse, len(c.Lines))
	for i, l := range c.Lines {
		lines[i] = cartLineResponse{
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice.StringFixed(3),
			Quantity:  l.Quantity,
		}
	}
	return cartResponse{
		SessionID:  c.SessionID,
		Lines:      lines,
		CouponCode: c.CouponCode,
		Count:      c.Count(),
		Subtotal:   c.Subtotal().StringFixed(3),
	}
}

// GetCart handles GET /api/cart.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionID(w, r)
	if !ok {
		return
	}

	c, err := h.carts.Load(r.Context(), session)
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toCartResponse(c))
}

type addItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// AddCartItem handles POST /api/cart/items. The product's current name and
// price are captured into the line at add time.
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionID(w, r)
	if !ok {
		return
	}
	var req addItemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Quantity <= 0 {
		respondError(w, http.StatusUnprocessableEntity, "quantity must be positive")
		return
	}

	p, err := h.products.GetByID(r.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			respondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		respondInternal(w, r, err)
		return
	}

	c, err := h.carts.Load(r.Context(), session)
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	c.Add(*p, req.Quantity)
	if err := h.carts.Save(r.Context(), c); err != nil {
		respondInternal(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toCartResponse(c))
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateCartItem handles PATCH /api/cart/items/{productId}. A quantity of
// zero or less removes the line.
func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionID(w, r)
	if !ok {
		return
	}
	var req updateItemRequest
	if !decodeBody(w, r, &req) {
		return
	}

	c, err := h.carts.Load(r.Context(), session)
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	c.UpdateQuantity(chi.URLParam(r, "productId"), req.Quantity)
	if err := h.carts.Save(r.Context(), c); err != nil {
		respondInternal(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toCartResponse(c))
}

// RemoveCartItem handles DELETE /api/cart/items/{productId}.
func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionID(w, r)
	if !ok {
		return
	}

	c, err := h.carts.Load(r.Context(), session)
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	c.Remove(chi.URLParam(r, "productId"))
	if err := h.carts.Save(r.Context(), c); err != nil {
		respondInternal(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toCartResponse(c))
}

type applyCouponRequest struct {
	Code string `json:"code"`
}

// ApplyCoupon handles POST /api/cart/coupon. The code is validated before it
// is attached; applying a second code replaces the first.
func (h *Handler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionID(w, r)
	if !ok {
		return
	}
	var req applyCouponRequest
	if !decodeBody(w, r, &req) {
		return
	}

	applied, err := h.validator.Validate(r.Context(), req.Code)
	if err != nil {
		if errors.Is(err, coupon.ErrInvalidCoupon) {
			respondError(w, http.StatusUnprocessableEntity, "invalid coupon code")
			return
		}
		respondInternal(w, r, err)
		return
	}

	c, err := h.carts.Load(r.Context(), session)
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	c.AttachCoupon(applied.Code)
	if err := h.carts.Save(r.Context(), c); err != nil {
		respondInternal(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toCartResponse(c))
}

// RemoveCoupon handles DELETE /api/cart/coupon. Removing when no coupon is
// applied still succeeds.
func (h *Handler) RemoveCoupon(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionID(w, r)
	if !ok {
		return
	}

	c, err := h.carts.Load(r.Context(), session)
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	c.RemoveCoupon()
	if err := h.carts.Save(r.Context(), c); err != nil {
		respondInternal(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toCartResponse(c))
}

type wishlistResponse struct {
	ProductIDs []string `json:"product_ids"`
}

// GetWishlist handles GET /api/wishlist.
func (h *Handler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionID(w, r)
	if !ok {
		return
	}

	c, err := h.carts.Load(r.Context(), session)
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	ids := c.Wishlist
	if ids == nil {
		ids = []string{}
	}
	respondJSON(w, http.StatusOK, wishlistResponse{ProductIDs: ids})
}

type toggleWishlistResponse struct {
	ProductID  string `json:"product_id"`
	Wishlisted bool   `json:"wishlisted"`
}

// ToggleWishlist handles POST /api/wishlist/{productId}.
func (h *Handler) ToggleWishlist(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionID(w, r)
	if !ok {
		return
	}
	productID := chi.URLParam(r, "productId")

	if _, err := h.products.GetByID(r.Context(), productID); err != nil {
		if errors.Is(err, product.ErrNotFound) {
			respondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		respondInternal(w, r, err)
		return
	}

	c, err := h.carts.Load(r.Context(), session)
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	wishlisted := c.ToggleWishlist(productID)
	if err := h.carts.Save(r.Context(), c); err != nil {
		respondInternal(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toggleWishlistResponse{ProductID: productID, Wishlisted: wishlisted})
}
