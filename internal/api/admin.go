package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/almasoman/almas-api/internal/domain/coupon"
	"github.com/almasoman/almas-api/internal/domain/order"
	"github.com/almasoman/almas-api/internal/domain/product"
	"github.com/almasoman/almas-api/internal/domain/settings"
	"github.com/almasoman/almas-api/internal/domain/user"
	"github.com/almasoman/almas-api/internal/upload"
)

type adminProductRequest struct {
	Name        product.LocalizedText `json:"name"`
	Description product.LocalizedText `json:"description"`
	Price       string                `json:"price"`
	ImageURL    string                `json:"image_url"`
	Category    string                `json:"category"`
}

func (req adminProductRequest) toProduct(id string) (*product.Product, error) {
	if req.Name.En == "" && req.Name.Ar == "" {
		return nil, errors.New("product name required")
	}
	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		return nil, errors.New("price must be a non-negative decimal")
	}
	return &product.Product{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
	}, nil
}

// AdminCreateProduct handles POST /api/admin/products.
func (h *Handler) AdminCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req adminProductRequest
	if !decodeBody(w, r, &req) {
		return
	}
	p, err := req.toProduct(uuid.New().String())
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := h.products.Create(r.Context(), p); err != nil {
		respondInternal(w, r, err)
		return
	}
	resp, _ := toProductResponse(*p, "OMR")
	respondJSON(w, http.StatusCreated, resp)
}

// AdminUpdateProduct handles PUT /api/admin/products/{id}.
func (h *Handler) AdminUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req adminProductRequest
	if !decodeBody(w, r, &req) {
		return
	}
	p, err := req.toProduct(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := h.products.Update(r.Context(), p); err != nil {
		if errors.Is(err, product.ErrNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondInternal(w, r, err)
		return
	}
	resp, _ := toProductResponse(*p, "OMR")
	respondJSON(w, http.StatusOK, resp)
}

// AdminDeleteProduct handles DELETE /api/admin/products/{id}. Existing carts
// keep their captured lines; deletion only removes the product from the
// catalog.
func (h *Handler) AdminDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.products.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, product.ErrNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondInternal(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type couponResponse struct {
	ID                 string `json:"id"`
	Code               string `json:"code"`
	DiscountPercentage string `json:"discount_percentage"`
	ExpiryDate         string `json:"expiry_date"`
	Active             bool   `json:"active"`
}

func toCouponResponse(c coupon.Coupon) couponResponse {
	return couponResponse{
		ID:                 c.ID,
		Code:               c.Code,
		DiscountPercentage: c.DiscountPercentage.String(),
		ExpiryDate:         c.ExpiryDate,
		Active:             c.Active,
	}
}

// AdminListCoupons handles GET /api/admin/coupons.
func (h *Handler) AdminListCoupons(w http.ResponseWriter, r *http.Request) {
	items, err := h.coupons.List(r.Context())
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	resp := make([]couponResponse, len(items))
	for i, c := range items {
		resp[i] = toCouponResponse(c)
	}
	respondJSON(w, http.StatusOK, resp)
}

type adminCouponRequest struct {
	Code               string `json:"code"`
	DiscountPercentage string `json:"discount_percentage"`
	ExpiryDate         string `json:"expiry_date"`
	Active             bool   `json:"active"`
}

func (req adminCouponRequest) toCoupon(id string) (*coupon.Coupon, error) {
	if req.Code == "" {
		return nil, errors.New("coupon code required")
	}
	pct, err := decimal.NewFromString(req.DiscountPercentage)
	if err != nil || !pct.IsPositive() || pct.GreaterThan(decimal.NewFromInt(100)) {
		return nil, errors.New("discount percentage must be in (0, 100]")
	}
	if _, err := time.Parse(time.DateOnly, req.ExpiryDate); err != nil {
		return nil, errors.New("expiry date must be YYYY-MM-DD")
	}

	c := &coupon.Coupon{
		ID:                 id,
		Code:               req.Code,
		DiscountPercentage: pct,
		ExpiryDate:         req.ExpiryDate,
		Active:             req.Active,
	}
	c.Normalize()
	return c, nil
}

// AdminCreateCoupon handles POST /api/admin/coupons.
func (h *Handler) AdminCreateCoupon(w http.ResponseWriter, r *http.Request) {
	var req adminCouponRequest
	if !decodeBody(w, r, &req) {
		return
	}
	c, err := req.toCoupon(uuid.New().String())
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := h.coupons.Create(r.Context(), c); err != nil {
		if errors.Is(err, coupon.ErrCodeExists) {
			respondError(w, http.StatusConflict, err.Error())
			return
		}
		respondInternal(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, toCouponResponse(*c))
}

// AdminUpdateCoupon handles PUT /api/admin/coupons/{id}.
func (h *Handler) AdminUpdateCoupon(w http.ResponseWriter, r *http.Request) {
	var req adminCouponRequest
	if !decodeBody(w, r, &req) {
		return
	}
	c, err := req.toCoupon(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := h.coupons.Update(r.Context(), c); err != nil {
		switch {
		case errors.Is(err, coupon.ErrInvalidCoupon):
			respondError(w, http.StatusNotFound, "coupon not found")
		case errors.Is(err, coupon.ErrCodeExists):
			respondError(w, http.StatusConflict, err.Error())
		default:
			respondInternal(w, r, err)
		}
		return
	}
	respondJSON(w, http.StatusOK, toCouponResponse(*c))
}

// AdminDeleteCoupon handles DELETE /api/admin/coupons/{id}. Orders that
// already used the code keep their recorded discount.
func (h *Handler) AdminDeleteCoupon(w http.ResponseWriter, r *http.Request) {
	if err := h.coupons.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, coupon.ErrInvalidCoupon) {
			respondError(w, http.StatusNotFound, "coupon not found")
			return
		}
		respondInternal(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AdminListOrders handles GET /api/admin/orders.
func (h *Handler) AdminListOrders(w http.ResponseWriter, r *http.Request) {
	items, err := h.orderRepo.List(r.Context())
	if err != nil {
		respondInternal(w, r, err)
		return
	}

	resp := make([]orderResponse, len(items))
	for i := range items {
		resp[i], err = toOrderResponse(&items[i])
		if err != nil {
			respondInternal(w, r, err)
			return
		}
	}
	respondJSON(w, http.StatusOK, resp)
}

type setStatusRequest struct {
	Status order.Status `json:"status"`
}

// AdminSetOrderStatus handles PUT /api/admin/orders/{id}/status. Fulfilment
// states may be assigned freely; payment states only move via the gateway
// callback and are rejected here.
func (h *Handler) AdminSetOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req setStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}

	err := h.orders.SetStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, order.ErrStatusNotAssignable):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, order.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	default:
		respondInternal(w, r, err)
	}
}

type userResponse struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Email  string      `json:"email"`
	Role   user.Role   `json:"role"`
	Status user.Status `json:"status"`
}

func toUserResponse(u user.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Status: u.Status}
}

// AdminListUsers handles GET /api/admin/users.
func (h *Handler) AdminListUsers(w http.ResponseWriter, r *http.Request) {
	items, err := h.users.List(r.Context())
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	resp := make([]userResponse, len(items))
	for i, u := range items {
		resp[i] = toUserResponse(u)
	}
	respondJSON(w, http.StatusOK, resp)
}

type adminUserRequest struct {
	Name   string      `json:"name"`
	Email  string      `json:"email"`
	Role   user.Role   `json:"role"`
	Status user.Status `json:"status"`
}

func (req adminUserRequest) toUser(id string) (*user.User, error) {
	if req.Name == "" || req.Email == "" {
		return nil, errors.New("name and email required")
	}
	if req.Role != user.RoleAdmin && req.Role != user.RoleCustomer {
		return nil, errors.New("unknown role")
	}
	switch req.Status {
	case user.StatusActive, user.StatusInactive, user.StatusSuspended:
	default:
		return nil, errors.New("unknown status")
	}
	return &user.User{ID: id, Name: req.Name, Email: req.Email, Role: req.Role, Status: req.Status}, nil
}

// AdminCreateUser handles POST /api/admin/users.
func (h *Handler) AdminCreateUser(w http.ResponseWriter, r *http.Request) {
	var req adminUserRequest
	if !decodeBody(w, r, &req) {
		return
	}
	u, err := req.toUser(uuid.New().String())
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := h.users.Create(r.Context(), u); err != nil {
		if errors.Is(err, user.ErrEmailExists) {
			respondError(w, http.StatusConflict, err.Error())
			return
		}
		respondInternal(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, toUserResponse(*u))
}

// AdminUpdateUser handles PUT /api/admin/users/{id}.
func (h *Handler) AdminUpdateUser(w http.ResponseWriter, r *http.Request) {
	var req adminUserRequest
	if !decodeBody(w, r, &req) {
		return
	}
	u, err := req.toUser(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := h.users.Update(r.Context(), u); err != nil {
		switch {
		case errors.Is(err, user.ErrNotFound):
			respondError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, user.ErrEmailExists):
			respondError(w, http.StatusConflict, err.Error())
		default:
			respondInternal(w, r, err)
		}
		return
	}
	respondJSON(w, http.StatusOK, toUserResponse(*u))
}

// AdminDeleteUser handles DELETE /api/admin/users/{id}.
func (h *Handler) AdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondInternal(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type settingsResponse struct {
	CardFee        string `json:"card_fee"`
	WhatsAppNumber string `json:"whatsapp_number"`
	HeroImageURL   string `json:"hero_image_url"`
}

// AdminGetSettings handles GET /api/admin/settings.
func (h *Handler) AdminGetSettings(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.settings.Get(r.Context())
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, settingsResponse{
		CardFee:        cfg.CardFee.StringFixed(3),
		WhatsAppNumber: cfg.WhatsAppNumber,
		HeroImageURL:   cfg.HeroImageURL,
	})
}

type patchSettingsRequest struct {
	CardFee        *string `json:"card_fee,omitempty"`
	WhatsAppNumber *string `json:"whatsapp_number,omitempty"`
	HeroImageURL   *string `json:"hero_image_url,omitempty"`
}

// AdminPatchSettings handles PATCH /api/admin/settings; absent fields stay
// unchanged.
func (h *Handler) AdminPatchSettings(w http.ResponseWriter, r *http.Request) {
	var req patchSettingsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	patch := settings.Patch{
		WhatsAppNumber: req.WhatsAppNumber,
		HeroImageURL:   req.HeroImageURL,
	}
	if req.CardFee != nil {
		fee, err := decimal.NewFromString(*req.CardFee)
		if err != nil || fee.IsNegative() {
			respondError(w, http.StatusUnprocessableEntity, "card fee must be a non-negative decimal")
			return
		}
		patch.CardFee = &fee
	}

	current, err := h.settings.Get(r.Context())
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	next := patch.Apply(*current)
	if err := h.settings.Update(r.Context(), &next); err != nil {
		respondInternal(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, settingsResponse{
		CardFee:        next.CardFee.StringFixed(3),
		WhatsAppNumber: next.WhatsAppNumber,
		HeroImageURL:   next.HeroImageURL,
	})
}

type uploadRequest struct {
	DataURI string `json:"data_uri"`
}

type uploadResponse struct {
	URL string `json:"url"`
}

// AdminUpload handles POST /api/admin/uploads: a base64 data URI goes in, a
// public image URL comes out.
func (h *Handler) AdminUpload(w http.ResponseWriter, r *http.Request) {
	var req uploadRequest
	if !decodeBody(w, r, &req) {
		return
	}

	img, err := upload.ParseDataURI(req.DataURI)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	publicURL, err := h.uploader.Upload(r.Context(), img)
	if err != nil {
		switch {
		case errors.Is(err, upload.ErrBucketNotFound):
			respondError(w, http.StatusBadGateway, err.Error())
		case errors.Is(err, upload.ErrPolicyDenied):
			respondError(w, http.StatusBadGateway, err.Error())
		case errors.Is(err, upload.ErrNotConfigured):
			respondError(w, http.StatusServiceUnavailable, err.Error())
		default:
			respondInternal(w, r, err)
		}
		return
	}
	respondJSON(w, http.StatusCreated, uploadResponse{URL: publicURL})
}
