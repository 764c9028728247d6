package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"

	"github.com/almasoman/almas-api/internal/domain/pricing"
	"github.com/almasoman/almas-api/internal/domain/product"
)

type productResponse struct {
	ID          string                `json:"id"`
	Name        product.LocalizedText `json:"name"`
	Description product.LocalizedText `json:"description"`
	Price       string                `json:"price"`
	Currency    string                `json:"currency"`
	ImageURL    string                `json:"image_url,omitempty"`
	Category    string                `json:"category,omitempty"`
}

// toProductResponse renders a product with its price in the display currency.
// Prices are stored in OMR; conversion happens at the edge only.
func toProductResponse(p product.Product, currency pricing.CurrencyCode) (productResponse, error) {
	price, err := pricing.Display(p.Price, currency)
	if err != nil {
		return productResponse{}, err
	}
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       price.String(),
		Currency:    string(currency),
		ImageURL:    p.ImageURL,
		Category:    p.Category,
	}, nil
}

// displayCurrency reads the optional ?currency= query, defaulting to OMR.
func displayCurrency(r *http.Request) pricing.CurrencyCode {
	if c := r.URL.Query().Get("currency"); c != "" {
		return pricing.CurrencyCode(c)
	}
	return pricing.OMR
}

// ListProducts handles GET /api/products.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	currency := displayCurrency(r)

	items, err := h.products.List(r.Context())
	if err != nil {
		respondInternal(w, r, err)
		return
	}

	resp := make([]productResponse, len(items))
	for i, p := range items {
		resp[i], err = toProductResponse(p, currency)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	respondJSON(w, http.StatusOK, resp)
}

// GetProduct handles GET /api/products/{id}.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.products.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondInternal(w, r, err)
		return
	}

	resp, err := toProductResponse(*p, displayCurrency(r))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, resp)
}
