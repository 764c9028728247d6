package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter mounts every storefront and admin route under /api. The admin
// subtree is wrapped with the API key guard.
func NewRouter(h *Handler, guard func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", h.ListProducts)
		r.Get("/products/{id}", h.GetProduct)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.GetCart)
			r.Post("/items", h.AddCartItem)
			r.Patch("/items/{productId}", h.UpdateCartItem)
			r.Delete("/items/{productId}", h.RemoveCartItem)
			r.Post("/coupon", h.ApplyCoupon)
			r.Delete("/coupon", h.RemoveCoupon)
		})

		r.Get("/wishlist", h.GetWishlist)
		r.Post("/wishlist/{productId}", h.ToggleWishlist)

		r.Post("/checkout", h.Checkout)
		r.Get("/payments/callback", h.PaymentCallback)
		r.Get("/orders/{id}", h.GetOrder)

		r.Post("/assistant/chat", h.AssistantChat)
		r.Post("/assistant/image-search", h.AssistantImageSearch)

		r.Route("/admin", func(r chi.Router) {
			r.Use(guard)

			r.Post("/products", h.AdminCreateProduct)
			r.Put("/products/{id}", h.AdminUpdateProduct)
			r.Delete("/products/{id}", h.AdminDeleteProduct)

			r.Get("/coupons", h.AdminListCoupons)
			r.Post("/coupons", h.AdminCreateCoupon)
			r.Put("/coupons/{id}", h.AdminUpdateCoupon)
			r.Delete("/coupons/{id}", h.AdminDeleteCoupon)

			r.Get("/orders", h.AdminListOrders)
			r.Put("/orders/{id}/status", h.AdminSetOrderStatus)

			r.Get("/users", h.AdminListUsers)
			r.Post("/users", h.AdminCreateUser)
			r.Put("/users/{id}", h.AdminUpdateUser)
			r.Delete("/users/{id}", h.AdminDeleteUser)

			r.Get("/settings", h.AdminGetSettings)
			r.Patch("/settings", h.AdminPatchSettings)

			r.Post("/uploads", h.AdminUpload)
		})
	})

	return r
}
