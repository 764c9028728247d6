package api

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/almasoman/almas-api/internal/domain/order"
)

// PaymentCallback handles GET /api/payments/callback?status=&order_id=, the
// return leg from the payment gateway. Success moves the order to processing
// and consumes the cart; anything else records a failed payment and leaves
// the cart intact. Either way the shopper is redirected back to the
// storefront. Duplicate callbacks find the order already resolved and are
// answered with a plain redirect.
func (h *Handler) PaymentCallback(w http.ResponseWriter, r *http.Request) {
	orderID := r.URL.Query().Get("order_id")
	if orderID == "" {
		respondError(w, http.StatusBadRequest, "missing order_id")
		return
	}
	success := r.URL.Query().Get("status") == "success"

	o, err := h.orders.ResolvePayment(r.Context(), orderID, success)
	switch {
	case err == nil:
		zctx.From(r.Context()).Info("payment resolved",
			zap.String("order_id", orderID),
			zap.String("status", string(o.Status)),
		)
	case errors.Is(err, order.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, order.ErrNotAwaitingPayment):
		// Already resolved; fall through to the redirect.
	default:
		respondInternal(w, r, err)
		return
	}

	target := h.cfg.FrontendBaseURL + "/cart"
	if success {
		target = h.cfg.FrontendBaseURL + "/order-confirmation?orderId=" + orderID
	}
	http.Redirect(w, r, target, http.StatusFound)
}
