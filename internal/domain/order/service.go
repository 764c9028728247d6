package order

import (
	"context"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/almasoman/almas-api/internal/domain/cart"
	"github.com/almasoman/almas-api/internal/domain/coupon"
	"github.com/almasoman/almas-api/internal/domain/pricing"
	"github.com/almasoman/almas-api/internal/domain/settings"
	"github.com/almasoman/almas-api/internal/domain/shipping"
)

// Sentinel errors for checkout validation.
var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrCustomerRequired     = errors.New("customer name and contact required")
	ErrDestinationRequired  = errors.New("shipping destination required")
	ErrDeliveryTypeRequired = errors.New("delivery type required for oman")
	ErrGiftDetailsRequired  = errors.New("gift recipient details required")
	ErrInvalidMethod        = errors.New("unknown payment method")
	ErrCheckoutInFlight     = errors.New("checkout already in progress for this session")
	ErrNotAwaitingPayment   = errors.New("order is not awaiting payment")
	ErrStatusNotAssignable  = errors.New("status cannot be assigned by admin")
	ErrConfirmationPending  = errors.New("payment confirmation still pending")
)

// CheckoutRequest carries everything needed to place an order from a session
// cart.
type CheckoutRequest struct {
	SessionID     string
	CustomerName  string
	CustomerPhone string
	Destination   shipping.Destination
	Gift          *GiftDetails
	WithCard      bool
	CardMessage   string
	Method        Method
}

// CheckoutResult reports the created order and whether the session cart was
// consumed as part of creation.
type CheckoutResult struct {
	Order       *Order
	CartCleared bool
}

// Service drives checkout and the order lifecycle.
type Service struct {
	coupons  coupon.Validator
	orders   Repository
	carts    cart.Store
	settings settings.Repository
	lg       *zap.Logger

	now   func() time.Time
	newID func() string

	mu       sync.Mutex
	inflight map[string]struct{}      // sessions with an outstanding checkout
	waiters  map[string][]chan Status // payment confirmation subscribers by order ID
}

// NewService creates an order Service with the required dependencies.
func NewService(
	coupons coupon.Validator,
	orders Repository,
	carts cart.Store,
	siteSettings settings.Repository,
	lg *zap.Logger,
) *Service {
	return &Service{
		coupons:  coupons,
		orders:   orders,
		carts:    carts,
		settings: siteSettings,
		lg:       lg,
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
		inflight: make(map[string]struct{}),
		waiters:  make(map[string][]chan Status),
	}
}

// Checkout validates the request, prices the session cart, persists the order
// in its method-dependent entry state, and applies the cart-clearing policy.
//
// A persistence failure leaves the cart and coupon untouched and returns the
// error; no partially created order is ever reported. At most one checkout
// runs per session at a time.
func (s *Service) Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error) {
	if err := validateCheckout(req); err != nil {
		return nil, err
	}

	if !s.beginCheckout(req.SessionID) {
		return nil, ErrCheckoutInFlight
	}
	defer s.endCheckout(req.SessionID)

	c, err := s.carts.Load(ctx, req.SessionID)
	if err != nil {
		return nil, errors.Wrap(err, "load cart")
	}
	if len(c.Lines) == 0 {
		return nil, ErrEmptyCart
	}

	// Re-validate the attached coupon at checkout time; a code that went
	// stale since it was applied fails the whole checkout.
	var applied *coupon.Coupon
	if c.CouponCode != "" {
		applied, err = s.coupons.Validate(ctx, c.CouponCode)
		if err != nil {
			return nil, errors.Wrap(err, "validate coupon")
		}
	}

	cardFee := decimal.Zero
	if req.WithCard {
		cfg, err := s.settings.Get(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "load site settings")
		}
		cardFee = cfg.CardFee
	}

	breakdown := pricing.Compose(c.Subtotal(), applied, cardFee, shipping.Fee(req.Destination))

	lines := make([]Line, len(c.Lines))
	for i, l := range c.Lines {
		lines[i] = Line{
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
		}
	}

	now := s.now()
	o := &Order{
		ID:            s.newID(),
		SessionID:     req.SessionID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Lines:         lines,
		Destination:   req.Destination,
		Gift:          req.Gift,
		WithCard:      req.WithCard,
		CardMessage:   req.CardMessage,
		Pricing:       breakdown,
		CouponCode:    c.CouponCode,
		PaymentMethod: req.Method,
		Status:        CreationStatus(req.Method),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.orders.Create(ctx, o); err != nil {
		return nil, errors.Wrap(err, "create order")
	}

	cleared := false
	if ClearsCartOnCreate(o.Status) {
		cleared = s.clearCart(ctx, req.SessionID)
	}

	return &CheckoutResult{Order: o, CartCleared: cleared}, nil
}

// ResolvePayment applies a gateway callback to an order awaiting payment.
// Success moves it to Processing and consumes the session cart; failure moves
// it to PaymentFailed and preserves the cart. Orders in any other state
// return ErrNotAwaitingPayment, so duplicate callbacks are harmless.
func (s *Service) ResolvePayment(ctx context.Context, orderID string, success bool) (*Order, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.Status != StatusPendingPayment {
		return nil, ErrNotAwaitingPayment
	}

	next := StatusPaymentFailed
	if success {
		next = StatusProcessing
	}

	if err := s.orders.UpdateStatus(ctx, orderID, next); err != nil {
		return nil, errors.Wrap(err, "update order status")
	}

	if success {
		s.clearCart(ctx, o.SessionID)
	}

	o.Status = next
	o.UpdatedAt = s.now()
	s.notifyWaiters(orderID, next)

	return o, nil
}

// AwaitPayment blocks until the order's payment callback arrives, the timeout
// elapses, or ctx is cancelled. Timeout and cancellation leave the order in
// PendingPayment for later manual resolution; only a real callback moves it.
func (s *Service) AwaitPayment(ctx context.Context, orderID string, timeout time.Duration) (Status, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return "", err
	}
	if o.Status != StatusPendingPayment {
		return o.Status, nil
	}

	ch := s.subscribe(orderID)
	defer s.unsubscribe(orderID, ch)

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case next := <-ch:
		return next, nil
	case <-timer.C:
		return StatusPendingPayment, ErrConfirmationPending
	case <-ctx.Done():
		return StatusPendingPayment, ctx.Err()
	}
}

// SetStatus performs an admin status reassignment. Any of the fulfilment
// states may be assigned regardless of the current one; payment states are
// rejected.
func (s *Service) SetStatus(ctx context.Context, orderID string, next Status) error {
	if !AdminAssignable(next) {
		return ErrStatusNotAssignable
	}
	if _, err := s.orders.GetByID(ctx, orderID); err != nil {
		return err
	}
	return s.orders.UpdateStatus(ctx, orderID, next)
}

func validateCheckout(req CheckoutRequest) error {
	if req.SessionID == "" || req.CustomerName == "" || req.CustomerPhone == "" {
		return ErrCustomerRequired
	}
	if req.Destination == nil {
		return ErrDestinationRequired
	}
	if d, ok := req.Destination.(shipping.Oman); ok && d.DeliveryType == "" {
		return ErrDeliveryTypeRequired
	}
	if req.Gift != nil && (req.Gift.RecipientName == "" || req.Gift.RecipientPhone == "") {
		return ErrGiftDetailsRequired
	}
	if !req.Method.Valid() {
		return ErrInvalidMethod
	}
	return nil
}

func (s *Service) beginCheckout(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[sessionID]; busy {
		return false
	}
	s.inflight[sessionID] = struct{}{}
	return true
}

func (s *Service) endCheckout(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, sessionID)
}

// clearCart empties the session cart. The order already exists at this point,
// so a save failure is logged rather than surfaced.
func (s *Service) clearCart(ctx context.Context, sessionID string) bool {
	c, err := s.carts.Load(ctx, sessionID)
	if err != nil {
		s.lg.Warn("load cart for clearing", zap.String("session_id", sessionID), zap.Error(err))
		return false
	}
	c.Clear()
	if err := s.carts.Save(ctx, c); err != nil {
		s.lg.Warn("clear cart", zap.String("session_id", sessionID), zap.Error(err))
		return false
	}
	return true
}

func (s *Service) subscribe(orderID string) chan Status {
	ch := make(chan Status, 1)
	s.mu.Lock()
	s.waiters[orderID] = append(s.waiters[orderID], ch)
	s.mu.Unlock()
	return ch
}

func (s *Service) unsubscribe(orderID string, ch chan Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	subs := s.waiters[orderID]
	for i, sub := range subs {
		if sub == ch {
			s.waiters[orderID] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	if len(s.waiters[orderID]) == 0 {
		delete(s.waiters, orderID)
	}
}

func (s *Service) notifyWaiters(orderID string, next Status) {
	s.mu.Lock()
	subs := s.waiters[orderID]
	delete(s.waiters, orderID)
	s.mu.Unlock()

	for _, ch := range subs {
		ch <- next
	}
}
