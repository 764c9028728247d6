package order

// Status is an order's lifecycle state.
type Status string

const (
	// StatusPending is the entry state for direct-handoff (WhatsApp) orders.
	StatusPending Status = "pending"
	// StatusPendingPayment is the entry state for gateway orders awaiting the
	// payment callback.
	StatusPendingPayment Status = "pending_payment"
	StatusProcessing     Status = "processing"
	StatusShipped        Status = "shipped"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
	// StatusPaymentFailed records a failed or cancelled gateway payment.
	StatusPaymentFailed Status = "payment_failed"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPendingPayment, StatusProcessing,
		StatusShipped, StatusDelivered, StatusCancelled, StatusPaymentFailed:
		return true
	}
	return false
}

// adminAssignable are the states the back office may assign freely, in any
// order. Payment states are reachable only through the gateway callback.
var adminAssignable = map[Status]struct{}{
	StatusPending:    {},
	StatusProcessing: {},
	StatusShipped:    {},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

// AdminAssignable reports whether the back office may set an order to s.
func AdminAssignable(s Status) bool {
	_, ok := adminAssignable[s]
	return ok
}

// clearCartOnCreate decides, per creation status, whether placing the order
// consumes the session cart immediately. Gateway orders keep the cart until
// the success callback fires.
var clearCartOnCreate = map[Status]bool{
	StatusPending:        true,
	StatusPendingPayment: false,
}

// ClearsCartOnCreate reports whether an order created in status s clears the
// cart as a side effect of creation.
func ClearsCartOnCreate(s Status) bool {
	return clearCartOnCreate[s]
}

// Method selects the payment path at checkout.
type Method string

const (
	// MethodGateway redirects the shopper to the external payment page.
	MethodGateway Method = "gateway"
	// MethodWhatsApp hands the order summary to the store's WhatsApp number.
	MethodWhatsApp Method = "whatsapp"
)

// Valid reports whether m is a known payment method.
func (m Method) Valid() bool {
	return m == MethodGateway || m == MethodWhatsApp
}

// CreationStatus returns the entry state for an order placed via m.
func CreationStatus(m Method) Status {
	if m == MethodGateway {
		return StatusPendingPayment
	}
	return StatusPending
}
