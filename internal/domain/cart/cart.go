// Package cart holds per-session shopping state: cart lines, the wishlist,
// and the currently applied coupon code.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/almasoman/almas-api/internal/domain/product"
)

// Line is a cart entry. Name and unit price are captured when the product is
// added so later catalog edits do not rewrite what the shopper saw.
type Line struct {
	ProductID string                `json:"product_id"`
	Name      product.LocalizedText `json:"name"`
	UnitPrice decimal.Decimal       `json:"unit_price"`
	Quantity  int                   `json:"quantity"`
}

// Cart is the session-scoped shopping state. At most one line exists per
// product and at most one coupon is attached at a time.
type Cart struct {
	SessionID  string   `json:"session_id"`
	Lines      []Line   `json:"lines"`
	CouponCode string   `json:"coupon_code,omitempty"`
	Wishlist   []string `json:"wishlist,omitempty"`
}

// New returns an empty cart for the given session.
func New(sessionID string) *Cart {
	return &Cart{SessionID: sessionID}
}

// Add merges the quantity into an existing line for the same product, or
// appends a new line capturing the product's current name and price.
// Non-positive quantities are ignored.
func (c *Cart) Add(p product.Product, quantity int) {
	if quantity <= 0 {
		return
	}
	for i := range c.Lines {
		if c.Lines[i].ProductID == p.ID {
			c.Lines[i].Quantity += quantity
			return
		}
	}
	c.Lines = append(c.Lines, Line{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Quantity:  quantity,
	})
}

// UpdateQuantity sets the quantity for a product's line. A quantity of zero
// or less removes the line. Unknown products are a no-op.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.Remove(productID)
		return
	}
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Quantity = quantity
			return
		}
	}
}

// Remove drops the line for the given product, if present.
func (c *Cart) Remove(productID string) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart lines and detaches any applied coupon.
// The wishlist survives.
func (c *Cart) Clear() {
	c.Lines = nil
	c.CouponCode = ""
}

// Count returns the total item quantity across all lines. Derived, not stored.
func (c *Cart) Count() int {
	count := 0
	for _, l := range c.Lines {
		count += l.Quantity
	}
	return count
}

// Subtotal returns the sum of unit price times quantity across all lines.
// Derived, not stored.
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.Lines {
		sum = sum.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return sum
}

// AttachCoupon replaces any previously applied coupon with the given code.
// Validation happens before attachment, not here.
func (c *Cart) AttachCoupon(code string) {
	c.CouponCode = code
}

// RemoveCoupon detaches the applied coupon, if any. Never fails.
func (c *Cart) RemoveCoupon() {
	c.CouponCode = ""
}

// ToggleWishlist adds the product to the wishlist, or removes it when already
// present. It reports whether the product is wishlisted after the call.
func (c *Cart) ToggleWishlist(productID string) bool {
	for i, id := range c.Wishlist {
		if id == productID {
			c.Wishlist = append(c.Wishlist[:i], c.Wishlist[i+1:]...)
			return false
		}
	}
	c.Wishlist = append(c.Wishlist, productID)
	return true
}

// InWishlist reports whether the product is on the wishlist.
func (c *Cart) InWishlist(productID string) bool {
	for _, id := range c.Wishlist {
		if id == productID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy. Stores hand out clones so callers never share
// slices with cached state.
func (c *Cart) Clone() *Cart {
	cp := &Cart{
		SessionID:  c.SessionID,
		CouponCode: c.CouponCode,
	}
	if len(c.Lines) > 0 {
		cp.Lines = make([]Line, len(c.Lines))
		copy(cp.Lines, c.Lines)
	}
	if len(c.Wishlist) > 0 {
		cp.Wishlist = make([]string, len(c.Wishlist))
		copy(cp.Wishlist, c.Wishlist)
	}
	return cp
}
