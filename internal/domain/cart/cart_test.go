package cart

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almasoman/almas-api/internal/domain/product"
)

func ring() product.Product {
	return product.Product{
		ID:    "p1",
		Name:  product.LocalizedText{En: "Gold Ring", Ar: "خاتم ذهب"},
		Price: decimal.RequireFromString("45.500"),
	}
}

func necklace() product.Product {
	return product.Product{
		ID:    "p2",
		Name:  product.LocalizedText{En: "Pearl Necklace", Ar: "عقد لؤلؤ"},
		Price: decimal.RequireFromString("120.000"),
	}
}

func TestCart_AddMergesExistingLine(t *testing.T) {
	c := New("s1")
	c.Add(ring(), 1)
	c.Add(necklace(), 2)
	c.Add(ring(), 3)

	require.Len(t, c.Lines, 2, "adding an existing product must not duplicate its line")
	assert.Equal(t, 4, c.Lines[0].Quantity)
	assert.Equal(t, 6, c.Count())
}

func TestCart_AddIgnoresNonPositiveQuantity(t *testing.T) {
	c := New("s1")
	c.Add(ring(), 0)
	c.Add(ring(), -2)
	assert.Empty(t, c.Lines)
}

func TestCart_AddSnapshotsNameAndPrice(t *testing.T) {
	p := ring()
	c := New("s1")
	c.Add(p, 1)

	// A later catalog edit must not follow into the cart line.
	p.Price = decimal.RequireFromString("99.999")
	p.Name.En = "Renamed"

	assert.Equal(t, "Gold Ring", c.Lines[0].Name.En)
	assert.Equal(t, "45.500", c.Lines[0].UnitPrice.StringFixed(3))
}

func TestCart_UpdateQuantity(t *testing.T) {
	c := New("s1")
	c.Add(ring(), 2)

	c.UpdateQuantity("p1", 5)
	assert.Equal(t, 5, c.Lines[0].Quantity)

	c.UpdateQuantity("p1", 0)
	assert.Empty(t, c.Lines, "quantity zero removes the line")

	c.Add(ring(), 1)
	c.UpdateQuantity("p1", -3)
	assert.Empty(t, c.Lines, "negative quantity removes the line")
}

func TestCart_Subtotal(t *testing.T) {
	c := New("s1")
	c.Add(ring(), 2)     // 91.000
	c.Add(necklace(), 1) // 120.000

	want := decimal.RequireFromString("211.000")
	assert.True(t, want.Equal(c.Subtotal()), "want %s, got %s", want, c.Subtotal())
}

func TestCart_ClearDetachesCouponKeepsWishlist(t *testing.T) {
	c := New("s1")
	c.Add(ring(), 1)
	c.AttachCoupon("SUMMER10")
	c.ToggleWishlist("p2")

	c.Clear()

	assert.Empty(t, c.Lines)
	assert.Empty(t, c.CouponCode)
	assert.True(t, c.InWishlist("p2"))
}

func TestCart_AttachCouponReplaces(t *testing.T) {
	c := New("s1")
	c.AttachCoupon("SUMMER10")
	c.AttachCoupon("WELCOME20")
	assert.Equal(t, "WELCOME20", c.CouponCode)

	c.RemoveCoupon()
	assert.Empty(t, c.CouponCode)
}

func TestCart_ToggleWishlist(t *testing.T) {
	c := New("s1")

	assert.True(t, c.ToggleWishlist("p1"))
	assert.True(t, c.InWishlist("p1"))

	assert.False(t, c.ToggleWishlist("p1"), "second toggle removes")
	assert.False(t, c.InWishlist("p1"))
}

func TestMemoryStore_LoadMissingReturnsFreshCart(t *testing.T) {
	s := NewMemoryStore()

	c, err := s.Load(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Equal(t, "nobody", c.SessionID)
	assert.Empty(t, c.Lines)
}

func TestMemoryStore_SaveLoadIsolation(t *testing.T) {
	s := NewMemoryStore()

	c := New("s1")
	c.Add(ring(), 1)
	require.NoError(t, s.Save(context.Background(), c))

	// Mutating the saved cart must not leak into the store.
	c.Add(necklace(), 5)

	got, err := s.Load(context.Background(), "s1")
	require.NoError(t, err)
	assert.Len(t, got.Lines, 1)

	// Mutating the loaded copy must not leak either.
	got.Clear()
	again, err := s.Load(context.Background(), "s1")
	require.NoError(t, err)
	assert.Len(t, again.Lines, 1)
}
