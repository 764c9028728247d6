// Package settings holds the storefront's singleton site configuration.
package settings

import (
	"context"

	"github.com/shopspring/decimal"
)

// Settings is the single site-wide configuration row editable from the admin
// back office.
type Settings struct {
	// CardFee is charged when an order includes a gift card message, in OMR.
	CardFee decimal.Decimal
	// WhatsAppNumber receives direct-handoff order summaries, in
	// international format without the leading plus.
	WhatsAppNumber string
	// HeroImageURL is the homepage hero image.
	HeroImageURL string
}

// Patch carries a partial settings update; nil fields are left unchanged.
type Patch struct {
	CardFee        *decimal.Decimal
	WhatsAppNumber *string
	HeroImageURL   *string
}

// Apply returns a copy of s with the patch's non-nil fields applied.
func (p Patch) Apply(s Settings) Settings {
	if p.CardFee != nil {
		s.CardFee = *p.CardFee
	}
	if p.WhatsAppNumber != nil {
		s.WhatsAppNumber = *p.WhatsAppNumber
	}
	if p.HeroImageURL != nil {
		s.HeroImageURL = *p.HeroImageURL
	}
	return s
}

// Repository persists the settings singleton.
type Repository interface {
	Get(ctx context.Context) (*Settings, error)
	Update(ctx context.Context, s *Settings) error
}
