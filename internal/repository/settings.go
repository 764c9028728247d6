package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/almasoman/almas-api/internal/domain/settings"
)

const (
	getSettingsSQL = `SELECT card_fee, whatsapp_number, hero_image_url FROM site_settings WHERE id = 1`

	updateSettingsSQL = `UPDATE site_settings SET
		card_fee = $1, whatsapp_number = $2, hero_image_url = $3
		WHERE id = 1`
)

var _ settings.Repository = (*SettingsRepository)(nil)

// SettingsRepository implements settings.Repository backed by PostgreSQL.
// The settings row is a singleton seeded by the schema migration.
type SettingsRepository struct {
	pool *pgxpool.Pool
}

// NewSettingsRepository returns a SettingsRepository that uses the given pool.
func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{pool: pool}
}

// Get returns the site settings singleton.
func (r *SettingsRepository) Get(ctx context.Context) (*settings.Settings, error) {
	var s settings.Settings
	err := r.pool.QueryRow(ctx, getSettingsSQL).Scan(&s.CardFee, &s.WhatsAppNumber, &s.HeroImageURL)
	if err != nil {
		return nil, fmt.Errorf("getting site settings: %w", err)
	}
	return &s, nil
}

// Update rewrites the site settings singleton.
func (r *SettingsRepository) Update(ctx context.Context, s *settings.Settings) error {
	_, err := r.pool.Exec(ctx, updateSettingsSQL, s.CardFee, s.WhatsAppNumber, s.HeroImageURL)
	if err != nil {
		return fmt.Errorf("updating site settings: %w", err)
	}
	return nil
}
