package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/almasoman/almas-api/internal/domain/cart"
)

const (
	getCartSQL = `SELECT payload FROM carts WHERE session_id = $1`

	upsertCartSQL = `INSERT INTO carts (session_id, payload, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (session_id) DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()`
)

var _ cart.Store = (*CartStore)(nil)

// CartStore is a durable cart.Store backed by PostgreSQL, for deployments
// where session carts must survive API restarts.
type CartStore struct {
	pool *pgxpool.Pool
}

// NewCartStore returns a CartStore that uses the given pool.
func NewCartStore(pool *pgxpool.Pool) *CartStore {
	return &CartStore{pool: pool}
}

// Load returns the session's cart, or a fresh empty cart when the session has
// none yet.
func (s *CartStore) Load(ctx context.Context, sessionID string) (*cart.Cart, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx, getCartSQL, sessionID).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return cart.New(sessionID), nil
		}
		return nil, fmt.Errorf("loading cart %q: %w", sessionID, err)
	}

	var c cart.Cart
	if err := json.Unmarshal(payload, &c); err != nil {
		return nil, fmt.Errorf("unmarshaling cart %q: %w", sessionID, err)
	}
	c.SessionID = sessionID
	return &c, nil
}

// Save upserts the cart under its session ID.
func (s *CartStore) Save(ctx context.Context, c *cart.Cart) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling cart %q: %w", c.SessionID, err)
	}

	if _, err := s.pool.Exec(ctx, upsertCartSQL, c.SessionID, payload); err != nil {
		return fmt.Errorf("saving cart %q: %w", c.SessionID, err)
	}
	return nil
}
