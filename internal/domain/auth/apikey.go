// Package auth defines API key authentication for the admin surface.
package auth

import (
	"context"

	"github.com/go-faster/errors"
)

// ErrKeyNotFound is returned when no API key matches the presented hash.
var ErrKeyNotFound = errors.New("api key not found")

// APIKey identifies a back-office client. Only the HMAC-SHA256 hash of the
// key material is stored.
type APIKey struct {
	ID      string
	KeyHash string
	Name    string
}

// Repository provides lookup of API keys by their hex-encoded hash.
type Repository interface {
	FindByHash(ctx context.Context, hash string) (*APIKey, error)
}
