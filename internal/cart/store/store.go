// Package store persists the session cart between requests.
package store

import (
	"context"

	"storefront_backend/internal/cart/domain"
)

// Store loads and saves one cart per shopper session. An absent session
// yields an empty cart, never an error.
type Store interface {
	Load(ctx context.Context, sessionID string) (domain.Cart, error)
	Save(ctx context.Context, sessionID string, cart domain.Cart) error
	Delete(ctx context.Context, sessionID string) error
}
