package repository

import (
	"context"

	"pinboard/internal/domain"
)

// Store is the document collection boundary. Every call is a single
// round trip with the provider's default consistency; there is no
// cross-operation transactionality.
type Store interface {
	// Insert persists m and assigns its ID.
	Insert(ctx context.Context, m *domain.Message) error

	// List returns the full collection in store scan order.
	List(ctx context.Context) ([]domain.Message, error)

	// UpdateText replaces the text of the message with the given id and
	// returns the updated record. Returns domain.ErrNotFound when no
	// record matches and domain.ErrInvalidID when the id is malformed.
	UpdateText(ctx context.Context, id, text string) (*domain.Message, error)

	// Delete removes the message with the given id. Returns
	// domain.ErrNotFound when no record matches.
	Delete(ctx context.Context, id string) error

	// Ping reports whether the store is reachable.
	Ping(ctx context.Context) error
}
