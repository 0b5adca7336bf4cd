package application

import (
	"context"

	"pinboard/internal/domain"
)

// ListMessages returns every stored message in store scan order.
func (s *Service) ListMessages(ctx context.Context) ([]domain.Message, error) {
	return s.store.List(ctx)
}
