package application

import (
	"context"

	"pinboard/internal/domain"
	"pinboard/internal/event"
)

// CreateMessage persists a new message with the given text and the
// current timestamp. The text is stored as-is; empty text is allowed.
func (s *Service) CreateMessage(ctx context.Context, text string) (*domain.Message, error) {
	m := &domain.Message{
		Text:      text,
		CreatedAt: s.now().UTC(),
	}

	if err := s.store.Insert(ctx, m); err != nil {
		return nil, err
	}

	s.events.Publish(ctx, event.Event{Name: event.NewMessage, Payload: m})
	return m, nil
}
