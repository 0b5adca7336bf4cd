package application

import (
	"context"
	"errors"

	"pinboard/internal/domain"
	"pinboard/internal/event"
)

// UpdateMessage replaces the text of the message with the given id and
// returns the updated record. When the id matches nothing the result is
// a nil record with a nil error if missing ids are treated as success,
// otherwise domain.ErrNotFound.
func (s *Service) UpdateMessage(ctx context.Context, id, text string) (*domain.Message, error) {
	m, err := s.store.UpdateText(ctx, id, text)
	if errors.Is(err, domain.ErrNotFound) && s.missingIDAsSuccess {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	s.events.Publish(ctx, event.Event{Name: event.UpdateMessage, Payload: m})
	return m, nil
}
