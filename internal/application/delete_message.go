package application

import (
	"context"
	"errors"

	"pinboard/internal/domain"
	"pinboard/internal/event"
)

// DeleteMessage removes the message with the given id. A missing id is
// reported as success when missing ids are treated as success; the
// deleteMessage event still fires with the requested id, since the
// outcome is indistinguishable from a delete that raced another client.
func (s *Service) DeleteMessage(ctx context.Context, id string) error {
	err := s.store.Delete(ctx, id)
	if errors.Is(err, domain.ErrNotFound) && s.missingIDAsSuccess {
		err = nil
	}
	if err != nil {
		return err
	}

	s.events.Publish(ctx, event.Event{Name: event.DeleteMessage, Payload: id})
	return nil
}
