package application

import (
	"time"

	"pinboard/internal/event"
	"pinboard/internal/repository"
)

// Service implements the four board operations. Events are published to
// the sink only after the store write has succeeded.
type Service struct {
	store  repository.Store
	events event.Sink

	// missingIDAsSuccess preserves the historical behavior of reporting
	// success-shaped results for updates and deletes of absent ids.
	missingIDAsSuccess bool

	now func() time.Time
}

type Option func(*Service)

// WithClock overrides the creation-timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithMissingIDAsSuccess controls whether update/delete of an absent id
// report success instead of a not-found error.
func WithMissingIDAsSuccess(v bool) Option {
	return func(s *Service) { s.missingIDAsSuccess = v }
}

func New(store repository.Store, events event.Sink, opts ...Option) *Service {
	s := &Service{
		store:              store,
		events:             events,
		missingIDAsSuccess: true,
		now:                time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
