package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"pinboard/internal/domain"
	"pinboard/internal/event"
)

// MockStore is a mock for the repository.Store interface
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Insert(ctx context.Context, msg *domain.Message) error {
	return m.Called(ctx, msg).Error(0)
}
func (m *MockStore) List(ctx context.Context) ([]domain.Message, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Message), args.Error(1)
}
func (m *MockStore) UpdateText(ctx context.Context, id, text string) (*domain.Message, error) {
	args := m.Called(ctx, id, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Message), args.Error(1)
}
func (m *MockStore) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockStore) Ping(ctx context.Context) error {
	return nil
}

// captureSink records published events in order.
type captureSink struct {
	events []event.Event
}

func (c *captureSink) Publish(_ context.Context, evt event.Event) {
	c.events = append(c.events, evt)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestCreateMessage(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	store := new(MockStore)
	sink := &captureSink{}
	svc := New(store, sink, WithClock(fixedClock(now)))

	store.On("Insert", ctx, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Message).ID = "65f1a0"
	}).Return(nil).Once()

	m, err := svc.CreateMessage(ctx, "hi")
	assert.NoError(t, err)
	assert.Equal(t, "65f1a0", m.ID)
	assert.Equal(t, "hi", m.Text)
	assert.Equal(t, now, m.CreatedAt)

	if assert.Len(t, sink.events, 1) {
		assert.Equal(t, event.NewMessage, sink.events[0].Name)
		assert.Equal(t, m, sink.events[0].Payload)
	}
	store.AssertExpectations(t)
}

func TestCreateMessage_EmptyText(t *testing.T) {
	ctx := context.Background()
	store := new(MockStore)
	sink := &captureSink{}
	svc := New(store, sink)

	store.On("Insert", ctx, mock.Anything).Return(nil).Once()

	m, err := svc.CreateMessage(ctx, "")
	assert.NoError(t, err)
	assert.Equal(t, "", m.Text)
	store.AssertExpectations(t)
}

func TestCreateMessage_StorageError(t *testing.T) {
	ctx := context.Background()
	store := new(MockStore)
	sink := &captureSink{}
	svc := New(store, sink)

	store.On("Insert", ctx, mock.Anything).Return(domain.ErrStorageUnavailable).Once()

	m, err := svc.CreateMessage(ctx, "hi")
	assert.Nil(t, m)
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
	assert.Empty(t, sink.events, "no event on failed write")
	store.AssertExpectations(t)
}

func TestUpdateMessage(t *testing.T) {
	ctx := context.Background()
	store := new(MockStore)
	sink := &captureSink{}
	svc := New(store, sink)

	created := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	updated := &domain.Message{ID: "65f1a0", Text: "bye", CreatedAt: created}
	store.On("UpdateText", ctx, "65f1a0", "bye").Return(updated, nil).Once()

	m, err := svc.UpdateMessage(ctx, "65f1a0", "bye")
	assert.NoError(t, err)
	assert.Equal(t, "bye", m.Text)
	assert.Equal(t, created, m.CreatedAt, "update must not touch the creation timestamp")

	if assert.Len(t, sink.events, 1) {
		assert.Equal(t, event.UpdateMessage, sink.events[0].Name)
		assert.Equal(t, updated, sink.events[0].Payload)
	}
	store.AssertExpectations(t)
}

func TestUpdateMessage_MissingID(t *testing.T) {
	ctx := context.Background()

	t.Run("reported as success", func(t *testing.T) {
		store := new(MockStore)
		sink := &captureSink{}
		svc := New(store, sink)

		store.On("UpdateText", ctx, "deadbeef", "bye").Return(nil, domain.ErrNotFound).Once()

		m, err := svc.UpdateMessage(ctx, "deadbeef", "bye")
		assert.NoError(t, err)
		assert.Nil(t, m)
		assert.Empty(t, sink.events)
		store.AssertExpectations(t)
	})

	t.Run("reported as not found", func(t *testing.T) {
		store := new(MockStore)
		sink := &captureSink{}
		svc := New(store, sink, WithMissingIDAsSuccess(false))

		store.On("UpdateText", ctx, "deadbeef", "bye").Return(nil, domain.ErrNotFound).Once()

		m, err := svc.UpdateMessage(ctx, "deadbeef", "bye")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Nil(t, m)
		assert.Empty(t, sink.events)
		store.AssertExpectations(t)
	})
}

func TestDeleteMessage(t *testing.T) {
	ctx := context.Background()
	store := new(MockStore)
	sink := &captureSink{}
	svc := New(store, sink)

	store.On("Delete", ctx, "65f1a0").Return(nil).Once()

	err := svc.DeleteMessage(ctx, "65f1a0")
	assert.NoError(t, err)

	if assert.Len(t, sink.events, 1) {
		assert.Equal(t, event.DeleteMessage, sink.events[0].Name)
		assert.Equal(t, "65f1a0", sink.events[0].Payload)
	}
	store.AssertExpectations(t)
}

func TestDeleteMessage_MissingID(t *testing.T) {
	ctx := context.Background()

	t.Run("reported as success", func(t *testing.T) {
		store := new(MockStore)
		sink := &captureSink{}
		svc := New(store, sink)

		store.On("Delete", ctx, "deadbeef").Return(domain.ErrNotFound).Once()

		err := svc.DeleteMessage(ctx, "deadbeef")
		assert.NoError(t, err)
		assert.Len(t, sink.events, 1, "delete event still fires, outcome is indistinguishable from a raced delete")
		store.AssertExpectations(t)
	})

	t.Run("reported as not found", func(t *testing.T) {
		store := new(MockStore)
		sink := &captureSink{}
		svc := New(store, sink, WithMissingIDAsSuccess(false))

		store.On("Delete", ctx, "deadbeef").Return(domain.ErrNotFound).Once()

		err := svc.DeleteMessage(ctx, "deadbeef")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Empty(t, sink.events)
		store.AssertExpectations(t)
	})
}

func TestDeleteMessage_StorageError(t *testing.T) {
	ctx := context.Background()
	store := new(MockStore)
	sink := &captureSink{}
	svc := New(store, sink)

	store.On("Delete", ctx, "65f1a0").Return(domain.ErrStorageUnavailable).Once()

	err := svc.DeleteMessage(ctx, "65f1a0")
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
	assert.Empty(t, sink.events)
	store.AssertExpectations(t)
}

func TestListMessages(t *testing.T) {
	ctx := context.Background()
	store := new(MockStore)
	svc := New(store, &captureSink{})

	stored := []domain.Message{
		{ID: "a", Text: "first"},
		{ID: "b", Text: "second"},
	}
	store.On("List", ctx).Return(stored, nil).Once()

	got, err := svc.ListMessages(ctx)
	assert.NoError(t, err)
	assert.Equal(t, stored, got)
	store.AssertExpectations(t)
}
