package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_PublishReachesAllSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var calls []string
	d.Subscribe(EventTicketCreated, func(_ context.Context, _ Event) error {
		calls = append(calls, "first")
		return nil
	})
	d.Subscribe(EventTicketCreated, func(_ context.Context, _ Event) error {
		calls = append(calls, "second")
		return nil
	})
	d.Subscribe(EventTicketAssigned, func(_ context.Context, _ Event) error {
		calls = append(calls, "wrong-type")
		return nil
	})

	err := d.Publish(context.Background(), Event{ID: "e1", Type: EventTicketCreated, TicketID: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestDispatcher_FailingHandlerDoesNotStopOthers(t *testing.T) {
	d := NewInMemoryDispatcher()

	reached := false
	d.Subscribe(EventTicketAssigned, func(_ context.Context, _ Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventTicketAssigned, func(_ context.Context, _ Event) error {
		reached = true
		return nil
	})

	err := d.Publish(context.Background(), Event{ID: "e2", Type: EventTicketAssigned, TicketID: 2})
	require.NoError(t, err)
	assert.True(t, reached)
}

func TestDispatcher_NoSubscribersIsANoop(t *testing.T) {
	d := NewInMemoryDispatcher()
	assert.NoError(t, d.Publish(context.Background(), Event{ID: "e3", Type: EventTicketUnassigned}))
}
