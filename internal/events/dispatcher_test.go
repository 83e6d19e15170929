package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher(zap.NewNop())

	var got []EventType
	d.Subscribe(EventUserDeleted, func(_ context.Context, e Event) error {
		got = append(got, e.Type)
		return errors.New("boom")
	})
	d.Subscribe(EventUserDeleted, func(_ context.Context, e Event) error {
		got = append(got, e.Type)
		return nil
	})

	err := d.Publish(context.Background(), New(EventUserDeleted, Actor{UserID: "u-1"}, UserPayload{UserID: "u-2"}))
	require.NoError(t, err)
	assert.Equal(t, []EventType{EventUserDeleted, EventUserDeleted}, got)
}

func TestNewStampsEvent(t *testing.T) {
	e := New(EventSessionTerminated, Actor{}, SessionPayload{})
	assert.NotEmpty(t, e.ID)
	assert.False(t, e.Timestamp.IsZero())
}
