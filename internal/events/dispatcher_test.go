package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishRunsAllHandlersAndReturnsFirstError(t *testing.T) {
	d := NewInMemoryDispatcher()

	var calls []string
	d.Subscribe(EventOrderCreated, func(ctx context.Context, e Event) error {
		calls = append(calls, "first")
		return errors.New("first failed")
	})
	d.Subscribe(EventOrderCreated, func(ctx context.Context, e Event) error {
		calls = append(calls, "second")
		return errors.New("second failed")
	})

	err := d.Publish(context.Background(), Event{Type: EventOrderCreated})
	assert.EqualError(t, err, "first failed")
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestPublishWithoutSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	assert.NoError(t, d.Publish(context.Background(), Event{Type: EventOrderPaid}))
}

func TestSubscribeIsTypeScoped(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got []EventType
	d.Subscribe(EventOrderPaid, func(ctx context.Context, e Event) error {
		got = append(got, e.Type)
		return nil
	})

	_ = d.Publish(context.Background(), Event{Type: EventOrderExpired})
	_ = d.Publish(context.Background(), Event{Type: EventOrderPaid})

	assert.Equal(t, []EventType{EventOrderPaid}, got)
}
