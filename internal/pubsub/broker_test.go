package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type themePayload struct {
	Name    string
	Version uint64
}

func TestBroker_Subscribe(t *testing.T) {
	broker := NewBroker[themePayload]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := broker.Subscribe(ctx)

	broker.Publish(ThemeChangedEvent, themePayload{Name: "dracula", Version: 2})

	select {
	case event := <-ch:
		require.Equal(t, "dracula", event.Payload.Name)
		require.Equal(t, uint64(2), event.Payload.Version)
		require.Equal(t, ThemeChangedEvent, event.Type)
		require.False(t, event.Timestamp.IsZero())
	case <-time.After(100 * time.Millisecond):
		require.Fail(t, "timeout waiting for event")
	}
}

func TestBroker_MultipleSubscribers(t *testing.T) {
	broker := NewBroker[int]()
	defer broker.Close()

	ctx := context.Background()

	ch1 := broker.Subscribe(ctx)
	ch2 := broker.Subscribe(ctx)
	ch3 := broker.Subscribe(ctx)

	require.Equal(t, 3, broker.SubscriberCount())

	broker.Publish(ReloadedEvent, 42)

	for i, ch := range []<-chan Event[int]{ch1, ch2, ch3} {
		select {
		case event := <-ch:
			require.Equal(t, 42, event.Payload, "subscriber %d", i)
			require.Equal(t, ReloadedEvent, event.Type, "subscriber %d", i)
		case <-time.After(100 * time.Millisecond):
			require.Fail(t, "timeout waiting for event", "subscriber %d", i)
		}
	}
}

func TestBroker_ContextCancellation(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())

	ch := broker.Subscribe(ctx)
	require.Equal(t, 1, broker.SubscriberCount())

	cancel()
	require.Eventually(t, func() bool {
		return broker.SubscriberCount() == 0
	}, time.Second, 5*time.Millisecond)

	_, ok := <-ch
	require.False(t, ok, "channel should be closed")
}

func TestBroker_NonBlockingDropsWhenFull(t *testing.T) {
	broker := NewBrokerWithBuffer[int](1)
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := broker.Subscribe(ctx)

	done := make(chan struct{})
	go func() {
		broker.Publish(UpdatedEvent, 1)
		broker.Publish(UpdatedEvent, 2)
		broker.Publish(UpdatedEvent, 3)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		require.Fail(t, "publish blocked on a full subscriber")
	}

	event := <-ch
	require.Equal(t, 1, event.Payload)
	require.Equal(t, uint64(2), broker.Dropped())
}

func TestBroker_Close(t *testing.T) {
	broker := NewBroker[string]()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := broker.Subscribe(ctx)

	broker.Close()

	_, ok := <-ch
	require.False(t, ok, "channel should be closed after broker close")
	require.Equal(t, 0, broker.SubscriberCount())

	// Publishing after close is a no-op
	require.NotPanics(t, func() { broker.Publish(UpdatedEvent, "late") })

	// Subscribing after close returns a closed channel
	late := broker.Subscribe(ctx)
	_, ok = <-late
	require.False(t, ok)
}

func TestBroker_CloseIdempotent(t *testing.T) {
	broker := NewBroker[string]()
	broker.Close()
	require.NotPanics(t, func() { broker.Close() })
}
