package broadcast_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propstack/notifykit/pkg/broadcast"
)

func TestMemoryBroadcaster_DeliversToAllSubscribers(t *testing.T) {
	t.Parallel()

	b := broadcast.NewMemoryBroadcaster[string](4)
	defer b.Close()

	ctx := context.Background()
	sub1 := b.Subscribe(ctx)
	sub2 := b.Subscribe(ctx)

	require.NoError(t, b.Broadcast(ctx, broadcast.Message[string]{Data: "hello"}))

	for _, sub := range []broadcast.Subscriber[string]{sub1, sub2} {
		select {
		case msg := <-sub.Receive(ctx):
			assert.Equal(t, "hello", msg.Data)
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive message")
		}
	}
}

func TestMemoryBroadcaster_DropsSlowConsumer(t *testing.T) {
	t.Parallel()

	b := broadcast.NewMemoryBroadcaster[int](1)
	defer b.Close()

	ctx := context.Background()
	slow := b.Subscribe(ctx)
	_ = slow // never reads

	// First fills the buffer, second overflows and drops the subscriber.
	require.NoError(t, b.Broadcast(ctx, broadcast.Message[int]{Data: 1}))
	require.NoError(t, b.Broadcast(ctx, broadcast.Message[int]{Data: 2}))

	// The buffered message is still readable; the channel then closes.
	msg := <-slow.Receive(ctx)
	assert.Equal(t, 1, msg.Data)

	assert.Eventually(t, func() bool {
		_, open := <-slow.Receive(ctx)
		return !open
	}, time.Second, 10*time.Millisecond)
}

func TestMemoryBroadcaster_ContextCancelCleansUp(t *testing.T) {
	t.Parallel()

	b := broadcast.NewMemoryBroadcaster[int](1)
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	sub := b.Subscribe(ctx)
	cancel()

	assert.Eventually(t, func() bool {
		_, open := <-sub.Receive(context.Background())
		return !open
	}, time.Second, 10*time.Millisecond)
}

func TestMemoryBroadcaster_Close(t *testing.T) {
	t.Parallel()

	b := broadcast.NewMemoryBroadcaster[int](1)
	ctx := context.Background()
	sub := b.Subscribe(ctx)

	require.NoError(t, b.Close())
	require.NoError(t, b.Close()) // idempotent

	_, open := <-sub.Receive(ctx)
	assert.False(t, open)

	// Subscribing after close yields a closed subscriber.
	late := b.Subscribe(ctx)
	_, open = <-late.Receive(ctx)
	assert.False(t, open)

	// Broadcasting after close is a no-op.
	assert.NoError(t, b.Broadcast(ctx, broadcast.Message[int]{Data: 1}))
}

func TestMemoryBroadcaster_SubscriberCloseIdempotent(t *testing.T) {
	t.Parallel()

	b := broadcast.NewMemoryBroadcaster[int](1)
	defer b.Close()

	sub := b.Subscribe(context.Background())
	require.NoError(t, sub.Close())
	require.NoError(t, sub.Close())
}
