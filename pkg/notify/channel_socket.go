package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/propstack/notifykit/pkg/broadcast"
	"github.com/propstack/notifykit/pkg/logger"
	"github.com/propstack/notifykit/pkg/presence"
)

// presenceCheckTimeout bounds the tracker lookup so a slow Redis cannot
// stall channel selection.
const presenceCheckTimeout = 2 * time.Second

// SocketChannel pushes notifications to connected clients through per-user
// in-memory broadcasters. A recipient is eligible only while the presence
// tracker reports them online. Without a tracker the channel stays
// registered but unavailable.
type SocketChannel struct {
	presence   presence.Tracker
	bufferSize int
	log        *slog.Logger

	mu    sync.RWMutex
	users map[string]*broadcast.MemoryBroadcaster[Notification]
}

// NewSocketChannel creates the realtime delivery channel. bufferSize is the
// per-subscriber channel capacity; values below 1 are clamped.
func NewSocketChannel(tracker presence.Tracker, bufferSize int, log *slog.Logger) *SocketChannel {
	if log == nil {
		log = slog.Default()
	}
	return &SocketChannel{
		presence:   tracker,
		bufferSize: max(bufferSize, 1),
		log:        log,
		users:      make(map[string]*broadcast.MemoryBroadcaster[Notification]),
	}
}

func (c *SocketChannel) ID() string {
	return ChannelSocket
}

// AvailableFor reports whether the recipient currently has a live
// connection. The lookup deliberately ignores the caller's context so a
// cancelled dispatch cannot skew eligibility.
func (c *SocketChannel) AvailableFor(recipient Recipient, _ Notification) bool {
	if c.presence == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), presenceCheckTimeout)
	defer cancel()
	return c.presence.IsOnline(ctx, recipient.ID)
}

func (c *SocketChannel) Send(ctx context.Context, recipient Recipient, notif Notification) error {
	c.mu.RLock()
	b, ok := c.users[recipient.ID]
	c.mu.RUnlock()
	if !ok {
		// Online per the tracker but no local subscriber; nothing to push.
		c.log.DebugContext(ctx, "no socket subscribers for user",
			logger.UserID(recipient.ID),
			logger.NotificationID(notif.ID),
		)
		return nil
	}
	return b.Broadcast(ctx, broadcast.Message[Notification]{Data: notif})
}

// Subscribe registers a live connection for userID and returns its message
// stream. Cancelling ctx tears the subscription down.
func (c *SocketChannel) Subscribe(ctx context.Context, userID string) broadcast.Subscriber[Notification] {
	c.mu.Lock()
	b, ok := c.users[userID]
	if !ok {
		b = broadcast.NewMemoryBroadcaster[Notification](c.bufferSize)
		c.users[userID] = b
	}
	c.mu.Unlock()
	return b.Subscribe(ctx)
}

// Close shuts down every per-user broadcaster. The channel must not be
// used afterwards.
func (c *SocketChannel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, b := range c.users {
		_ = b.Close()
		delete(c.users, id)
	}
	return nil
}
