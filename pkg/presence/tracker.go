package presence

import (
	"context"
	"time"
)

// Tracker records which users currently hold a live real-time connection.
// The socket delivery channel consults it to decide availability: a user
// without a live connection is skipped rather than failed.
type Tracker interface {
	// Connect marks the user as online. Transport handlers call it when a
	// socket or SSE stream is established, and should refresh it on
	// heartbeats for TTL-based implementations.
	Connect(ctx context.Context, userID string) error

	// Disconnect marks the user as offline.
	Disconnect(ctx context.Context, userID string) error

	// IsOnline reports whether the user has a live connection. Must not
	// fail open: on lookup errors implementations return false so a
	// broken tracker degrades to skipped socket delivery.
	IsOnline(ctx context.Context, userID string) bool
}

// Config holds presence tracking configuration.
type Config struct {
	// TTL is how long a connection mark stays valid without a heartbeat.
	TTL time.Duration `env:"PRESENCE_TTL" envDefault:"90s"`
	// KeyPrefix namespaces presence keys in shared Redis instances.
	KeyPrefix string `env:"PRESENCE_KEY_PREFIX" envDefault:"presence"`
}
