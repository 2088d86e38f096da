package presence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/propstack/notifykit/pkg/logger"
)

// RedisTracker is a Tracker backed by Redis keys with a TTL. A connection
// mark expires on its own when the transport stops refreshing it, so crashed
// clients converge to offline without explicit cleanup.
type RedisTracker struct {
	client redis.UniversalClient
	cfg    Config
	log    *slog.Logger
}

// RedisTrackerOption configures a RedisTracker.
type RedisTrackerOption func(*RedisTracker)

// WithLogger sets the logger for the RedisTracker.
func WithLogger(log *slog.Logger) RedisTrackerOption {
	return func(t *RedisTracker) {
		if log != nil {
			t.log = log
		}
	}
}

// NewRedisTracker creates a Redis-backed presence tracker.
func NewRedisTracker(client redis.UniversalClient, cfg Config, opts ...RedisTrackerOption) (*RedisTracker, error) {
	if client == nil {
		return nil, ErrNilClient
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("%w: TTL must be positive", ErrInvalidConfig)
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "presence"
	}

	t := &RedisTracker{
		client: client,
		cfg:    cfg,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

func (t *RedisTracker) key(userID string) string {
	return fmt.Sprintf("%s:%s", t.cfg.KeyPrefix, userID)
}

func (t *RedisTracker) Connect(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrEmptyUserID
	}
	if err := t.client.Set(ctx, t.key(userID), "1", t.cfg.TTL).Err(); err != nil {
		return errors.Join(ErrTrackingFailed, err)
	}
	return nil
}

func (t *RedisTracker) Disconnect(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrEmptyUserID
	}
	if err := t.client.Del(ctx, t.key(userID)).Err(); err != nil {
		return errors.Join(ErrTrackingFailed, err)
	}
	return nil
}

// IsOnline reports whether the user's presence key exists. Lookup errors are
// logged and reported as offline.
func (t *RedisTracker) IsOnline(ctx context.Context, userID string) bool {
	if userID == "" {
		return false
	}

	n, err := t.client.Exists(ctx, t.key(userID)).Result()
	if err != nil {
		t.log.LogAttrs(ctx, slog.LevelWarn, "Presence lookup failed, treating user as offline",
			logger.UserID(userID),
			logger.Error(err),
		)
		return false
	}
	return n > 0
}
