package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/propstack/notifykit/pkg/async"
	"github.com/propstack/notifykit/pkg/logger"
)

// Dispatcher fans a notification out to every enabled channel that declares
// itself available for the recipient. Delivery outcomes are logged, never
// returned: a dispatch settles all channels and reports nothing to the
// caller.
type Dispatcher struct {
	mu       sync.RWMutex
	channels []Channel
	cfg      DeliveryConfig
	log      *slog.Logger
}

// DispatcherOption customizes dispatcher construction.
type DispatcherOption func(*Dispatcher)

// WithDispatchLogger sets the logger used for delivery outcomes.
func WithDispatchLogger(log *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if log != nil {
			d.log = log
		}
	}
}

// NewDispatcher creates a dispatcher over the given channels. Channels keep
// their registration even while disabled in cfg; enabling them later takes
// effect on the next dispatch.
func NewDispatcher(cfg DeliveryConfig, channels []Channel, opts ...DispatcherOption) *Dispatcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	// Own a private copy so neither the caller nor a published snapshot
	// shares a map the dispatcher later replaces.
	cfg.Channels = cloneChannelSettings(cfg.Channels)
	d := &Dispatcher{
		channels: append([]Channel(nil), channels...),
		cfg:      cfg,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// RegisterChannel adds ch to the dispatcher, replacing any channel with the
// same identifier. Registering with enabled=false removes the channel
// entirely. The channel list and the configuration entry change under one
// lock; in-flight dispatches keep the snapshot they started with.
func (d *Dispatcher) RegisterChannel(ch Channel, enabled bool) {
	if ch == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	idx := -1
	for i, existing := range d.channels {
		if existing.ID() == ch.ID() {
			idx = i
			break
		}
	}

	// Copy-on-write: in-flight dispatches hold the previous map, so it
	// must never be mutated in place once published.
	channels := cloneChannelSettings(d.cfg.Channels)
	settings := channels[ch.ID()]
	settings.Enabled = enabled
	channels[ch.ID()] = settings
	d.cfg.Channels = channels

	if !enabled {
		if idx >= 0 {
			d.channels = append(d.channels[:idx], d.channels[idx+1:]...)
		}
		return
	}
	if idx >= 0 {
		d.channels[idx] = ch
		return
	}
	d.channels = append(d.channels, ch)
}

// SetChannelEnabled flips the enabled flag for an already-registered
// channel. Unknown identifiers are ignored.
func (d *Dispatcher) SetChannelEnabled(id string, enabled bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	settings, ok := d.cfg.Channels[id]
	if !ok {
		return
	}
	settings.Enabled = enabled
	channels := cloneChannelSettings(d.cfg.Channels)
	channels[id] = settings
	d.cfg.Channels = channels
}

// Channels returns the identifiers of all registered channels, enabled or
// not.
func (d *Dispatcher) Channels() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	ids := make([]string, 0, len(d.channels))
	for _, ch := range d.channels {
		ids = append(ids, ch.ID())
	}
	return ids
}

// snapshot returns the channel list and config as of now, so a dispatch is
// unaffected by concurrent registry mutation. The config's Channels map is
// safe to read lock-free because writers replace it copy-on-write.
func (d *Dispatcher) snapshot() ([]Channel, DeliveryConfig) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	channels := append([]Channel(nil), d.channels...)
	cfg := d.cfg
	return channels, cfg
}

// Dispatch delivers notif to recipient across every enabled, available
// channel in parallel and waits for all attempts to settle. It never
// returns an error: failures are logged per channel and absorbed.
func (d *Dispatcher) Dispatch(ctx context.Context, recipient Recipient, notif Notification) {
	channels, cfg := d.snapshot()

	eligible := make([]Channel, 0, len(channels))
	for _, ch := range channels {
		if cfg.ChannelEnabled(ch.ID()) && ch.AvailableFor(recipient, notif) {
			eligible = append(eligible, ch)
		}
	}
	if len(eligible) == 0 {
		d.log.DebugContext(ctx, "no eligible channels for notification",
			logger.UserID(recipient.ID),
			logger.NotificationID(notif.ID),
		)
		return
	}

	start := time.Now()
	futures := make([]*async.Future[string], 0, len(eligible))
	for _, ch := range eligible {
		futures = append(futures, async.Async(ctx, ch, func(ctx context.Context, ch Channel) (string, error) {
			return ch.ID(), d.deliver(ctx, ch, cfg.Timeout, recipient, notif)
		}))
	}

	ids, errs := async.WaitAllSettled(futures...)

	failed := 0
	for i, err := range errs {
		if err == nil {
			continue
		}
		failed++
		d.log.ErrorContext(ctx, "notification delivery failed",
			logger.ChannelID(ids[i]),
			logger.UserID(recipient.ID),
			logger.NotificationID(notif.ID),
			logger.Error(err),
		)
	}

	if cfg.LoggingEnabled() {
		d.log.InfoContext(ctx, "notification dispatched",
			logger.NotificationID(notif.ID),
			logger.UserID(recipient.ID),
			logger.Count(len(eligible)),
			slog.Int("failed", failed),
			logger.Duration(time.Since(start)),
		)
	}
}

// deliver runs a single channel attempt, bounded by timeout and hardened
// against panics. On timeout the channel's goroutine is abandoned; its
// context is cancelled so well-behaved channels stop promptly.
func (d *Dispatcher) deliver(ctx context.Context, ch Channel, timeout time.Duration, recipient Recipient, notif Notification) error {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("channel %s panicked: %v", ch.ID(), r)
			}
		}()
		done <- ch.Send(attemptCtx, recipient, notif)
	}()

	select {
	case err := <-done:
		return err
	case <-attemptCtx.Done():
		if attemptCtx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("dispatch to channel %s timed out after %dms", ch.ID(), timeout.Milliseconds())
		}
		return attemptCtx.Err()
	}
}
