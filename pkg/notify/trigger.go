package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/propstack/notifykit/pkg/async"
	"github.com/propstack/notifykit/pkg/logger"
)

// Trigger is the business-facing entry point. It persists notifications,
// resolves recipients, and hands delivery to the dispatcher without making
// callers wait for channels to finish.
type Trigger struct {
	storage    Storage
	identity   Identity
	dispatcher *Dispatcher
	batchSize  int
	log        *slog.Logger
}

// TriggerOption customizes trigger construction.
type TriggerOption func(*Trigger)

// WithBatchSize sets how many broadcast recipients are dispatched
// concurrently per batch. Values below 1 keep the default.
func WithBatchSize(n int) TriggerOption {
	return func(t *Trigger) {
		if n > 0 {
			t.batchSize = n
		}
	}
}

// WithTriggerLogger sets the logger used for persistence and resolution
// outcomes.
func WithTriggerLogger(log *slog.Logger) TriggerOption {
	return func(t *Trigger) {
		if log != nil {
			t.log = log
		}
	}
}

// NewTrigger wires the trigger to its collaborators.
func NewTrigger(storage Storage, identity Identity, dispatcher *Dispatcher, opts ...TriggerOption) *Trigger {
	t := &Trigger{
		storage:    storage,
		identity:   identity,
		dispatcher: dispatcher,
		batchSize:  DefaultBatchSize,
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// BroadcastResult summarizes a broadcast: how many recipients were reached
// and the per-recipient notification ids, in audience order.
type BroadcastResult struct {
	Count           int      `json:"count"`
	NotificationIDs []string `json:"notification_ids"`
}

// Notify persists a notification for userID and dispatches it to every
// eligible channel in the background. It returns once the record is stored;
// delivery never blocks or fails the caller. Persistence errors propagate.
// A recipient that cannot be resolved downgrades to persist-only: the
// notification exists and is listable, it just is not pushed anywhere.
func (t *Trigger) Notify(ctx context.Context, userID, eventType, title, message string, metadata map[string]any) (string, error) {
	if userID == "" || title == "" {
		return "", fmt.Errorf("%w: user id and title are required", ErrInvalidNotification)
	}

	notif := NewNotification(userID, eventType, title, message, metadata)
	if err := t.storage.Create(ctx, notif); err != nil {
		return "", fmt.Errorf("failed to store notification: %w", err)
	}

	recipient, err := t.identity.PublicProfile(ctx, userID)
	if err != nil {
		t.log.WarnContext(ctx, "recipient resolution failed, skipping delivery",
			logger.UserID(userID),
			logger.NotificationID(notif.ID),
			logger.Error(err),
		)
		return notif.ID, nil
	}

	// Delivery outlives the request: WithoutCancel keeps request-scoped
	// values for logging while detaching from the caller's deadline.
	detached := context.WithoutCancel(ctx)
	async.Go(detached, t.log, "notify.dispatch", func(ctx context.Context) error {
		t.dispatcher.Dispatch(ctx, *recipient, notif)
		return nil
	})

	return notif.ID, nil
}

// Broadcast sends one notification to every user holding any of the given
// roles, excluding excludeUserID. Each recipient gets an independent
// persisted record; delivery runs detached in batches so a large audience
// never holds the caller. Returns ErrEmptyAudience when no users match.
func (t *Trigger) Broadcast(ctx context.Context, roles []string, excludeUserID, eventType, title, message string, metadata map[string]any) (*BroadcastResult, error) {
	recipients, err := t.identity.ListByRoles(ctx, roles, excludeUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve broadcast audience: %w", err)
	}
	if len(recipients) == 0 {
		return nil, ErrEmptyAudience
	}

	type delivery struct {
		recipient Recipient
		notif     Notification
	}

	deliveries := make([]delivery, 0, len(recipients))
	ids := make([]string, 0, len(recipients))
	for _, r := range recipients {
		notif := NewNotification(r.ID, eventType, title, message, metadata)
		if err := t.storage.Create(ctx, notif); err != nil {
			t.log.ErrorContext(ctx, "failed to store broadcast notification",
				logger.UserID(r.ID),
				logger.Error(err),
			)
			continue
		}
		deliveries = append(deliveries, delivery{recipient: r, notif: notif})
		ids = append(ids, notif.ID)
	}
	if len(deliveries) == 0 {
		return nil, fmt.Errorf("failed to store any broadcast notification")
	}

	batchSize := t.batchSize
	detached := context.WithoutCancel(ctx)
	async.Go(detached, t.log, "notify.broadcast", func(ctx context.Context) error {
		for start := 0; start < len(deliveries); start += batchSize {
			end := min(start+batchSize, len(deliveries))
			batch := deliveries[start:end]

			futures := make([]*async.Future[struct{}], 0, len(batch))
			for _, d := range batch {
				futures = append(futures, async.Async(ctx, d, func(ctx context.Context, d delivery) (struct{}, error) {
					t.dispatcher.Dispatch(ctx, d.recipient, d.notif)
					return struct{}{}, nil
				}))
			}
			async.WaitAllSettled(futures...)
		}
		return nil
	})

	return &BroadcastResult{Count: len(deliveries), NotificationIDs: ids}, nil
}

// MarkRead marks one notification as read for its owner and returns the
// updated record.
func (t *Trigger) MarkRead(ctx context.Context, notifID, userID string) (*Notification, error) {
	return t.storage.MarkRead(ctx, notifID, userID)
}

// MarkAllRead marks every unread notification for the user as read and
// returns how many were updated.
func (t *Trigger) MarkAllRead(ctx context.Context, userID string) (int, error) {
	return t.storage.MarkAllRead(ctx, userID)
}

// List returns the user's notifications, newest first.
func (t *Trigger) List(ctx context.Context, userID string, opts ListOptions) ([]Notification, error) {
	return t.storage.List(ctx, userID, opts)
}

// CountUnread returns the user's unread notification count.
func (t *Trigger) CountUnread(ctx context.Context, userID string) (int, error) {
	return t.storage.CountUnread(ctx, userID)
}

// FindByID retrieves a single notification by id.
func (t *Trigger) FindByID(ctx context.Context, notifID string) (*Notification, error) {
	return t.storage.FindByID(ctx, notifID)
}
