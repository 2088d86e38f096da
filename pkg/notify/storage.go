package notify

import "context"

// Storage handles notification persistence and retrieval. Implementations
// are expected to provide their own consistency guarantees; the dispatch
// engine performs no multi-step transactions of its own.
type Storage interface {
	// Create stores a new notification.
	Create(ctx context.Context, notif Notification) error

	// FindByID retrieves a single notification regardless of owner.
	FindByID(ctx context.Context, notifID string) (*Notification, error)

	// List returns notifications for a user, newest first.
	List(ctx context.Context, userID string, opts ListOptions) ([]Notification, error)

	// MarkRead marks one notification as read and returns the updated
	// record. Fails with ErrNotificationNotFound when the notification
	// does not exist or is not owned by userID.
	MarkRead(ctx context.Context, notifID, userID string) (*Notification, error)

	// MarkAllRead marks every unread notification for the user as read
	// and returns how many were updated.
	MarkAllRead(ctx context.Context, userID string) (int, error)

	// CountUnread returns the unread count for the user.
	CountUnread(ctx context.Context, userID string) (int, error)
}

// ListOptions provides pagination and read-state filtering for List.
type ListOptions struct {
	Limit       int  // maximum notifications to return (0 = no limit)
	Offset      int  // notifications to skip for pagination
	IncludeRead bool // when false, only unread notifications are returned
}
