package notify

import "errors"

var (
	// ErrNotificationNotFound is returned when a notification does not
	// exist or is not owned by the requesting user.
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrRecipientNotFound is returned by identity implementations when a
	// user id cannot be resolved.
	ErrRecipientNotFound = errors.New("recipient not found")

	// ErrEmptyAudience is returned by Broadcast when audience resolution
	// matches no users. Distinct from a successful empty result so callers
	// can surface it as a validation failure.
	ErrEmptyAudience = errors.New("no users found for broadcast audience")

	// ErrInvalidNotification is returned when a notification is missing
	// required fields.
	ErrInvalidNotification = errors.New("invalid notification")
)
