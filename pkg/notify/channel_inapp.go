package notify

import (
	"context"
	"log/slog"

	"github.com/propstack/notifykit/pkg/logger"
)

// InAppChannel delivers notifications to the user's in-app inbox. The
// persisted notification row is the delivery itself, so Send only records
// that the notification is visible.
type InAppChannel struct {
	log *slog.Logger
}

// NewInAppChannel creates the in-app delivery channel.
func NewInAppChannel(log *slog.Logger) *InAppChannel {
	if log == nil {
		log = slog.Default()
	}
	return &InAppChannel{log: log}
}

func (c *InAppChannel) ID() string {
	return ChannelInApp
}

// AvailableFor always returns true: every user has an in-app inbox.
func (c *InAppChannel) AvailableFor(Recipient, Notification) bool {
	return true
}

func (c *InAppChannel) Send(ctx context.Context, recipient Recipient, notif Notification) error {
	c.log.LogAttrs(ctx, slog.LevelDebug, "In-app notification available in inbox",
		logger.ChannelID(ChannelInApp),
		logger.UserID(recipient.ID),
		logger.NotificationID(notif.ID),
	)
	return nil
}
