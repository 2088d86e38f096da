package notify

import (
	"context"
	"log/slog"

	"github.com/propstack/notifykit/pkg/email"
	"github.com/propstack/notifykit/pkg/presence"
	"github.com/propstack/notifykit/pkg/webhook"
)

// Well-known channel identifiers, used as configuration lookup keys.
const (
	ChannelInApp   = "in_app"
	ChannelEmail   = "email"
	ChannelWebhook = "webhook"
	ChannelSocket  = "socket"
)

// Channel is a single delivery mechanism. Channels are symmetric and
// independently pluggable: the dispatcher neither knows nor cares what a
// channel does, and adding one never touches dispatch logic.
type Channel interface {
	// ID returns the stable, unique channel identifier.
	ID() string

	// AvailableFor reports whether this channel can currently serve this
	// recipient and notification. It is a pure predicate: no side
	// effects, no panics.
	AvailableFor(recipient Recipient, notif Notification) bool

	// Send performs one delivery attempt. On failure, callers observe a
	// descriptive error and nothing else; implementations must not leak
	// partial state.
	Send(ctx context.Context, recipient Recipient, notif Notification) error
}

// Option keys recognized by the formatting helpers.
const (
	OptionTitlePrefix   = "title_prefix"
	OptionMessagePrefix = "message_prefix"
)

// FormatTitle applies the channel's configured title prefix without mutating
// the canonical notification record.
func FormatTitle(options map[string]string, title string) string {
	if prefix := options[OptionTitlePrefix]; prefix != "" {
		return prefix + " " + title
	}
	return title
}

// FormatMessage applies the channel's configured message prefix without
// mutating the canonical notification record.
func FormatMessage(options map[string]string, message string) string {
	if prefix := options[OptionMessagePrefix]; prefix != "" {
		return prefix + " " + message
	}
	return message
}

// ChannelDeps carries the collaborators concrete channels deliver through.
// Any nil dependency renders the corresponding channel inert: it stays
// registered and keeps its shape, but reports itself unavailable.
type ChannelDeps struct {
	EmailSender      email.EmailSender
	WebhookSender    *webhook.Sender
	Presence         presence.Tracker
	SocketBufferSize int
	Logger           *slog.Logger
}

// DefaultChannels returns the fixed set of channels known to the process.
// Only the in-app channel delivers out of the box; email, webhook, and
// socket activate when their dependencies and options are supplied.
func DefaultChannels(cfg DeliveryConfig, deps ChannelDeps) []Channel {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	return []Channel{
		NewInAppChannel(deps.Logger),
		NewEmailChannel(deps.EmailSender, cfg.ChannelOptions(ChannelEmail), deps.Logger),
		NewWebhookChannel(deps.WebhookSender, cfg.ChannelOptions(ChannelWebhook), deps.Logger),
		NewSocketChannel(deps.Presence, deps.SocketBufferSize, deps.Logger),
	}
}
