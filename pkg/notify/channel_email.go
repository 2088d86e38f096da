package notify

import (
	"context"
	"fmt"
	"html"
	"log/slog"

	"github.com/propstack/notifykit/pkg/email"
)

// EmailChannel delivers notifications as transactional emails. Without a
// configured sender the channel stays registered but reports itself
// unavailable for every recipient.
type EmailChannel struct {
	sender  email.EmailSender
	options map[string]string
	log     *slog.Logger
}

// NewEmailChannel creates the email delivery channel. A nil sender produces
// an inert channel.
func NewEmailChannel(sender email.EmailSender, options map[string]string, log *slog.Logger) *EmailChannel {
	if log == nil {
		log = slog.Default()
	}
	return &EmailChannel{sender: sender, options: options, log: log}
}

func (c *EmailChannel) ID() string {
	return ChannelEmail
}

// AvailableFor requires a configured sender and a recipient with an email
// address.
func (c *EmailChannel) AvailableFor(recipient Recipient, _ Notification) bool {
	return c.sender != nil && recipient.Email != ""
}

func (c *EmailChannel) Send(ctx context.Context, recipient Recipient, notif Notification) error {
	if c.sender == nil {
		return fmt.Errorf("email channel has no sender configured")
	}

	if err := c.sender.SendEmail(ctx, email.SendEmailParams{
		SendTo:   recipient.Email,
		Subject:  FormatTitle(c.options, notif.Title),
		BodyHTML: renderEmailBody(c.options, notif),
		Tag:      notif.Type,
	}); err != nil {
		return fmt.Errorf("email delivery to %s failed: %w", recipient.Email, err)
	}
	return nil
}

// renderEmailBody produces a minimal HTML body from the notification text.
// Channel-specific templating beyond title/message is the platform's concern.
func renderEmailBody(options map[string]string, notif Notification) string {
	return fmt.Sprintf("<h2>%s</h2><p>%s</p>",
		html.EscapeString(FormatTitle(options, notif.Title)),
		html.EscapeString(FormatMessage(options, notif.Message)),
	)
}
