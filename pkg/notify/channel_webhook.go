package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/propstack/notifykit/pkg/webhook"
)

// Option keys recognized by the webhook channel.
const (
	OptionWebhookEndpoint = "endpoint_url"
	OptionWebhookSecret   = "signing_secret"
)

// WebhookChannel POSTs notifications to a configured HTTP endpoint. Without
// a sender or endpoint the channel stays registered but unavailable.
type WebhookChannel struct {
	sender   *webhook.Sender
	endpoint string
	secret   string
	options  map[string]string
	log      *slog.Logger
}

// webhookPayload is the wire shape delivered to webhook endpoints.
type webhookPayload struct {
	NotificationID string         `json:"notification_id"`
	UserID         string         `json:"user_id"`
	Type           string         `json:"type"`
	Title          string         `json:"title"`
	Message        string         `json:"message"`
	Metadata       map[string]any `json:"metadata,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

// NewWebhookChannel creates the webhook delivery channel. The endpoint URL
// and optional signing secret come from the channel options.
func NewWebhookChannel(sender *webhook.Sender, options map[string]string, log *slog.Logger) *WebhookChannel {
	if log == nil {
		log = slog.Default()
	}
	return &WebhookChannel{
		sender:   sender,
		endpoint: options[OptionWebhookEndpoint],
		secret:   options[OptionWebhookSecret],
		options:  options,
		log:      log,
	}
}

func (c *WebhookChannel) ID() string {
	return ChannelWebhook
}

// AvailableFor requires a sender and a configured endpoint URL.
func (c *WebhookChannel) AvailableFor(Recipient, Notification) bool {
	return c.sender != nil && c.endpoint != ""
}

func (c *WebhookChannel) Send(ctx context.Context, recipient Recipient, notif Notification) error {
	if c.sender == nil || c.endpoint == "" {
		return fmt.Errorf("webhook channel has no endpoint configured")
	}

	opts := []webhook.SendOption{}
	if c.secret != "" {
		opts = append(opts, webhook.WithSignature(c.secret))
	}

	payload := webhookPayload{
		NotificationID: notif.ID,
		UserID:         recipient.ID,
		Type:           notif.Type,
		Title:          FormatTitle(c.options, notif.Title),
		Message:        FormatMessage(c.options, notif.Message),
		Metadata:       notif.Metadata,
		CreatedAt:      notif.CreatedAt,
	}

	if err := c.sender.Send(ctx, c.endpoint, payload, opts...); err != nil {
		return fmt.Errorf("webhook delivery failed: %w", err)
	}
	return nil
}
