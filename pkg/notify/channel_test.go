package notify_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propstack/notifykit/pkg/email"
	"github.com/propstack/notifykit/pkg/notify"
	"github.com/propstack/notifykit/pkg/presence"
	"github.com/propstack/notifykit/pkg/webhook"
)

type captureMailer struct {
	mu   sync.Mutex
	sent []email.SendEmailParams
}

func (m *captureMailer) SendEmail(_ context.Context, params email.SendEmailParams) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, params)
	return nil
}

func TestDefaultChannels_Shape(t *testing.T) {
	t.Parallel()

	cfg := notify.DefaultDeliveryConfig()
	channels := notify.DefaultChannels(cfg, notify.ChannelDeps{})

	ids := make([]string, 0, len(channels))
	for _, ch := range channels {
		ids = append(ids, ch.ID())
	}
	assert.Equal(t, []string{notify.ChannelInApp, notify.ChannelEmail, notify.ChannelWebhook, notify.ChannelSocket}, ids)

	// With no dependencies only in-app is willing to deliver.
	recipient := notify.Recipient{ID: "u1", Email: "u1@example.com"}
	notif := notify.NewNotification("u1", "SYSTEM", "t", "m", nil)
	for _, ch := range channels {
		switch ch.ID() {
		case notify.ChannelInApp:
			assert.True(t, ch.AvailableFor(recipient, notif))
		default:
			assert.False(t, ch.AvailableFor(recipient, notif), "channel %s should be inert without deps", ch.ID())
		}
	}
}

func TestFormatHelpers(t *testing.T) {
	t.Parallel()

	opts := map[string]string{
		notify.OptionTitlePrefix:   "[alert]",
		notify.OptionMessagePrefix: ">>",
	}

	assert.Equal(t, "[alert] Downtime", notify.FormatTitle(opts, "Downtime"))
	assert.Equal(t, ">> soon", notify.FormatMessage(opts, "soon"))
	assert.Equal(t, "Downtime", notify.FormatTitle(nil, "Downtime"))
	assert.Equal(t, "soon", notify.FormatMessage(map[string]string{}, "soon"))
}

func TestInAppChannel_AlwaysAvailable(t *testing.T) {
	t.Parallel()

	ch := notify.NewInAppChannel(nil)
	assert.Equal(t, notify.ChannelInApp, ch.ID())
	assert.True(t, ch.AvailableFor(notify.Recipient{}, notify.Notification{}))
	assert.NoError(t, ch.Send(context.Background(), notify.Recipient{ID: "u1"}, notify.NewNotification("u1", "SYSTEM", "t", "m", nil)))
}

func TestEmailChannel(t *testing.T) {
	t.Parallel()

	t.Run("availability requires sender and address", func(t *testing.T) {
		t.Parallel()

		notif := notify.NewNotification("u1", "SYSTEM", "t", "m", nil)
		withAddress := notify.Recipient{ID: "u1", Email: "u1@example.com"}
		withoutAddress := notify.Recipient{ID: "u2"}

		inert := notify.NewEmailChannel(nil, nil, nil)
		assert.False(t, inert.AvailableFor(withAddress, notif))

		active := notify.NewEmailChannel(&captureMailer{}, nil, nil)
		assert.True(t, active.AvailableFor(withAddress, notif))
		assert.False(t, active.AvailableFor(withoutAddress, notif))
	})

	t.Run("send applies channel options", func(t *testing.T) {
		t.Parallel()

		mailer := &captureMailer{}
		ch := notify.NewEmailChannel(mailer, map[string]string{
			notify.OptionTitlePrefix: "[propstack]",
		}, nil)

		notif := notify.NewNotification("u1", "PROPERTY_APPROVED", "Listing approved", "Your listing is live", nil)
		err := ch.Send(context.Background(), notify.Recipient{ID: "u1", Name: "Ada", Email: "ada@example.com"}, notif)
		require.NoError(t, err)

		require.Len(t, mailer.sent, 1)
		msg := mailer.sent[0]
		assert.Equal(t, "ada@example.com", msg.SendTo)
		assert.Equal(t, "[propstack] Listing approved", msg.Subject)
		assert.Contains(t, msg.BodyHTML, "Your listing is live")
		assert.Equal(t, "PROPERTY_APPROVED", msg.Tag)
	})
}

func TestWebhookChannel(t *testing.T) {
	t.Parallel()

	t.Run("availability requires sender and endpoint", func(t *testing.T) {
		t.Parallel()

		notif := notify.Notification{}
		recipient := notify.Recipient{ID: "u1"}

		assert.False(t, notify.NewWebhookChannel(nil, nil, nil).AvailableFor(recipient, notif))
		assert.False(t, notify.NewWebhookChannel(webhook.NewSender(), nil, nil).AvailableFor(recipient, notif))

		configured := notify.NewWebhookChannel(webhook.NewSender(), map[string]string{
			notify.OptionWebhookEndpoint: "https://hooks.example.com/notify",
		}, nil)
		assert.True(t, configured.AvailableFor(recipient, notif))
	})

	t.Run("delivers signed payload", func(t *testing.T) {
		t.Parallel()

		const secret = "whsec_test"

		var (
			mu       sync.Mutex
			body     []byte
			received webhook.SignatureHeaders
		)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			defer mu.Unlock()
			body, _ = io.ReadAll(r.Body)
			ts, _ := strconv.ParseInt(r.Header.Get("X-Webhook-Timestamp"), 10, 64)
			received = webhook.SignatureHeaders{
				Signature: r.Header.Get("X-Webhook-Signature"),
				Timestamp: ts,
				ID:        r.Header.Get("X-Webhook-ID"),
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		ch := notify.NewWebhookChannel(webhook.NewSender(), map[string]string{
			notify.OptionWebhookEndpoint: srv.URL,
			notify.OptionWebhookSecret:   secret,
		}, nil)

		notif := notify.NewNotification("u1", "SYSTEM", "Downtime", "Sunday 02:00 UTC", map[string]any{"window": "2h"})
		require.NoError(t, ch.Send(context.Background(), notify.Recipient{ID: "u1"}, notif))

		mu.Lock()
		defer mu.Unlock()

		var payload map[string]any
		require.NoError(t, json.Unmarshal(body, &payload))
		assert.Equal(t, notif.ID, payload["notification_id"])
		assert.Equal(t, "u1", payload["user_id"])
		assert.Equal(t, "Downtime", payload["title"])

		require.NoError(t, webhook.VerifySignature(secret, body, received, time.Minute))
	})
}

func TestSocketChannel(t *testing.T) {
	t.Parallel()

	t.Run("availability follows presence", func(t *testing.T) {
		t.Parallel()

		tracker := presence.NewMemoryTracker(0)
		ch := notify.NewSocketChannel(tracker, 8, nil)
		notif := notify.Notification{}

		assert.False(t, notify.NewSocketChannel(nil, 8, nil).AvailableFor(notify.Recipient{ID: "u1"}, notif))
		assert.False(t, ch.AvailableFor(notify.Recipient{ID: "u1"}, notif))

		require.NoError(t, tracker.Connect(context.Background(), "u1"))
		assert.True(t, ch.AvailableFor(notify.Recipient{ID: "u1"}, notif))
	})

	t.Run("delivers to subscribed user", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		tracker := presence.NewMemoryTracker(0)
		require.NoError(t, tracker.Connect(ctx, "u1"))

		ch := notify.NewSocketChannel(tracker, 8, nil)
		defer ch.Close()

		sub := ch.Subscribe(ctx, "u1")
		notif := notify.NewNotification("u1", "SYSTEM", "t", "m", nil)
		require.NoError(t, ch.Send(ctx, notify.Recipient{ID: "u1"}, notif))

		select {
		case msg := <-sub.Receive(ctx):
			assert.Equal(t, notif.ID, msg.Data.ID)
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for socket delivery")
		}
	})

	t.Run("send without subscribers is a no-op", func(t *testing.T) {
		t.Parallel()

		ch := notify.NewSocketChannel(presence.NewMemoryTracker(0), 8, nil)
		defer ch.Close()

		err := ch.Send(context.Background(), notify.Recipient{ID: "lurker"}, notify.Notification{})
		assert.NoError(t, err)
	})
}
