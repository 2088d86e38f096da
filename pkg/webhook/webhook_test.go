package webhook_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propstack/notifykit/pkg/webhook"
)

type testEvent struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

func TestSender_Send_Success(t *testing.T) {
	t.Parallel()

	var received testEvent
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sender := webhook.NewSender()
	err := sender.Send(context.Background(), srv.URL, testEvent{Type: "notification.created", ID: "n1"})
	require.NoError(t, err)
	assert.Equal(t, "n1", received.ID)
}

func TestSender_Send_Non2xxFails(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	sender := webhook.NewSender()
	err := sender.Send(context.Background(), srv.URL, testEvent{ID: "n1"})
	assert.ErrorIs(t, err, webhook.ErrDeliveryFailed)
}

func TestSender_Send_SingleAttempt(t *testing.T) {
	t.Parallel()

	var attempts int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	sender := webhook.NewSender()
	err := sender.Send(context.Background(), srv.URL, testEvent{ID: "n1"})
	assert.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestSender_Send_Timeout(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	sender := webhook.NewSender()
	err := sender.Send(context.Background(), srv.URL, testEvent{ID: "n1"},
		webhook.WithTimeout(50*time.Millisecond))
	assert.ErrorIs(t, err, webhook.ErrTimeout)
}

func TestSender_Send_InvalidURL(t *testing.T) {
	t.Parallel()

	sender := webhook.NewSender()

	tests := []struct {
		name string
		url  string
	}{
		{name: "empty", url: ""},
		{name: "bad scheme", url: "ftp://example.com/hook"},
		{name: "no host", url: "http://"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := sender.Send(context.Background(), tt.url, testEvent{ID: "n1"})
			assert.ErrorIs(t, err, webhook.ErrInvalidURL)
		})
	}
}

func TestSender_Send_SignatureHeaders(t *testing.T) {
	t.Parallel()

	const secret = "whsec_test"
	var payload []byte
	var headers webhook.SignatureHeaders

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, _ = io.ReadAll(r.Body)
		ts := r.Header.Get("X-Webhook-Timestamp")
		require.NotEmpty(t, ts)

		headers.Signature = r.Header.Get("X-Webhook-Signature")
		headers.ID = r.Header.Get("X-Webhook-ID")
		var err error
		headers.Timestamp, err = strconv.ParseInt(ts, 10, 64)
		require.NoError(t, err)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sender := webhook.NewSender()
	require.NoError(t, sender.Send(context.Background(), srv.URL, testEvent{ID: "n1"},
		webhook.WithSignature(secret)))

	assert.NotEmpty(t, headers.ID)
	assert.NoError(t, webhook.VerifySignature(secret, payload, headers, time.Minute))
	assert.Error(t, webhook.VerifySignature("wrong-secret", payload, headers, time.Minute))
}

func TestSender_Send_OnDeliveryHook(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	var result webhook.DeliveryResult
	sender := webhook.NewSender()
	require.NoError(t, sender.Send(context.Background(), srv.URL, testEvent{ID: "n1"},
		webhook.WithOnDelivery(func(r webhook.DeliveryResult) { result = r })))

	assert.True(t, result.Success)
	assert.Equal(t, http.StatusNoContent, result.StatusCode)
	assert.Greater(t, result.Duration, time.Duration(0))
}

func TestVerifySignature_StaleTimestamp(t *testing.T) {
	t.Parallel()

	const secret = "whsec_test"
	payload := []byte(`{"id":"n1"}`)

	headers, err := webhook.SignPayload(secret, payload)
	require.NoError(t, err)

	headers.Timestamp -= int64((2 * time.Hour).Seconds())
	assert.Error(t, webhook.VerifySignature(secret, payload, headers, time.Minute))
}
