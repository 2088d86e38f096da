package webhook

import "errors"

var (
	// ErrInvalidURL is returned for empty, malformed, or non-HTTP(S) webhook URLs.
	ErrInvalidURL = errors.New("webhook: invalid URL")

	// ErrInvalidPayload is returned when the payload is empty.
	ErrInvalidPayload = errors.New("webhook: invalid payload")

	// ErrInvalidConfiguration is returned for signing misconfiguration.
	ErrInvalidConfiguration = errors.New("webhook: invalid configuration")

	// ErrTimeout is returned when the request exceeds the configured timeout.
	ErrTimeout = errors.New("webhook: request timed out")

	// ErrDeliveryFailed is returned when the endpoint is unreachable or
	// responds with a non-2xx status.
	ErrDeliveryFailed = errors.New("webhook: delivery failed")
)
