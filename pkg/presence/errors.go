package presence

import "errors"

var (
	ErrNilClient      = errors.New("presence: redis client is required")
	ErrInvalidConfig  = errors.New("presence: invalid configuration")
	ErrEmptyUserID    = errors.New("presence: user id is required")
	ErrTrackingFailed = errors.New("presence: tracking operation failed")
)
