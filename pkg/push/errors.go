package push

import "errors"

var (
	ErrFailedToSend        = errors.New("push.errors.failed_to_send")
	ErrInvalidConfig       = errors.New("push.errors.invalid_config")
	ErrInvalidSubscription = errors.New("push.errors.invalid_subscription")
	ErrNotConfigured       = errors.New("push.errors.not_configured")
)
