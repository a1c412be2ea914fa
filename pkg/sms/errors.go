package sms

import "errors"

var (
	ErrFailedToSend  = errors.New("sms.errors.failed_to_send")
	ErrInvalidConfig = errors.New("sms.errors.invalid_config")
	ErrInvalidParams = errors.New("sms.errors.invalid_params")
	ErrNotConfigured = errors.New("sms.errors.not_configured")
)
