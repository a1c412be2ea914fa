package notification

import "errors"

var (
	// ErrInvalidInput is returned when a create request fails validation.
	ErrInvalidInput = errors.New("notification: invalid input")

	// ErrNotificationNotFound is returned when a notification is not found.
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrRecipientNotFound is returned by directory lookups for unknown ids.
	ErrRecipientNotFound = errors.New("recipient not found")
)
