package sms

import "context"

// Sender represents an interface for sending a text message to a phone
// number. Implementations wrap exactly one upstream transport and never
// retry; a failed send is reported once to the caller.
type Sender interface {
	Send(ctx context.Context, to, body string) error
}
