package push

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	webpush "github.com/SherClockHolmes/webpush-go"
)

// Payload is the message shown by the service worker on the recipient's
// device.
type Payload struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Link    string `json:"link,omitempty"`
	Tag     string `json:"tag,omitempty"`
}

// Sender represents an interface for delivering a Web Push message to a
// browser subscription. The subscription is the JSON blob the browser's
// PushManager produced when the recipient opted in.
type Sender interface {
	Send(ctx context.Context, subscriptionJSON string, payload Payload) error
}

type webpushSender struct {
	config Config
}

// NewSender creates a VAPID-authenticated Web Push sender.
func NewSender(cfg Config) (Sender, error) {
	if cfg.VAPIDPublicKey == "" || cfg.VAPIDPrivateKey == "" {
		return nil, fmt.Errorf("%w: VAPID key pair is required", ErrInvalidConfig)
	}
	if cfg.Subscriber == "" {
		return nil, fmt.Errorf("%w: Subscriber is required", ErrInvalidConfig)
	}
	return &webpushSender{config: cfg}, nil
}

// Send delivers one push message. Expired or malformed subscriptions are
// reported as ErrInvalidSubscription so the caller can distinguish a stale
// opt-in from a transport failure.
func (s *webpushSender) Send(ctx context.Context, subscriptionJSON string, payload Payload) error {
	if subscriptionJSON == "" {
		return fmt.Errorf("%w: empty subscription", ErrInvalidSubscription)
	}

	var sub webpush.Subscription
	if err := json.Unmarshal([]byte(subscriptionJSON), &sub); err != nil {
		return errors.Join(ErrInvalidSubscription, err)
	}
	if sub.Endpoint == "" {
		return fmt.Errorf("%w: subscription has no endpoint", ErrInvalidSubscription)
	}

	message, err := json.Marshal(payload)
	if err != nil {
		return errors.Join(ErrFailedToSend, err)
	}

	resp, err := webpush.SendNotificationWithContext(ctx, message, &sub, &webpush.Options{
		Subscriber:      s.config.Subscriber,
		VAPIDPublicKey:  s.config.VAPIDPublicKey,
		VAPIDPrivateKey: s.config.VAPIDPrivateKey,
		TTL:             s.config.TTL,
	})
	if err != nil {
		return errors.Join(ErrFailedToSend, err)
	}
	defer resp.Body.Close()

	// 404/410 mean the subscription is gone; the caller should drop it.
	if resp.StatusCode == 404 || resp.StatusCode == 410 {
		return fmt.Errorf("%w: push service returned %d", ErrInvalidSubscription, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		return errors.Join(ErrFailedToSend, fmt.Errorf("push service returned %d", resp.StatusCode))
	}
	return nil
}
