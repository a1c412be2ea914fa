// Package push delivers browser push messages for the notification push
// channel using the Web Push protocol with VAPID authentication.
//
// Recipients store the subscription JSON produced by their browser's
// PushManager; Send encrypts the payload against that subscription and
// posts it to the browser vendor's push service. Gone subscriptions
// (HTTP 404/410) are reported as ErrInvalidSubscription so callers can
// prune them.
//
// When no VAPID key pair is configured the channel degrades to a no-op
// sender: an explicit "not configured" error in production, simulated
// success elsewhere.
package push
