// Package sms sends text messages for the notification SMS/WhatsApp channel
// through a pluggable REST provider.
//
// The provider endpoint, credentials and transport (plain SMS or WhatsApp
// gateway) come from Config. When no endpoint is configured the channel
// degrades to a no-op sender: an explicit "not configured" error in
// production, simulated success elsewhere.
//
// The client performs a single best-effort HTTP call per message with the
// HTTP client's own timeout as the only deadline. Retry, rate limiting and
// backoff are deliberately out of scope.
package sms
