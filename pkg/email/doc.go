// Package email provides a provider-agnostic interface for sending
// transactional emails for the notification email channel.
//
// The package is built around the EmailSender interface so providers can be
// swapped without changing dispatch code:
//
//   - SMTP sender (STARTTLS) for self-hosted or generic providers
//   - Postmark client for tracked transactional delivery
//   - DevSender that writes emails to disk for local development
//   - A disabled sender used when nothing is configured: explicit
//     "not configured" error in production, simulated success elsewhere
//
// All implementations validate parameters the same way before sending.
// None of them retry; a failed send is reported once to the caller, which
// records it in the notification's delivery status.
package email
