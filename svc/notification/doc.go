// Package notification implements multi-channel notification dispatch for a
// building management platform: in-app, email, SMS, and browser push.
//
// A notification is created once, persisted with a per-channel delivery
// status, and then dispatched through a gate pipeline:
//
//  1. Recipient resolution via a Directory (tenant or user record).
//  2. Preference resolution: the recipient's stored preferences, or
//     DefaultPreferences when none exist. Tenant preferences replace user
//     preferences outright.
//  3. Global suppression: do-not-disturb and quiet hours block every
//     channel. Emergency notifications bypass this gate.
//  4. Per-channel gates: an enabled flag plus a notification-type
//     allow-list per channel. An empty allow-list allows every type.
//  5. Channel send through the pkg/email, pkg/sms, and pkg/push senders,
//     with type-specific template rendering.
//
// Channel failures never escape CreateNotification; each attempted channel
// gets exactly one status entry recording sent, delivered, and an error
// message when delivery failed. The persisted record itself is the in-app
// delivery; Read/ReadAt track its read state.
//
// Storage has MongoDB and in-memory implementations. The Directory has a
// MongoDB implementation and a Redis-backed read-through cache decorator.
package notification
