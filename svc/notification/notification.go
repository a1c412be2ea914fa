package notification

import (
	"fmt"
	"time"
)

// Channel represents a delivery transport for a notification.
type Channel string

const (
	ChannelInApp Channel = "in_app"
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
	ChannelPush  Channel = "push"
)

// knownChannels is the set of channels the dispatcher understands.
var knownChannels = map[Channel]bool{
	ChannelInApp: true,
	ChannelEmail: true,
	ChannelSMS:   true,
	ChannelPush:  true,
}

// Type identifies the business event a notification describes.
type Type string

const (
	TypeInvoiceCreated       Type = "invoice_created"
	TypeInvoiceOverdue       Type = "invoice_overdue"
	TypePaymentReceived      Type = "payment_received"
	TypePaymentDue           Type = "payment_due"
	TypeLeaseCreated         Type = "lease_created"
	TypeLeaseExpiring        Type = "lease_expiring"
	TypeMaintenanceScheduled Type = "maintenance_scheduled"
	TypeVisitorArrived       Type = "visitor_arrived"
	TypeParkingAssigned      Type = "parking_assigned"
	TypeSecurityIncident     Type = "security_incident"
	TypeEmergencyAlert       Type = "emergency_alert"
	TypeAnnouncement         Type = "announcement"
	TypeSystem               Type = "system"
)

// Priority represents the notification priority level.
type Priority string

const (
	PriorityLow       Priority = "low"
	PriorityNormal    Priority = "normal"
	PriorityHigh      Priority = "high"
	PriorityEmergency Priority = "emergency"
)

// ChannelStatus records the outcome of a single delivery attempt on one
// channel. An entry starts as the zero value (not attempted) and is mutated
// at most once per dispatch; there is no retry loop.
type ChannelStatus struct {
	Sent      bool       `bson:"sent" json:"sent"`
	Delivered bool       `bson:"delivered" json:"delivered"`
	Error     string     `bson:"error,omitempty" json:"error,omitempty"`
	SentAt    *time.Time `bson:"sent_at,omitempty" json:"sent_at,omitempty"`
}

// Notification is the core domain model.
// At most one of UserID/TenantID is populated; DeliveryStatus contains an
// entry exactly for the channels listed in Channels.
type Notification struct {
	ID             string                    `bson:"_id" json:"id"`
	OrganizationID string                    `bson:"organization_id,omitempty" json:"organization_id,omitempty"`
	UserID         string                    `bson:"user_id,omitempty" json:"user_id,omitempty"`
	TenantID       string                    `bson:"tenant_id,omitempty" json:"tenant_id,omitempty"`
	Type           Type                      `bson:"type" json:"type"`
	Priority       Priority                  `bson:"priority" json:"priority"`
	Title          string                    `bson:"title" json:"title"`
	Message        string                    `bson:"message" json:"message"`
	Channels       []Channel                 `bson:"channels" json:"channels"`
	DeliveryStatus map[Channel]ChannelStatus `bson:"delivery_status" json:"delivery_status"`
	Metadata       map[string]any            `bson:"metadata,omitempty" json:"metadata,omitempty"`
	Link           string                    `bson:"link,omitempty" json:"link,omitempty"`

	// In-app read sub-state, mutated only by MarkAsRead.
	Read   bool       `bson:"read" json:"read"`
	ReadAt *time.Time `bson:"read_at,omitempty" json:"read_at,omitempty"`

	// Set when the global suppression gate (quiet hours or do-not-disturb)
	// skipped the dispatch, so callers can tell suppression apart from
	// per-channel preference gating.
	Suppressed       bool   `bson:"suppressed,omitempty" json:"suppressed,omitempty"`
	SuppressedReason string `bson:"suppressed_reason,omitempty" json:"suppressed_reason,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// IsEmergency reports whether the notification bypasses the global
// suppression gate.
func (n *Notification) IsEmergency() bool {
	return n.Priority == PriorityEmergency || n.Type == TypeEmergencyAlert
}

// HasChannel reports whether the channel was requested for this notification.
func (n *Notification) HasChannel(c Channel) bool {
	for _, ch := range n.Channels {
		if ch == c {
			return true
		}
	}
	return false
}

// MarkAsRead marks the notification as read with the given timestamp.
func (n *Notification) MarkAsRead(at time.Time) {
	n.Read = true
	n.ReadAt = &at
}

// CreateInput is the caller-facing shape for creating a notification.
type CreateInput struct {
	OrganizationID string         `json:"organization_id,omitempty"`
	UserID         string         `json:"user_id,omitempty"`
	TenantID       string         `json:"tenant_id,omitempty"`
	Type           Type           `json:"type"`
	Priority       Priority       `json:"priority,omitempty"`
	Title          string         `json:"title"`
	Message        string         `json:"message"`
	Channels       []Channel      `json:"channels"`
	Link           string         `json:"link,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty"`
}

// Validate checks the input before a record is created.
func (in CreateInput) Validate() error {
	if in.Type == "" {
		return fmt.Errorf("%w: type is required", ErrInvalidInput)
	}
	if in.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if in.Message == "" {
		return fmt.Errorf("%w: message is required", ErrInvalidInput)
	}
	if len(in.Channels) == 0 {
		return fmt.Errorf("%w: at least one channel is required", ErrInvalidInput)
	}
	if in.UserID != "" && in.TenantID != "" {
		return fmt.Errorf("%w: at most one of user_id and tenant_id may be set", ErrInvalidInput)
	}
	seen := make(map[Channel]bool, len(in.Channels))
	for _, ch := range in.Channels {
		if !knownChannels[ch] {
			return fmt.Errorf("%w: unknown channel %q", ErrInvalidInput, ch)
		}
		if seen[ch] {
			return fmt.Errorf("%w: duplicate channel %q", ErrInvalidInput, ch)
		}
		seen[ch] = true
	}
	return nil
}
