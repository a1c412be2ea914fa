package notification

import (
	"context"
	"time"
)

// Target scopes list and count queries to one recipient. Exactly the fields
// that are set are matched; an organization-wide query sets OrganizationID
// only.
type Target struct {
	OrganizationID string
	UserID         string
	TenantID       string
}

// ListOptions filters and paginates List queries. Results are always
// ordered newest first.
type ListOptions struct {
	OnlyUnread bool
	Types      []Type
	Since      *time.Time
	Limit      int
	Offset     int
}

// Storage persists notification records.
type Storage interface {
	// Insert stores a new notification record.
	Insert(ctx context.Context, n *Notification) error

	// Get returns a notification by id, or ErrNotificationNotFound.
	Get(ctx context.Context, id string) (*Notification, error)

	// List returns notifications for the target, newest first.
	List(ctx context.Context, target Target, opts ListOptions) ([]Notification, error)

	// UpdateDeliveryStatus writes the per-channel outcomes of one dispatch
	// in a single update. Channels absent from statuses keep their stored
	// entries. The suppression marker is written as given.
	UpdateDeliveryStatus(ctx context.Context, id string, statuses map[Channel]ChannelStatus, suppressed bool, reason string) error

	// MarkRead flags the notification as read at the given instant.
	MarkRead(ctx context.Context, id string, readAt time.Time) error

	// CountUnread counts unread notifications for the target.
	CountUnread(ctx context.Context, target Target) (int64, error)
}
