package notification

import "context"

// Recipient is the contact surface of a tenant or user record: the
// addresses each channel needs plus the stored preferences, if any.
type Recipient struct {
	ID               string       `bson:"_id" json:"id"`
	OrganizationID   string       `bson:"organization_id,omitempty" json:"organization_id,omitempty"`
	Name             string       `bson:"name,omitempty" json:"name,omitempty"`
	Email            string       `bson:"email,omitempty" json:"email,omitempty"`
	Phone            string       `bson:"phone,omitempty" json:"phone,omitempty"`
	PushSubscription string       `bson:"push_subscription,omitempty" json:"push_subscription,omitempty"`
	Preferences      *Preferences `bson:"notification_preferences,omitempty" json:"notification_preferences,omitempty"`
}

// Directory resolves recipient contact records. Implementations return
// ErrRecipientNotFound for unknown ids.
type Directory interface {
	FindTenant(ctx context.Context, id string) (*Recipient, error)
	FindUser(ctx context.Context, id string) (*Recipient, error)
}
