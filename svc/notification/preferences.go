package notification

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Preferences controls whether and how a recipient is notified.
// Tenant-level preferences, when present, replace user-level preferences
// outright; there is no per-field merge.
type Preferences struct {
	InAppEnabled bool `bson:"in_app_enabled" json:"in_app_enabled"`
	EmailEnabled bool `bson:"email_enabled" json:"email_enabled"`
	SMSEnabled   bool `bson:"sms_enabled" json:"sms_enabled"`
	PushEnabled  bool `bson:"push_enabled" json:"push_enabled"`

	// Per-channel notification type allow-lists. An empty list allows
	// every type on that channel.
	EmailTypes []Type `bson:"email_types,omitempty" json:"email_types,omitempty"`
	SMSTypes   []Type `bson:"sms_types,omitempty" json:"sms_types,omitempty"`
	PushTypes  []Type `bson:"push_types,omitempty" json:"push_types,omitempty"`

	// Quiet hours in "HH:MM" wall-clock form. The window may span
	// midnight (e.g. 22:00 to 08:00). Both must be set for the window to
	// apply; malformed values disable it.
	QuietHoursStart string `bson:"quiet_hours_start,omitempty" json:"quiet_hours_start,omitempty"`
	QuietHoursEnd   string `bson:"quiet_hours_end,omitempty" json:"quiet_hours_end,omitempty"`

	// All non-emergency dispatch is suppressed until this instant.
	DoNotDisturbUntil *time.Time `bson:"do_not_disturb_until,omitempty" json:"do_not_disturb_until,omitempty"`
}

// DefaultPreferences returns the fallback used when neither the tenant nor
// the user record carries preferences: every channel on, with conservative
// type allow-lists for the interruptive channels.
func DefaultPreferences() Preferences {
	return Preferences{
		InAppEnabled: true,
		EmailEnabled: true,
		SMSEnabled:   true,
		PushEnabled:  true,
		EmailTypes: []Type{
			TypeInvoiceCreated, TypeInvoiceOverdue, TypePaymentReceived,
			TypePaymentDue, TypeLeaseCreated, TypeLeaseExpiring,
			TypeAnnouncement, TypeEmergencyAlert,
		},
		SMSTypes: []Type{
			TypePaymentDue, TypeInvoiceOverdue, TypeVisitorArrived,
			TypeSecurityIncident, TypeEmergencyAlert,
		},
		PushTypes: []Type{
			TypeVisitorArrived, TypeMaintenanceScheduled, TypeSecurityIncident,
			TypeAnnouncement, TypeEmergencyAlert,
		},
	}
}

// Suppression reasons persisted on the notification record.
const (
	reasonDoNotDisturb = "do_not_disturb"
	reasonQuietHours   = "quiet_hours"
)

// ShouldSend applies the global suppression gate: do-not-disturb, then quiet
// hours. Emergency notifications always pass. When suppressed, the second
// return value names the reason.
func (p Preferences) ShouldSend(n *Notification, now time.Time) (bool, string) {
	if n.IsEmergency() {
		return true, ""
	}
	if p.DoNotDisturbUntil != nil && now.Before(*p.DoNotDisturbUntil) {
		return false, reasonDoNotDisturb
	}
	if p.inQuietHours(now) {
		return false, reasonQuietHours
	}
	return true, ""
}

// AllowsChannel applies the per-channel gate: the channel's enabled flag
// plus its type allow-list. In-app has no allow-list.
func (p Preferences) AllowsChannel(c Channel, t Type) bool {
	switch c {
	case ChannelInApp:
		return p.InAppEnabled
	case ChannelEmail:
		return p.EmailEnabled && typeAllowed(p.EmailTypes, t)
	case ChannelSMS:
		return p.SMSEnabled && typeAllowed(p.SMSTypes, t)
	case ChannelPush:
		return p.PushEnabled && typeAllowed(p.PushTypes, t)
	default:
		return false
	}
}

func typeAllowed(allow []Type, t Type) bool {
	if len(allow) == 0 {
		return true
	}
	for _, a := range allow {
		if a == t {
			return true
		}
	}
	return false
}

// inQuietHours reports whether now falls inside the configured quiet-hours
// window. The comparison works on minute-of-day so a window like
// 22:00 to 08:00 wraps across midnight. Start and end minutes are inclusive
// and exclusive respectively; a window with start == end never matches.
func (p Preferences) inQuietHours(now time.Time) bool {
	if p.QuietHoursStart == "" || p.QuietHoursEnd == "" {
		return false
	}
	start, err := parseClock(p.QuietHoursStart)
	if err != nil {
		return false
	}
	end, err := parseClock(p.QuietHoursEnd)
	if err != nil {
		return false
	}
	if start == end {
		return false
	}
	cur := now.Hour()*60 + now.Minute()
	if start < end {
		return cur >= start && cur < end
	}
	return cur >= start || cur < end
}

// parseClock converts "HH:MM" to a minute-of-day in [0, 1440).
func parseClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return h*60 + m, nil
}
