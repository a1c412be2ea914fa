package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dwellos/bms/pkg/email"
	"github.com/dwellos/bms/pkg/logger"
	"github.com/dwellos/bms/pkg/push"
	"github.com/dwellos/bms/pkg/sms"
)

// Service orchestrates the notification lifecycle: create, gate, dispatch,
// and the read-state queries. Delivery failures never surface as errors
// from CreateNotification; they are recorded per channel on the record.
type Service struct {
	storage   Storage
	directory Directory
	email     email.EmailSender
	sms       sms.Sender
	push      push.Sender
	log       *slog.Logger
	now       func() time.Time
}

// Option configures the service.
type Option func(*Service)

// WithEmailSender sets the email channel sender.
func WithEmailSender(s email.EmailSender) Option {
	return func(svc *Service) { svc.email = s }
}

// WithSMSSender sets the SMS channel sender.
func WithSMSSender(s sms.Sender) Option {
	return func(svc *Service) { svc.sms = s }
}

// WithPushSender sets the push channel sender.
func WithPushSender(s push.Sender) Option {
	return func(svc *Service) { svc.push = s }
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(svc *Service) { svc.log = log }
}

// WithClock overrides the time source, used by quiet-hours tests.
func WithClock(now func() time.Time) Option {
	return func(svc *Service) { svc.now = now }
}

// NewService creates a notification service. Storage is required; a nil
// directory means recipient lookups always miss and contact-dependent
// channels record a not-found error.
func NewService(storage Storage, directory Directory, opts ...Option) *Service {
	svc := &Service{
		storage:   storage,
		directory: directory,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.log == nil {
		svc.log = slog.Default()
	}
	svc.log = svc.log.With(logger.Component("notification"))
	return svc
}

// CreateNotification validates the input, persists the record with a
// pending status entry per requested channel, and dispatches it. Dispatch
// problems are logged and recorded on the notification, never returned; the
// error return covers validation and persistence only.
func (s *Service) CreateNotification(ctx context.Context, in CreateInput) (*Notification, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	n := &Notification{
		ID:             uuid.NewString(),
		OrganizationID: in.OrganizationID,
		UserID:         in.UserID,
		TenantID:       in.TenantID,
		Type:           in.Type,
		Priority:       in.Priority,
		Title:          in.Title,
		Message:        in.Message,
		Channels:       in.Channels,
		DeliveryStatus: make(map[Channel]ChannelStatus, len(in.Channels)),
		Metadata:       in.Metadata,
		Link:           in.Link,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if n.Priority == "" {
		n.Priority = PriorityNormal
	}
	for _, ch := range in.Channels {
		n.DeliveryStatus[ch] = ChannelStatus{}
	}

	if err := s.storage.Insert(ctx, n); err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}

	if err := s.SendNotification(ctx, n); err != nil {
		s.log.LogAttrs(ctx, slog.LevelWarn, "notification stored but dispatch failed",
			logger.NotificationID(n.ID),
			logger.NotificationType(string(n.Type)),
			logger.Error(err))
	}
	return n, nil
}

// SendNotification runs the dispatch pipeline for an already-persisted
// notification: resolve the recipient and preferences, apply the global
// suppression gate, then attempt each requested channel that passes its
// per-channel gate and has not been attempted yet. All channel outcomes are
// written back in a single status update. The returned error covers the
// status write, not individual channel failures.
func (s *Service) SendNotification(ctx context.Context, n *Notification) error {
	recipient := s.lookupRecipient(ctx, n.TenantID, n.UserID)

	prefs := DefaultPreferences()
	if recipient != nil && recipient.Preferences != nil {
		prefs = *recipient.Preferences
	}

	if ok, reason := prefs.ShouldSend(n, s.now()); !ok {
		if err := s.storage.UpdateDeliveryStatus(ctx, n.ID, nil, true, reason); err != nil {
			return fmt.Errorf("record suppression: %w", err)
		}
		n.Suppressed = true
		n.SuppressedReason = reason
		s.log.LogAttrs(ctx, slog.LevelInfo, "notification suppressed",
			logger.NotificationID(n.ID),
			logger.NotificationType(string(n.Type)),
			slog.String("reason", reason))
		return nil
	}

	updates := make(map[Channel]ChannelStatus, len(n.Channels))
	for _, ch := range n.Channels {
		if n.DeliveryStatus[ch].Sent {
			continue
		}
		if !prefs.AllowsChannel(ch, n.Type) {
			continue
		}
		updates[ch] = s.dispatch(ctx, n, ch, recipient)
	}
	if len(updates) == 0 {
		return nil
	}

	if err := s.storage.UpdateDeliveryStatus(ctx, n.ID, updates, false, ""); err != nil {
		return fmt.Errorf("record delivery status: %w", err)
	}
	for ch, st := range updates {
		n.DeliveryStatus[ch] = st
	}
	return nil
}

// MarkAsRead marks the notification as read on behalf of the caller. It
// returns false without error when the notification does not exist or is
// addressed to a different user.
func (s *Service) MarkAsRead(ctx context.Context, id, callerID string) (bool, error) {
	n, err := s.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotificationNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("mark as read: %w", err)
	}
	if n.UserID != "" && n.UserID != callerID {
		return false, nil
	}
	if n.UserID == "" && n.TenantID != "" && n.TenantID != callerID {
		return false, nil
	}
	if n.Read {
		return true, nil
	}
	if err := s.storage.MarkRead(ctx, id, s.now().UTC()); err != nil {
		return false, fmt.Errorf("mark as read: %w", err)
	}
	return true, nil
}

// CountUnread returns the number of unread notifications for the target.
func (s *Service) CountUnread(ctx context.Context, target Target) (int64, error) {
	return s.storage.CountUnread(ctx, target)
}

// List returns notifications for the target, newest first.
func (s *Service) List(ctx context.Context, target Target, opts ListOptions) ([]Notification, error) {
	return s.storage.List(ctx, target, opts)
}

// GetPreferences returns the effective preferences for the addressed
// recipient: the tenant record's preferences when tenantID is set,
// otherwise the user record's, otherwise DefaultPreferences.
func (s *Service) GetPreferences(ctx context.Context, userID, tenantID string) Preferences {
	if r := s.lookupRecipient(ctx, tenantID, userID); r != nil && r.Preferences != nil {
		return *r.Preferences
	}
	return DefaultPreferences()
}

// lookupRecipient resolves the addressed tenant or user. A missing record
// is not an error at this level; channels that need contact details record
// it per channel.
func (s *Service) lookupRecipient(ctx context.Context, tenantID, userID string) *Recipient {
	if s.directory == nil {
		return nil
	}
	var (
		r   *Recipient
		err error
	)
	switch {
	case tenantID != "":
		r, err = s.directory.FindTenant(ctx, tenantID)
	case userID != "":
		r, err = s.directory.FindUser(ctx, userID)
	default:
		return nil
	}
	if err != nil {
		if !errors.Is(err, ErrRecipientNotFound) {
			s.log.LogAttrs(ctx, slog.LevelWarn, "recipient lookup failed",
				logger.TenantID(tenantID),
				logger.UserID(userID),
				logger.Error(err))
		}
		return nil
	}
	return r
}

// dispatch attempts delivery on a single channel and returns its status
// entry. The entry always has Sent set; Delivered or Error reflect the
// outcome.
func (s *Service) dispatch(ctx context.Context, n *Notification, ch Channel, recipient *Recipient) ChannelStatus {
	sentAt := s.now().UTC()
	st := ChannelStatus{Sent: true, SentAt: &sentAt}

	switch ch {
	case ChannelInApp:
		// The persisted record is the in-app delivery.
		st.Delivered = true

	case ChannelEmail:
		if recipient == nil || recipient.Email == "" {
			st.Error = "Recipient email not found"
			break
		}
		if s.email == nil {
			st.Error = "email sender not configured"
			break
		}
		r := Render(n)
		err := s.email.SendEmail(ctx, email.SendEmailParams{
			SendTo:   recipient.Email,
			Subject:  r.Subject,
			BodyHTML: r.HTMLBody,
			Tag:      string(n.Type),
		})
		if err != nil {
			st.Error = err.Error()
			s.logChannelError(ctx, n, ch, err)
			break
		}
		st.Delivered = true

	case ChannelSMS:
		if recipient == nil || recipient.Phone == "" {
			st.Error = "Recipient phone not found"
			break
		}
		if s.sms == nil {
			st.Error = "sms sender not configured"
			break
		}
		r := Render(n)
		if err := s.sms.Send(ctx, recipient.Phone, r.Body); err != nil {
			st.Error = err.Error()
			s.logChannelError(ctx, n, ch, err)
			break
		}
		st.Delivered = true

	case ChannelPush:
		if recipient == nil || recipient.PushSubscription == "" {
			st.Error = "Recipient push subscription not found"
			break
		}
		if s.push == nil {
			st.Error = "push sender not configured"
			break
		}
		r := Render(n)
		payload := push.Payload{
			Title:   r.Subject,
			Message: r.Body,
			Link:    n.Link,
			Tag:     string(n.Type),
		}
		if err := s.push.Send(ctx, recipient.PushSubscription, payload); err != nil {
			st.Error = err.Error()
			s.logChannelError(ctx, n, ch, err)
			break
		}
		st.Delivered = true

	default:
		st.Error = fmt.Sprintf("unknown channel %q", ch)
	}
	return st
}

func (s *Service) logChannelError(ctx context.Context, n *Notification, ch Channel, err error) {
	s.log.LogAttrs(ctx, slog.LevelWarn, "channel delivery failed",
		logger.NotificationID(n.ID),
		logger.Channel(string(ch)),
		logger.NotificationType(string(n.Type)),
		logger.Error(err))
}
