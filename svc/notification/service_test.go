package notification

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dwellos/bms/pkg/email"
	"github.com/dwellos/bms/pkg/push"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixedClock(hh, mm int) func() time.Time {
	return func() time.Time { return clockTime(hh, mm) }
}

func TestService_CreateNotification_Validation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := NewService(NewMemoryStorage(), nil, WithLogger(testLogger()))

	tests := []struct {
		name  string
		input CreateInput
	}{
		{"missing type", CreateInput{Title: "t", Message: "m", Channels: []Channel{ChannelInApp}}},
		{"missing title", CreateInput{Type: TypeSystem, Message: "m", Channels: []Channel{ChannelInApp}}},
		{"missing message", CreateInput{Type: TypeSystem, Title: "t", Channels: []Channel{ChannelInApp}}},
		{"no channels", CreateInput{Type: TypeSystem, Title: "t", Message: "m"}},
		{"unknown channel", CreateInput{Type: TypeSystem, Title: "t", Message: "m", Channels: []Channel{"fax"}}},
		{"duplicate channel", CreateInput{Type: TypeSystem, Title: "t", Message: "m", Channels: []Channel{ChannelInApp, ChannelInApp}}},
		{"both user and tenant", CreateInput{Type: TypeSystem, Title: "t", Message: "m", Channels: []Channel{ChannelInApp}, UserID: "u1", TenantID: "t1"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.CreateNotification(ctx, tt.input)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestService_CreateNotification_InApp(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	storage := NewMemoryStorage()
	svc := NewService(storage, nil, WithLogger(testLogger()))

	n, err := svc.CreateNotification(ctx, CreateInput{
		UserID:   "user-1",
		Type:     TypeAnnouncement,
		Title:    "Pool closed",
		Message:  "The pool is closed for cleaning.",
		Channels: []Channel{ChannelInApp},
	})
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.NotEmpty(t, n.ID)
	assert.Equal(t, PriorityNormal, n.Priority, "priority defaults to normal")

	st := n.DeliveryStatus[ChannelInApp]
	assert.True(t, st.Sent)
	assert.True(t, st.Delivered, "persistence is the in-app delivery")
	assert.Empty(t, st.Error)
	require.NotNil(t, st.SentAt)

	stored, err := storage.Get(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, stored.DeliveryStatus[ChannelInApp].Delivered)
	assert.False(t, stored.Read)

	count, err := svc.CountUnread(ctx, Target{UserID: "user-1"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestService_CreateNotification_Email(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("delivered to user email", func(t *testing.T) {
		t.Parallel()
		dir := new(MockDirectory)
		dir.On("FindUser", mock.Anything, "user-1").
			Return(&Recipient{ID: "user-1", Email: "resident@example.com"}, nil)

		sender := new(MockEmailSender)
		sender.On("SendEmail", mock.Anything, mock.MatchedBy(func(p email.SendEmailParams) bool {
			return p.SendTo == "resident@example.com" && p.Subject == "Invoice INV-7 issued"
		})).Return(nil)

		svc := NewService(NewMemoryStorage(), dir, WithEmailSender(sender), WithLogger(testLogger()))
		n, err := svc.CreateNotification(ctx, CreateInput{
			UserID:   "user-1",
			Type:     TypeInvoiceCreated,
			Title:    "New invoice",
			Message:  "Please pay by the due date.",
			Channels: []Channel{ChannelInApp, ChannelEmail},
			Metadata: map[string]any{"invoice_number": "INV-7", "amount": "$900"},
		})
		require.NoError(t, err)

		assert.True(t, n.DeliveryStatus[ChannelEmail].Delivered)
		assert.True(t, n.DeliveryStatus[ChannelInApp].Delivered)
		sender.AssertExpectations(t)
		dir.AssertExpectations(t)
	})

	t.Run("missing email records error without touching siblings", func(t *testing.T) {
		t.Parallel()
		dir := new(MockDirectory)
		dir.On("FindUser", mock.Anything, "user-1").
			Return(&Recipient{ID: "user-1", Phone: "+15550001111"}, nil)

		sender := new(MockEmailSender)
		svc := NewService(NewMemoryStorage(), dir, WithEmailSender(sender), WithLogger(testLogger()))
		n, err := svc.CreateNotification(ctx, CreateInput{
			UserID:   "user-1",
			Type:     TypeAnnouncement,
			Title:    "t",
			Message:  "m",
			Channels: []Channel{ChannelInApp, ChannelEmail},
		})
		require.NoError(t, err)

		st := n.DeliveryStatus[ChannelEmail]
		assert.True(t, st.Sent)
		assert.False(t, st.Delivered)
		assert.Equal(t, "Recipient email not found", st.Error)
		assert.True(t, n.DeliveryStatus[ChannelInApp].Delivered, "in-app unaffected")
		sender.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything)
	})

	t.Run("send failure is recorded, not returned", func(t *testing.T) {
		t.Parallel()
		dir := new(MockDirectory)
		dir.On("FindUser", mock.Anything, "user-1").
			Return(&Recipient{ID: "user-1", Email: "resident@example.com"}, nil)

		sender := new(MockEmailSender)
		sender.On("SendEmail", mock.Anything, mock.Anything).Return(errors.New("smtp: connection refused"))

		svc := NewService(NewMemoryStorage(), dir, WithEmailSender(sender), WithLogger(testLogger()))
		n, err := svc.CreateNotification(ctx, CreateInput{
			UserID:   "user-1",
			Type:     TypeAnnouncement,
			Title:    "t",
			Message:  "m",
			Channels: []Channel{ChannelEmail},
		})
		require.NoError(t, err, "channel failures never escape")

		st := n.DeliveryStatus[ChannelEmail]
		assert.True(t, st.Sent)
		assert.False(t, st.Delivered)
		assert.Contains(t, st.Error, "connection refused")
	})

	t.Run("unknown recipient records not found", func(t *testing.T) {
		t.Parallel()
		dir := new(MockDirectory)
		dir.On("FindUser", mock.Anything, "ghost").Return(nil, ErrRecipientNotFound)

		svc := NewService(NewMemoryStorage(), dir, WithEmailSender(new(MockEmailSender)), WithLogger(testLogger()))
		n, err := svc.CreateNotification(ctx, CreateInput{
			UserID:   "ghost",
			Type:     TypeAnnouncement,
			Title:    "t",
			Message:  "m",
			Channels: []Channel{ChannelEmail},
		})
		require.NoError(t, err)
		assert.Equal(t, "Recipient email not found", n.DeliveryStatus[ChannelEmail].Error)
	})
}

func TestService_PreferenceGating(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("tenant email disabled skips the email channel", func(t *testing.T) {
		t.Parallel()
		prefs := DefaultPreferences()
		prefs.EmailEnabled = false

		dir := new(MockDirectory)
		dir.On("FindTenant", mock.Anything, "t1").
			Return(&Recipient{ID: "t1", Email: "tenant@example.com", Preferences: &prefs}, nil)

		sender := new(MockEmailSender)
		svc := NewService(NewMemoryStorage(), dir, WithEmailSender(sender), WithLogger(testLogger()))
		n, err := svc.CreateNotification(ctx, CreateInput{
			TenantID: "t1",
			Type:     TypeAnnouncement,
			Title:    "t",
			Message:  "m",
			Channels: []Channel{ChannelInApp, ChannelEmail},
		})
		require.NoError(t, err)

		assert.True(t, n.DeliveryStatus[ChannelInApp].Delivered)
		st := n.DeliveryStatus[ChannelEmail]
		assert.False(t, st.Sent, "gated channel entry stays untouched")
		assert.Empty(t, st.Error)
		sender.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything)
	})

	t.Run("type allow-list filters the channel", func(t *testing.T) {
		t.Parallel()
		prefs := DefaultPreferences()
		prefs.SMSTypes = []Type{TypeEmergencyAlert}

		dir := new(MockDirectory)
		dir.On("FindUser", mock.Anything, "u1").
			Return(&Recipient{ID: "u1", Phone: "+15550001111", Preferences: &prefs}, nil)

		sender := new(MockSMSSender)
		svc := NewService(NewMemoryStorage(), dir, WithSMSSender(sender), WithLogger(testLogger()))
		n, err := svc.CreateNotification(ctx, CreateInput{
			UserID:   "u1",
			Type:     TypeVisitorArrived,
			Title:    "Visitor",
			Message:  "At the gate.",
			Channels: []Channel{ChannelSMS},
		})
		require.NoError(t, err)
		assert.False(t, n.DeliveryStatus[ChannelSMS].Sent)
		sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestService_GlobalSuppression(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	quietPrefs := DefaultPreferences()
	quietPrefs.QuietHoursStart = "22:00"
	quietPrefs.QuietHoursEnd = "08:00"

	newSvc := func(t *testing.T, storage *MemoryStorage, clock func() time.Time) *Service {
		t.Helper()
		dir := new(MockDirectory)
		dir.On("FindUser", mock.Anything, "u1").
			Return(&Recipient{ID: "u1", Email: "u@example.com", Preferences: &quietPrefs}, nil)
		sender := new(MockEmailSender)
		sender.On("SendEmail", mock.Anything, mock.Anything).Return(nil)
		return NewService(storage, dir,
			WithEmailSender(sender),
			WithLogger(testLogger()),
			WithClock(clock))
	}

	t.Run("quiet hours suppress every channel", func(t *testing.T) {
		t.Parallel()
		storage := NewMemoryStorage()
		svc := newSvc(t, storage, fixedClock(23, 0))

		n, err := svc.CreateNotification(ctx, CreateInput{
			UserID:   "u1",
			Type:     TypeAnnouncement,
			Title:    "t",
			Message:  "m",
			Channels: []Channel{ChannelInApp, ChannelEmail},
		})
		require.NoError(t, err)

		assert.True(t, n.Suppressed)
		assert.Equal(t, "quiet_hours", n.SuppressedReason)
		assert.False(t, n.DeliveryStatus[ChannelInApp].Sent)
		assert.False(t, n.DeliveryStatus[ChannelEmail].Sent)

		stored, err := storage.Get(ctx, n.ID)
		require.NoError(t, err)
		assert.True(t, stored.Suppressed, "suppression is persisted")
	})

	t.Run("outside quiet hours delivery proceeds", func(t *testing.T) {
		t.Parallel()
		svc := newSvc(t, NewMemoryStorage(), fixedClock(9, 0))

		n, err := svc.CreateNotification(ctx, CreateInput{
			UserID:   "u1",
			Type:     TypeAnnouncement,
			Title:    "t",
			Message:  "m",
			Channels: []Channel{ChannelInApp},
		})
		require.NoError(t, err)
		assert.False(t, n.Suppressed)
		assert.True(t, n.DeliveryStatus[ChannelInApp].Delivered)
	})

	t.Run("emergency bypasses quiet hours", func(t *testing.T) {
		t.Parallel()
		svc := newSvc(t, NewMemoryStorage(), fixedClock(23, 0))

		n, err := svc.CreateNotification(ctx, CreateInput{
			UserID:   "u1",
			Type:     TypeEmergencyAlert,
			Priority: PriorityEmergency,
			Title:    "Fire alarm",
			Message:  "Evacuate now.",
			Channels: []Channel{ChannelInApp, ChannelEmail},
		})
		require.NoError(t, err)
		assert.False(t, n.Suppressed)
		assert.True(t, n.DeliveryStatus[ChannelInApp].Delivered)
		assert.True(t, n.DeliveryStatus[ChannelEmail].Sent)
	})
}

func TestService_SMSAndPushChannels(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("sms delivered", func(t *testing.T) {
		t.Parallel()
		dir := new(MockDirectory)
		dir.On("FindTenant", mock.Anything, "t1").
			Return(&Recipient{ID: "t1", Phone: "+15550001111"}, nil)

		sender := new(MockSMSSender)
		sender.On("Send", mock.Anything, "+15550001111", mock.Anything).Return(nil)

		svc := NewService(NewMemoryStorage(), dir, WithSMSSender(sender), WithLogger(testLogger()))
		n, err := svc.CreateNotification(ctx, CreateInput{
			TenantID: "t1",
			Type:     TypeVisitorArrived,
			Title:    "Visitor",
			Message:  "At the gate.",
			Channels: []Channel{ChannelSMS},
		})
		require.NoError(t, err)
		assert.True(t, n.DeliveryStatus[ChannelSMS].Delivered)
		sender.AssertExpectations(t)
	})

	t.Run("push without subscription records error", func(t *testing.T) {
		t.Parallel()
		dir := new(MockDirectory)
		dir.On("FindUser", mock.Anything, "u1").Return(&Recipient{ID: "u1"}, nil)

		svc := NewService(NewMemoryStorage(), dir, WithPushSender(new(MockPushSender)), WithLogger(testLogger()))
		n, err := svc.CreateNotification(ctx, CreateInput{
			UserID:   "u1",
			Type:     TypeVisitorArrived,
			Title:    "Visitor",
			Message:  "At the gate.",
			Channels: []Channel{ChannelPush},
		})
		require.NoError(t, err)
		assert.Equal(t, "Recipient push subscription not found", n.DeliveryStatus[ChannelPush].Error)
	})

	t.Run("push delivered with rendered payload", func(t *testing.T) {
		t.Parallel()
		sub := `{"endpoint":"https://push.example.com/s/1"}`
		dir := new(MockDirectory)
		dir.On("FindUser", mock.Anything, "u1").
			Return(&Recipient{ID: "u1", PushSubscription: sub}, nil)

		sender := new(MockPushSender)
		sender.On("Send", mock.Anything, sub, mock.MatchedBy(func(p push.Payload) bool {
			return p.Title == "Dana Cole has arrived" && p.Tag == string(TypeVisitorArrived)
		})).Return(nil)

		svc := NewService(NewMemoryStorage(), dir, WithPushSender(sender), WithLogger(testLogger()))
		n, err := svc.CreateNotification(ctx, CreateInput{
			UserID:   "u1",
			Type:     TypeVisitorArrived,
			Title:    "Visitor",
			Message:  "At the gate.",
			Channels: []Channel{ChannelPush},
			Metadata: map[string]any{"visitor_name": "Dana Cole"},
		})
		require.NoError(t, err)
		assert.True(t, n.DeliveryStatus[ChannelPush].Delivered)
		sender.AssertExpectations(t)
	})

	t.Run("unconfigured sender records error", func(t *testing.T) {
		t.Parallel()
		dir := new(MockDirectory)
		dir.On("FindUser", mock.Anything, "u1").
			Return(&Recipient{ID: "u1", Phone: "+15550001111"}, nil)

		svc := NewService(NewMemoryStorage(), dir, WithLogger(testLogger()))
		n, err := svc.CreateNotification(ctx, CreateInput{
			UserID:   "u1",
			Type:     TypeVisitorArrived,
			Title:    "Visitor",
			Message:  "At the gate.",
			Channels: []Channel{ChannelSMS},
		})
		require.NoError(t, err)
		assert.Equal(t, "sms sender not configured", n.DeliveryStatus[ChannelSMS].Error)
	})
}

func TestService_SendNotification_AttemptsOnce(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	dir := new(MockDirectory)
	dir.On("FindUser", mock.Anything, "u1").
		Return(&Recipient{ID: "u1", Email: "u@example.com"}, nil)

	sender := new(MockEmailSender)
	sender.On("SendEmail", mock.Anything, mock.Anything).Return(nil).Once()

	svc := NewService(NewMemoryStorage(), dir, WithEmailSender(sender), WithLogger(testLogger()))
	n, err := svc.CreateNotification(ctx, CreateInput{
		UserID:   "u1",
		Type:     TypeAnnouncement,
		Title:    "t",
		Message:  "m",
		Channels: []Channel{ChannelEmail},
	})
	require.NoError(t, err)
	require.True(t, n.DeliveryStatus[ChannelEmail].Sent)

	// A second dispatch must not retry the already-attempted channel.
	require.NoError(t, svc.SendNotification(ctx, n))
	sender.AssertExpectations(t)
}

func TestService_MarkAsRead(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	storage := NewMemoryStorage()
	svc := NewService(storage, nil, WithLogger(testLogger()))

	n, err := svc.CreateNotification(ctx, CreateInput{
		UserID:   "user-1",
		Type:     TypeAnnouncement,
		Title:    "t",
		Message:  "m",
		Channels: []Channel{ChannelInApp},
	})
	require.NoError(t, err)

	t.Run("different user is refused", func(t *testing.T) {
		ok, err := svc.MarkAsRead(ctx, n.ID, "user-2")
		require.NoError(t, err)
		assert.False(t, ok)

		stored, err := storage.Get(ctx, n.ID)
		require.NoError(t, err)
		assert.False(t, stored.Read)
	})

	t.Run("owner marks read", func(t *testing.T) {
		ok, err := svc.MarkAsRead(ctx, n.ID, "user-1")
		require.NoError(t, err)
		assert.True(t, ok)

		stored, err := storage.Get(ctx, n.ID)
		require.NoError(t, err)
		assert.True(t, stored.Read)
		assert.NotNil(t, stored.ReadAt)

		count, err := svc.CountUnread(ctx, Target{UserID: "user-1"})
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("idempotent for the owner", func(t *testing.T) {
		ok, err := svc.MarkAsRead(ctx, n.ID, "user-1")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("missing notification returns false", func(t *testing.T) {
		ok, err := svc.MarkAsRead(ctx, "missing", "user-1")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestService_List(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := NewService(NewMemoryStorage(), nil, WithLogger(testLogger()))

	for i := 0; i < 3; i++ {
		_, err := svc.CreateNotification(ctx, CreateInput{
			TenantID: "t1",
			Type:     TypeAnnouncement,
			Title:    "t",
			Message:  "m",
			Channels: []Channel{ChannelInApp},
		})
		require.NoError(t, err)
	}

	list, err := svc.List(ctx, Target{TenantID: "t1"}, ListOptions{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestService_GetPreferences(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("tenant preferences win outright", func(t *testing.T) {
		t.Parallel()
		prefs := DefaultPreferences()
		prefs.EmailEnabled = false

		dir := new(MockDirectory)
		dir.On("FindTenant", mock.Anything, "t1").
			Return(&Recipient{ID: "t1", Preferences: &prefs}, nil)

		svc := NewService(NewMemoryStorage(), dir, WithLogger(testLogger()))
		got := svc.GetPreferences(ctx, "", "t1")
		assert.False(t, got.EmailEnabled)
	})

	t.Run("defaults when the record has none", func(t *testing.T) {
		t.Parallel()
		dir := new(MockDirectory)
		dir.On("FindUser", mock.Anything, "u1").Return(&Recipient{ID: "u1"}, nil)

		svc := NewService(NewMemoryStorage(), dir, WithLogger(testLogger()))
		got := svc.GetPreferences(ctx, "u1", "")
		assert.Equal(t, DefaultPreferences(), got)
	})

	t.Run("defaults without a directory", func(t *testing.T) {
		t.Parallel()
		svc := NewService(NewMemoryStorage(), nil, WithLogger(testLogger()))
		assert.Equal(t, DefaultPreferences(), svc.GetPreferences(ctx, "u1", ""))
	})
}
