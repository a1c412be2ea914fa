package notification

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dwellos/bms/pkg/email"
	"github.com/dwellos/bms/pkg/push"
)

// MockDirectory is a mock implementation of Directory.
type MockDirectory struct {
	mock.Mock
}

func (m *MockDirectory) FindTenant(ctx context.Context, id string) (*Recipient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Recipient), args.Error(1)
}

func (m *MockDirectory) FindUser(ctx context.Context, id string) (*Recipient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Recipient), args.Error(1)
}

// MockEmailSender is a mock implementation of email.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendEmail(ctx context.Context, params email.SendEmailParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

// MockSMSSender is a mock implementation of sms.Sender.
type MockSMSSender struct {
	mock.Mock
}

func (m *MockSMSSender) Send(ctx context.Context, to, body string) error {
	args := m.Called(ctx, to, body)
	return args.Error(0)
}

// MockPushSender is a mock implementation of push.Sender.
type MockPushSender struct {
	mock.Mock
}

func (m *MockPushSender) Send(ctx context.Context, subscription string, payload push.Payload) error {
	args := m.Called(ctx, subscription, payload)
	return args.Error(0)
}
