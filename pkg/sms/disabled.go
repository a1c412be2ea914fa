package sms

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dwellos/bms/pkg/environment"
	"github.com/dwellos/bms/pkg/logger"
)

// disabledSender is used when no SMS provider is configured.
// In production it returns ErrNotConfigured; everywhere else it simulates a
// successful send and logs what it would have sent.
type disabledSender struct {
	env environment.Environment
	log *slog.Logger
}

// NewDisabledSender creates the no-op sender for unconfigured deployments.
func NewDisabledSender(env environment.Environment, log *slog.Logger) Sender {
	if log == nil {
		log = slog.Default()
	}
	return &disabledSender{env: env, log: log}
}

func (d *disabledSender) Send(ctx context.Context, to, body string) error {
	if to == "" {
		return fmt.Errorf("%w: recipient phone number is required", ErrInvalidParams)
	}
	if d.env.IsProduction() {
		return ErrNotConfigured
	}

	d.log.InfoContext(ctx, "sms sending is not configured, simulating success",
		logger.Component("sms"),
		slog.String("to", to),
		slog.Int("body_len", len(body)),
	)
	return nil
}
