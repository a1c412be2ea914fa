package email

import (
	"context"
	"log/slog"

	"github.com/dwellos/bms/pkg/environment"
	"github.com/dwellos/bms/pkg/logger"
)

// disabledSender is used when no email transport is configured.
// In production it returns ErrNotConfigured so the per-channel delivery
// status records the misconfiguration; everywhere else it simulates a
// successful send and logs what it would have sent, so the rest of the
// system can run without live credentials.
type disabledSender struct {
	env environment.Environment
	log *slog.Logger
}

// NewDisabledSender creates the no-op sender for unconfigured deployments.
func NewDisabledSender(env environment.Environment, log *slog.Logger) EmailSender {
	if log == nil {
		log = slog.Default()
	}
	return &disabledSender{env: env, log: log}
}

func (d *disabledSender) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}
	if d.env.IsProduction() {
		return ErrNotConfigured
	}

	d.log.InfoContext(ctx, "email sending is not configured, simulating success",
		logger.Component("email"),
		slog.String("send_to", params.SendTo),
		slog.String("subject", params.Subject),
	)
	return nil
}
