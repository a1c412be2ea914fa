package push

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dwellos/bms/pkg/environment"
	"github.com/dwellos/bms/pkg/logger"
)

// disabledSender is used when no VAPID keys are configured.
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

func (d *disabledSender) Send(ctx context.Context, subscriptionJSON string, payload Payload) error {
	if subscriptionJSON == "" {
		return fmt.Errorf("%w: empty subscription", ErrInvalidSubscription)
	}
	if d.env.IsProduction() {
		return ErrNotConfigured
	}

	d.log.InfoContext(ctx, "push sending is not configured, simulating success",
		logger.Component("push"),
		slog.String("title", payload.Title),
	)
	return nil
}
