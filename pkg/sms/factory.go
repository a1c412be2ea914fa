package sms

import (
	"log/slog"

	"github.com/dwellos/bms/pkg/environment"
)

// New selects an SMS sender from the config: the REST client when a provider
// endpoint is configured, otherwise the disabled sender.
func New(cfg Config, env environment.Environment, log *slog.Logger) (Sender, error) {
	if cfg.BaseURL == "" {
		return NewDisabledSender(env, log), nil
	}
	return NewClient(cfg)
}
