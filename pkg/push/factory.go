package push

import (
	"log/slog"

	"github.com/dwellos/bms/pkg/environment"
)

// New selects a push sender from the config: the Web Push sender when a
// VAPID key pair is configured, otherwise the disabled sender.
func New(cfg Config, env environment.Environment, log *slog.Logger) (Sender, error) {
	if cfg.VAPIDPublicKey == "" && cfg.VAPIDPrivateKey == "" {
		return NewDisabledSender(env, log), nil
	}
	return NewSender(cfg)
}
