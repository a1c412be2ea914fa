package email

import (
	"log/slog"

	"github.com/dwellos/bms/pkg/environment"
)

// New selects an email sender from the config: Postmark when tokens are
// present, SMTP when a host is present, otherwise the disabled sender.
// Misconfiguration of a selected transport is still an error; only the
// complete absence of a transport degrades to the no-op.
func New(cfg Config, env environment.Environment, log *slog.Logger) (EmailSender, error) {
	switch {
	case cfg.PostmarkServerToken != "" || cfg.PostmarkAccountToken != "":
		return NewPostmarkClient(cfg)
	case cfg.SMTPHost != "":
		return NewSMTPSender(cfg)
	default:
		return NewDisabledSender(env, log), nil
	}
}
