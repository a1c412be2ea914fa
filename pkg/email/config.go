package email

// Config holds email channel configuration.
// Exactly one transport is expected to be configured: SMTP (host set) or
// Postmark (tokens set). When neither is configured the channel degrades to
// a no-op sender, see New.
type Config struct {
	SMTPHost          string `env:"SMTP_HOST"`
	SMTPPort          int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser          string `env:"SMTP_USER"`
	SMTPPass          string `env:"SMTP_PASS"`
	SMTPSkipTLSVerify bool   `env:"SMTP_SKIP_TLS_VERIFY" envDefault:"false"` // Development only.

	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`

	SenderEmail  string `env:"SENDER_EMAIL,required"`
	SenderName   string `env:"SENDER_NAME" envDefault:"Building Management"`
	SupportEmail string `env:"SUPPORT_EMAIL,required"`
}
