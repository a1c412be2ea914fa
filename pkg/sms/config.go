package sms

import "time"

// Transport selects which upstream API the client talks to.
type Transport string

const (
	// TransportSMS sends plain SMS through the provider's form API.
	TransportSMS Transport = "sms"
	// TransportWhatsApp sends through the provider's WhatsApp gateway.
	TransportWhatsApp Transport = "whatsapp"
)

// Config holds SMS channel configuration. The provider API is pluggable via
// BaseURL; authentication is either an API key header or a userid/password
// pair in the form body, matching the common SMS portal conventions.
type Config struct {
	BaseURL   string    `env:"SMS_API_BASE_URL"`               // Provider endpoint; empty disables the channel.
	Transport Transport `env:"SMS_TRANSPORT" envDefault:"sms"` // "sms" or "whatsapp".

	APIKey   string `env:"SMS_API_KEY"`
	UserID   string `env:"SMS_API_USER"`
	Password string `env:"SMS_API_PASS"`
	SenderID string `env:"SMS_SENDER_ID"`

	WhatsAppToken  string `env:"SMS_WHATSAPP_TOKEN"`
	WhatsAppSender string `env:"SMS_WHATSAPP_SENDER"`

	HTTPTimeout time.Duration `env:"SMS_HTTP_TIMEOUT" envDefault:"10s"`
}
