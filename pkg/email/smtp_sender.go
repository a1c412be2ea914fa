package email

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"

	mail "github.com/go-mail/mail/v2"
)

type smtpSender struct {
	dialer *mail.Dialer
	config Config
}

// NewSMTPSender creates an SMTP-backed email sender using STARTTLS.
// The dialer enforces MandatoryStartTLS, which is what the usual
// transactional providers (port 587) expect.
func NewSMTPSender(cfg Config) (EmailSender, error) {
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("%w: SMTPHost is required", ErrInvalidConfig)
	}
	if cfg.SMTPPort <= 0 {
		return nil, fmt.Errorf("%w: SMTPPort must be positive", ErrInvalidConfig)
	}
	if cfg.SenderEmail == "" {
		return nil, fmt.Errorf("%w: SenderEmail is required", ErrInvalidConfig)
	}
	if !emailRegex.MatchString(cfg.SenderEmail) {
		return nil, fmt.Errorf("%w: SenderEmail must be a valid email address", ErrInvalidConfig)
	}

	d := mail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	d.StartTLSPolicy = mail.MandatoryStartTLS
	d.TLSConfig = &tls.Config{
		ServerName:         cfg.SMTPHost,
		InsecureSkipVerify: cfg.SMTPSkipTLSVerify,
	}

	return &smtpSender{dialer: d, config: cfg}, nil
}

// SendEmail implements EmailSender over SMTP. Each call dials a fresh
// connection; dispatch volume is low enough that connection reuse is not
// worth the bookkeeping.
func (s *smtpSender) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	m := mail.NewMessage()
	m.SetAddressHeader("From", s.config.SenderEmail, s.config.SenderName)
	m.SetHeader("To", params.SendTo)
	if s.config.SupportEmail != "" {
		m.SetHeader("Reply-To", s.config.SupportEmail)
	}
	m.SetHeader("Subject", params.Subject)
	m.SetBody("text/html", params.BodyHTML)

	// mail/v2 has no context-aware dial; rely on the dialer's own timeout
	// and surface cancellation that happened before the send.
	if err := ctx.Err(); err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}
	return nil
}
