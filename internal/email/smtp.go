package email

import (
	"context"
	"crypto/tls"
	"time"

	"gopkg.in/mail.v2"

	"github.com/sebasr/ticket-notifier/internal/config"
)

// SMTPService implements the Service interface by handing each message to an
// authenticated SMTP relay over a STARTTLS session.
type SMTPService struct {
	cfg config.SMTPConfig
}

// NewSMTPService creates a new SMTP email service.
// cfg is used as loaded by config.Load; an incomplete configuration is
// reported by Send rather than here.
func NewSMTPService(cfg config.SMTPConfig) *SMTPService {
	return &SMTPService{cfg: cfg}
}

// Send opens one relay session, submits msg and closes the session.
// There is exactly one attempt per call.
func (s *SMTPService) Send(ctx context.Context, msg *Message) error {
	if !s.cfg.IsComplete() {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return NewDeliveryError(err)
	}

	if err := s.dialer(ctx).DialAndSend(buildMessage(msg)); err != nil {
		return NewDeliveryError(err)
	}
	return nil
}

func (s *SMTPService) dialer(ctx context.Context) *mail.Dialer {
	d := mail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	d.StartTLSPolicy = mail.MandatoryStartTLS
	d.RetryFailure = false
	d.TLSConfig = &tls.Config{
		ServerName:         s.cfg.Host,
		InsecureSkipVerify: s.cfg.InsecureSkipVerify, // #nosec G402 - opt-in for self-signed relays
		MinVersion:         tls.VersionTLS12,
	}

	timeout := s.cfg.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); timeout <= 0 || remaining < timeout {
			timeout = remaining
		}
	}
	if timeout > 0 {
		d.Timeout = timeout
	}
	return d
}

// buildMessage produces a multipart/alternative message with the plain text
// part first and the HTML part last, as mail clients prefer the last part.
func buildMessage(msg *Message) *mail.Message {
	m := mail.NewMessage()
	if msg.FromName != "" {
		m.SetAddressHeader("From", msg.From, msg.FromName)
	} else {
		m.SetHeader("From", msg.From)
	}
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetDateHeader("Date", time.Now())

	if msg.TextBody != "" {
		m.SetBody("text/plain", msg.TextBody)
		m.AddAlternative("text/html", msg.HTMLBody)
	} else {
		m.SetBody("text/html", msg.HTMLBody)
	}
	return m
}
