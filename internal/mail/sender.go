// Package mail delivers queued email through SMTP.
package mail

import (
	"fmt"
	"net/smtp"
	"strings"

	"jobportal/internal/config"
	"jobportal/internal/models"
)

// Sender delivers a single message.
type Sender interface {
	Send(msg *models.EmailMessage) error
}

type smtpSender struct {
	addr string
	from string
	auth smtp.Auth
}

// NewSMTPSender creates a Sender over a plain SMTP relay.
func NewSMTPSender(cfg config.SMTPConfig) Sender {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &smtpSender{
		addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		from: cfg.From,
		auth: auth,
	}
}

func (s *smtpSender) Send(msg *models.EmailMessage) error {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", s.from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.Recipient)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)

	if err := smtp.SendMail(s.addr, s.auth, s.from, []string{msg.Recipient}, []byte(b.String())); err != nil {
		return fmt.Errorf("smtp send to %s: %w", msg.Recipient, err)
	}
	return nil
}
