// internal/app/system/mailer/mailer.go
package mailer

import (
	"fmt"
	"net/smtp"

	"go.uber.org/zap"
)

// Config holds SMTP configuration.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string // from address, e.g. noreply@taskhub.app
	FromName string // from display name
}

// Email is a single outbound message.
type Email struct {
	To       string
	Subject  string
	HTMLBody string
}

// Mailer sends emails over SMTP. Sends are best-effort: callers log failures
// and never surface them to API clients.
type Mailer struct {
	cfg Config
	log *zap.Logger
}

func New(cfg Config, logger *zap.Logger) *Mailer {
	return &Mailer{cfg: cfg, log: logger}
}

// Send delivers one message. No timeout beyond what net/smtp provides.
func (m *Mailer) Send(e Email) error {
	from := m.cfg.From
	if m.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", m.cfg.FromName, m.cfg.From)
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		from, e.To, e.Subject, e.HTMLBody)

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	var auth smtp.Auth
	if m.cfg.User != "" && m.cfg.Password != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{e.To}, []byte(msg)); err != nil {
		m.log.Error("failed to send email",
			zap.String("to", e.To),
			zap.String("subject", e.Subject),
			zap.Error(err),
		)
		return fmt.Errorf("send email: %w", err)
	}

	m.log.Info("email sent", zap.String("to", e.To), zap.String("subject", e.Subject))
	return nil
}
