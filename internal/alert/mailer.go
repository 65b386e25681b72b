package alert

import (
	"context"
	"fmt"
	"net/smtp"
	"time"

	"go.uber.org/zap"

	"shiftwatch/internal/config"
)

const maxSendRetries = 3

// Mailer sends plain-text alerts over SMTP.
type Mailer struct {
	cfg      config.SMTPConfig
	password string
	log      *zap.Logger
}

// NewMailer builds an SMTP notifier. The password comes from the environment
// rather than the config file.
func NewMailer(cfg config.SMTPConfig, password string, log *zap.Logger) *Mailer {
	return &Mailer{cfg: cfg, password: password, log: log}
}

// Send delivers the alert, retrying transient failures a few times. When SMTP
// is not configured the alert is logged and dropped rather than failing the
// run.
func (m *Mailer) Send(ctx context.Context, subject, body string) error {
	if m.cfg.Host == "" {
		m.log.Warn("smtp not configured, skipping notification", zap.String("subject", subject))
		return nil
	}

	headers := fmt.Sprintf("From: %s <%s>\r\n", m.cfg.FromName, m.cfg.From)
	headers += fmt.Sprintf("To: %s\r\n", m.cfg.To)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/plain; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + body)
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.password, m.cfg.Host)
	}

	var lastErr error
	for attempt := 1; attempt <= maxSendRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := smtp.SendMail(addr, auth, m.cfg.From, []string{m.cfg.To}, message)
		if err == nil {
			m.log.Info("notification sent",
				zap.String("to", m.cfg.To),
				zap.String("subject", subject),
				zap.Int("attempt", attempt))
			return nil
		}
		lastErr = err
		m.log.Warn("notification send failed",
			zap.Int("attempt", attempt),
			zap.Error(err))
		time.Sleep(time.Duration(attempt) * time.Second)
	}
	return fmt.Errorf("sending notification after %d attempts: %w", maxSendRetries, lastErr)
}
