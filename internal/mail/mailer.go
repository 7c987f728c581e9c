package mail

import (
	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"
)

// Mailer sends plaintext notifications. Delivery is best-effort; callers
// are expected to log and swallow errors.
type Mailer interface {
	Send(to, subject, body string) error
}

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer creates a Mailer backed by an SMTP server
func NewSMTPMailer(host string, port int, username, password, from string) Mailer {
	return &smtpMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (m *smtpMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	return m.dialer.DialAndSend(msg)
}

type noopMailer struct {
	logger *zap.Logger
}

// NewNoopMailer returns a Mailer that only logs. Used when SMTP is not
// configured so booking creation keeps working in development.
func NewNoopMailer(logger *zap.Logger) Mailer {
	return &noopMailer{logger: logger}
}

func (m *noopMailer) Send(to, subject, body string) error {
	m.logger.Info("Mail delivery skipped (SMTP not configured)",
		zap.String("to", to),
		zap.String("subject", subject),
	)
	return nil
}
