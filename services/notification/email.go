package notification

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/gomail.v2"
)

// SMTPConfig holds the outgoing mail server settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPEmailSender sends mail through gomail.
type SMTPEmailSender struct {
	cfg    SMTPConfig
	dialer *gomail.Dialer
}

// NewSMTPEmailSender returns a sender that fails with ErrChannelDisabled when no credentials are set.
func NewSMTPEmailSender(cfg SMTPConfig) *SMTPEmailSender {
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	s := &SMTPEmailSender{cfg: cfg}
	if cfg.Host != "" && cfg.Username != "" && cfg.Password != "" {
		s.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}
	return s
}

func (s *SMTPEmailSender) SendEmail(ctx context.Context, msg Email) error {
	if s.dialer == nil {
		return ErrChannelDisabled
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	if msg.Text != "" {
		m.SetBody("text/plain", msg.Text)
		m.AddAlternative("text/html", msg.HTML)
	} else {
		m.SetBody("text/html", msg.HTML)
	}

	for _, a := range msg.Attachments {
		data := a.Data
		m.Attach(a.Filename,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}),
			gomail.SetHeader(map[string][]string{"Content-Type": {a.ContentType}}),
		)
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send to %s: %w", msg.To, err)
	}
	return nil
}
