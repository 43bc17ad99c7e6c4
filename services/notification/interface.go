package notification

import (
	"context"
	"errors"
)

// ErrChannelDisabled is returned by senders whose credentials were not configured.
var ErrChannelDisabled = errors.New("notification channel not configured")

// EmailSender delivers one email.
type EmailSender interface {
	SendEmail(ctx context.Context, msg Email) error
}

// WhatsAppSender delivers one WhatsApp message and returns the provider message id.
type WhatsAppSender interface {
	SendWhatsApp(ctx context.Context, to, body string) (string, error)
}

// PushSender publishes a push notification to an FCM topic.
type PushSender interface {
	SendPush(ctx context.Context, topic, title, body string, data map[string]string) error
}

// Dispatcher hands a job off for delivery. Dispatch never fails the caller: errors are logged.
type Dispatcher interface {
	Dispatch(ctx context.Context, job Job)
}

// Email is a rendered message ready for SMTP.
type Email struct {
	To          string
	Subject     string
	HTML        string
	Text        string
	Attachments []Attachment
}

type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}
