package common

import (
	"context"
)

type Observer interface {
	Update(ctx context.Context, event AuditEvent) error
	Name() string
}

type Subject interface {
	Subscribe(observer Observer)
	Unsubscribe(observer Observer)
	Notify(ctx context.Context, event AuditEvent)
}

// EmailService delivers OTP codes and account notices.
type EmailService interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

type EmailData struct {
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Body    string   `json:"body"`
}
