package mailer

import (
	"context"
	"log/slog"
)

// Mailer dispatches out-of-band notifications. Callers treat delivery as
// fire-and-forget: a failed send is logged, never surfaced to the end user.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// LogMailer is used when no mail provider is configured. It logs the message
// so the reset link is still reachable from the server console, matching how
// the system behaves in local development.
type LogMailer struct {
	Logger *slog.Logger
}

func (m *LogMailer) Send(_ context.Context, to, subject, htmlBody string) error {
	m.Logger.Info("mail not configured, logging message instead",
		"to", to,
		"subject", subject,
		"body", htmlBody,
	)
	return nil
}
