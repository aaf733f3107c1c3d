package mail

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/newsroom/publishing-api/internal/core/ports"
)

// LogMailer writes mail to the log instead of sending it. It stands in for
// SMTP in development when no relay is configured.
type LogMailer struct {
	log zerolog.Logger
}

func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(_ context.Context, msg ports.MailMessage) error {
	m.log.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Str("html", msg.HTML).
		Msg("mail not sent: no smtp relay configured")
	return nil
}
