package notify

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tutorlink/tutorlink-api/internal/core/ports"
)

// ErrNoRecipient is returned when Send is called with a blank address.
var ErrNoRecipient = errors.New("notify: recipient is required")

// LogNotifier delivers messages by writing them to the structured log. It is
// the mailer used until an SMTP relay is configured.
type LogNotifier struct {
	from string
	log  zerolog.Logger
}

func NewLogNotifier(from string, log zerolog.Logger) *LogNotifier {
	return &LogNotifier{from: from, log: log.With().Str("component", "notifier").Logger()}
}

var _ ports.Notifier = (*LogNotifier)(nil)

func (n *LogNotifier) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(to) == "" {
		return ErrNoRecipient
	}
	n.log.Info().
		Str("from", n.from).
		Str("to", to).
		Str("subject", subject).
		Str("body", body).
		Msg("mail sent")
	return nil
}
