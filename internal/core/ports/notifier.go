package ports

import "context"

// Notifier delivers a message to a recipient. Failures are returned to the
// caller unchanged.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}
