package notify

import (
	"context"
	"log/slog"
)

// Log is the fallback sink for installs without a delivery channel. The body
// is not logged; it carries the transient credential.
type Log struct{}

func (Log) Send(ctx context.Context, address, subject, body string) error {
	slog.Info("Notification (no delivery channel configured)",
		"address", address,
		"subject", subject)
	return nil
}
