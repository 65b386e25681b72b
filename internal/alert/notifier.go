package alert

import (
	"context"
	"fmt"
)

// Notifier delivers an assembled alert.
type Notifier interface {
	Send(ctx context.Context, subject, body string) error
}

// Console prints alerts to stdout instead of delivering them; used by
// --dry-run.
type Console struct{}

func (Console) Send(_ context.Context, subject, body string) error {
	fmt.Printf("Subject: %s\n\n%s\n", subject, body)
	return nil
}
