package notify

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/logging"
)

type captureLogger struct {
	msgs []string
	args [][]any
}

func (c *captureLogger) Debug(ctx context.Context, msg string, args ...any) { c.record(msg, args) }
func (c *captureLogger) Info(ctx context.Context, msg string, args ...any)  { c.record(msg, args) }
func (c *captureLogger) Warn(ctx context.Context, msg string, args ...any)  { c.record(msg, args) }
func (c *captureLogger) Error(ctx context.Context, msg string, args ...any) { c.record(msg, args) }
func (c *captureLogger) With(args ...any) logging.Logger                    { return c }

func (c *captureLogger) record(msg string, args []any) {
	c.msgs = append(c.msgs, msg)
	c.args = append(c.args, args)
}

func (c *captureLogger) attrs(i int) map[string]any {
	m := map[string]any{}
	for j := 0; j+1 < len(c.args[i]); j += 2 {
		if key, ok := c.args[i][j].(string); ok {
			m[key] = c.args[i][j+1]
		}
	}
	return m
}

func TestLogNotifier_SendPasswordReset(t *testing.T) {
	log := &captureLogger{}
	n := NewLogNotifier(log)

	err := n.SendPasswordReset(context.Background(), "user@example.com", "tok123", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(log.msgs) != 1 {
		t.Fatalf("expected 1 log record, got %d", len(log.msgs))
	}
	if log.msgs[0] != "password reset token issued" {
		t.Fatalf("unexpected message: %q", log.msgs[0])
	}

	attrs := log.attrs(0)
	if attrs["email"] != "user@example.com" {
		t.Errorf("email attr: %v", attrs["email"])
	}
	if attrs["token"] != "tok123" {
		t.Errorf("token attr: %v", attrs["token"])
	}
	if attrs["expires_in"] != "1h0m0s" {
		t.Errorf("expires_in attr: %v", attrs["expires_in"])
	}
}
