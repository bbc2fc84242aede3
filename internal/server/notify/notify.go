// Package notify delivers password reset tokens to account owners.
package notify

import (
	"context"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/logging"
)

// LogNotifier is a development stand-in for an email sender: it delivers
// reset tokens through the log. Not for production use.
type LogNotifier struct {
	logger logging.Logger
}

// NewLogNotifier constructs a LogNotifier writing to logger.
func NewLogNotifier(logger logging.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// SendPasswordReset logs the reset token together with the target email.
func (n *LogNotifier) SendPasswordReset(ctx context.Context, email, token string, validity time.Duration) error {
	n.logger.Info(ctx, "password reset token issued",
		"email", email,
		"token", token,
		"expires_in", validity.String(),
	)
	return nil
}
