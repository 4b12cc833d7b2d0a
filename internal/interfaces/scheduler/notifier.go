package scheduler

import (
	"context"

	"github.com/rs/zerolog"
)

// Notifier delivers a push notification to every device of a user.
type Notifier interface {
	Notify(ctx context.Context, userID, title, body string, data map[string]string) error
}

// LogNotifier writes notifications to the log. It stands in for push
// delivery when Firebase is not configured.
type LogNotifier struct {
	Logger zerolog.Logger
}

func (n LogNotifier) Notify(ctx context.Context, userID, title, body string, data map[string]string) error {
	n.Logger.Info().
		Str("user_id", userID).
		Str("title", title).
		Str("body", body).
		Interface("data", data).
		Msg("notification")
	return nil
}
