package firebase

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
)

// TopicForUser is the FCM topic a user's devices subscribe to.
func TopicForUser(userID string) string {
	return "user-" + userID
}

// Notifier sends push notifications through Firebase Cloud Messaging.
type Notifier struct {
	msgClient *messaging.Client
}

func NewNotifier(ctx context.Context, app *firebase.App) (*Notifier, error) {
	msgClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase messaging client: %w", err)
	}
	return &Notifier{msgClient: msgClient}, nil
}

// Notify sends a notification to every device subscribed to the user's topic.
func (n *Notifier) Notify(ctx context.Context, userID, title, body string, data map[string]string) error {
	msg := &messaging.Message{
		Topic: TopicForUser(userID),
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := n.msgClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send FCM message: %w", err)
	}
	return nil
}
