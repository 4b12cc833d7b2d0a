package messages

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

//go:embed defaults.json
var defaultMessages []byte

// MessageText is a notification template. Placeholders are written as
// {name} and filled by Render.
type MessageText struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Render substitutes vars into the title and body.
func (m MessageText) Render(vars map[string]string) (title, body string) {
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	r := strings.NewReplacer(pairs...)
	return r.Replace(m.Title), r.Replace(m.Body)
}

type Messages struct {
	SubscriptionDueSoon  MessageText `json:"subscription_due_soon"`
	SubscriptionDueToday MessageText `json:"subscription_due_today"`
}

// Load reads the notification templates from path. An empty path returns
// the built-in English templates. Templates missing from the file keep
// their built-in text.
func Load(path string) (*Messages, error) {
	var m Messages
	if err := json.Unmarshal(defaultMessages, &m); err != nil {
		return nil, fmt.Errorf("failed to parse default messages: %w", err)
	}
	if path == "" {
		return &m, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read messages file: %w", err)
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse messages file: %w", err)
	}
	return &m, nil
}
