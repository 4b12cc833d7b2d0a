package messages

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	m, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if m.SubscriptionDueSoon.Title == "" || m.SubscriptionDueToday.Body == "" {
		t.Errorf("defaults missing: %+v", m)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.json")
	content := `{"subscription_due_today": {"title": "{name} vence hoje", "body": "Cobrança de {amount}."}}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if m.SubscriptionDueToday.Title != "{name} vence hoje" {
		t.Errorf("override not applied: %+v", m.SubscriptionDueToday)
	}
	if m.SubscriptionDueSoon.Title == "" {
		t.Error("templates absent from the file must keep their defaults")
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	os.WriteFile(path, []byte("{"), 0o600)
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestMessageText_Render(t *testing.T) {
	m := MessageText{Title: "{name} renews in {days} days", Body: "{amount} on {date}"}

	title, body := m.Render(map[string]string{"name": "Netflix", "days": "3", "amount": "15.99", "date": "2024-02-01"})

	if title != "Netflix renews in 3 days" {
		t.Errorf("title = %q", title)
	}
	if body != "15.99 on 2024-02-01" {
		t.Errorf("body = %q", body)
	}
}
