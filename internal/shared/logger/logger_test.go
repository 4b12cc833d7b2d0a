package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNew(t *testing.T) {
	for _, dev := range []bool{true, false} {
		l := New(dev)
		if l.GetLevel() == zerolog.Disabled {
			t.Errorf("New(%v) returned a disabled logger", dev)
		}
	}
}

func TestNewWithWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewWithWriter(buf)

	l.Info().Str("user_id", "u1").Msg("test message")

	out := buf.String()
	if !strings.Contains(out, "test message") {
		t.Errorf("expected output to contain message, got %q", out)
	}
	if !strings.Contains(out, `"user_id":"u1"`) {
		t.Errorf("expected output to contain user_id field, got %q", out)
	}
}

func TestFromContext(t *testing.T) {
	buf := &bytes.Buffer{}
	ctx := WithContext(context.Background(), NewWithWriter(buf))

	l := FromContext(ctx)
	l.Info().Msg("from context")

	if buf.Len() == 0 {
		t.Error("expected output from the context logger")
	}
}

func TestFromContext_Default(t *testing.T) {
	l := FromContext(context.Background())
	if l.GetLevel() == zerolog.Disabled {
		t.Error("expected default logger to be enabled")
	}
}
