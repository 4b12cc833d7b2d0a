package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestMemoryLimiter_Window(t *testing.T) {
	l := NewMemoryLimiter(2, 15*time.Minute)
	defer l.Stop()

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for i, want := range []bool{true, true, false} {
		got, _ := l.Allow(ctx, "1.2.3.4")
		if got != want {
			t.Errorf("request %d: Allow() = %v, want %v", i+1, got, want)
		}
	}

	if ok, _ := l.Allow(ctx, "5.6.7.8"); !ok {
		t.Error("a different client must have its own budget")
	}

	now = now.Add(15 * time.Minute)
	if ok, _ := l.Allow(ctx, "1.2.3.4"); !ok {
		t.Error("a new window must reset the count")
	}
}

func TestMemoryLimiter_Cleanup(t *testing.T) {
	l := NewMemoryLimiter(1, time.Hour)
	defer l.Stop()

	now := time.Now()
	l.now = func() time.Time { return now }
	l.Allow(context.Background(), "a")

	now = now.Add(2 * time.Hour)
	l.cleanupExpired()

	if len(l.clients) != 0 {
		t.Errorf("expected expired client to be removed, have %d", len(l.clients))
	}
}

type stubLimiter struct {
	allow bool
	err   error
	keys  []string
}

func (s *stubLimiter) Allow(ctx context.Context, key string) (bool, error) {
	s.keys = append(s.keys, key)
	return s.allow, s.err
}

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name       string
		limiter    *stubLimiter
		wantStatus int
	}{
		{"allowed", &stubLimiter{allow: true}, http.StatusOK},
		{"limited", &stubLimiter{allow: false}, http.StatusTooManyRequests},
		{"limiter error fails open", &stubLimiter{err: errors.New("redis down")}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RateLimit(tt.limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/budgets", nil)
			req.RemoteAddr = "203.0.113.7:51234"
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
			if len(tt.limiter.keys) != 1 || tt.limiter.keys[0] != "203.0.113.7" {
				t.Errorf("limiter keys = %v, want [203.0.113.7]", tt.limiter.keys)
			}
			if tt.wantStatus == http.StatusTooManyRequests {
				var body errorBody
				if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
					t.Fatalf("decode body: %v", err)
				}
				if body.Success || body.Message != rateLimitMessage {
					t.Errorf("body = %+v", body)
				}
			}
		})
	}
}
