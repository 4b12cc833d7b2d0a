package middleware

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"moneytracker/internal/shared/logger"
)

const rateLimitMessage = "Too many requests from this IP, please try again later."

// Limiter decides whether another request for key fits the current window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit rejects clients that exceed the limiter's budget with 429. Limiter
// errors are logged and the request is let through.
func RateLimit(limiter Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, err := limiter.Allow(r.Context(), clientIP(r))
			if err != nil {
				log := logger.FromContext(r.Context())
				log.Warn().Err(err).Msg("rate limiter unavailable")
				next.ServeHTTP(w, r)
				return
			}
			if !ok {
				writeBody(w, http.StatusTooManyRequests, errorBody{Message: rateLimitMessage})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// MemoryLimiter is a per process fixed window limiter used when no Redis is
// configured.
type MemoryLimiter struct {
	mu           sync.Mutex
	clients      map[string]*window
	stopCleanup  chan struct{}
	shutdownOnce sync.Once

	requests int
	period   time.Duration
	now      func() time.Time
}

type window struct {
	start    time.Time
	requests int
}

func NewMemoryLimiter(requests int, period time.Duration) *MemoryLimiter {
	l := &MemoryLimiter{
		clients:     make(map[string]*window),
		stopCleanup: make(chan struct{}),
		requests:    requests,
		period:      period,
		now:         time.Now,
	}
	go l.startCleanup()
	return l
}

func (l *MemoryLimiter) Allow(ctx context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.clients[key]
	if !ok || now.Sub(w.start) >= l.period {
		l.clients[key] = &window{start: now, requests: 1}
		return true, nil
	}

	w.requests++
	return w.requests <= l.requests, nil
}

func (l *MemoryLimiter) startCleanup() {
	ticker := time.NewTicker(l.period)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.cleanupExpired()
		case <-l.stopCleanup:
			return
		}
	}
}

func (l *MemoryLimiter) cleanupExpired() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for key, w := range l.clients {
		if now.Sub(w.start) >= l.period {
			delete(l.clients, key)
		}
	}
}

// Stop ends the cleanup goroutine.
func (l *MemoryLimiter) Stop() {
	l.shutdownOnce.Do(func() {
		close(l.stopCleanup)
	})
}
