package http

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"moneytracker/internal/shared/logger"
)

// Check probes one dependency. A nil error means healthy.
type Check func(ctx context.Context) error

type HealthHandler struct {
	version string
	checks  map[string]Check
	timeout time.Duration
	now     func() time.Time
}

func NewHealthHandler(version string, checks map[string]Check) *HealthHandler {
	return &HealthHandler{
		version: version,
		checks:  checks,
		timeout: 3 * time.Second,
		now:     time.Now,
	}
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// HandleHealth runs every dependency check concurrently and answers 503 if
// any of them fails.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		methodNotAllowed(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var mu sync.Mutex
	results := make(map[string]string, len(h.checks))
	healthy := true

	g, gctx := errgroup.WithContext(ctx)
	for name, check := range h.checks {
		g.Go(func() error {
			err := check(gctx)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				healthy = false
				results[name] = "error"
				log := logger.FromContext(r.Context())
				log.Warn().Err(err).Str("check", name).Msg("health check failed")
				return nil
			}
			results[name] = "ok"
			return nil
		})
	}
	g.Wait()

	resp := HealthResponse{
		Status:    "OK",
		Timestamp: h.now().UTC(),
		Version:   h.version,
		Checks:    results,
	}
	status := http.StatusOK
	if !healthy {
		resp.Status = "DEGRADED"
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}
