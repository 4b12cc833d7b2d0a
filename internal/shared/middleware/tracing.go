package middleware

import (
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	httpMeter              = otel.Meter("moneytracker/http")
	httpRequestDuration, _ = httpMeter.Float64Histogram("moneytracker.http.request.duration",
		metric.WithDescription("API request duration in seconds by route"),
		metric.WithUnit("s"),
	)
	httpRequestTotal, _ = httpMeter.Int64Counter("moneytracker.http.request.total",
		metric.WithDescription("API requests by route and status"),
	)
)

// Tracing enriches the server span started by Telemetry with the route and
// status, and records per-route metrics. It must run inside
// Telemetry.
func Tracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		route := routeLabel(r.URL.Path)
		span := trace.SpanFromContext(r.Context())

		wrapped := wrapResponseWriter(w)
		next.ServeHTTP(wrapped, r)

		status := wrapped.Status()
		span.SetAttributes(
			attribute.String("http.route", route),
			attribute.Int("http.status_code", status),
		)
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}

		attrs := metric.WithAttributes(
			attribute.String("http.method", r.Method),
			attribute.String("http.route", route),
			attribute.Int("http.status_code", status),
		)
		httpRequestDuration.Record(r.Context(), time.Since(start).Seconds(), attrs)
		httpRequestTotal.Add(r.Context(), 1, attrs)
	})
}

// routeLabel collapses resource ids so metric cardinality stays bounded:
// /api/budgets/abc becomes /api/budgets/{id}.
func routeLabel(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) == 3 && parts[0] == "api" && parts[1] != "users" {
		return "/api/" + parts[1] + "/{id}"
	}
	if len(parts) > 3 {
		return "/" + strings.Join(parts[:2], "/") + "/..."
	}
	return path
}
