package middleware

import (
	"errors"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"moneytracker/internal/shared/auth"
	"moneytracker/internal/shared/logger"
)

// Auth rejects requests the gate cannot authenticate and attaches the
// Principal to the request context for the handlers behind it.
func Auth(gate *auth.Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := gate.Authenticate(r.Context(), r.Header.Get("Authorization"))
			if err != nil {
				writeAuthFailure(w, r, gate, err)
				return
			}

			trace.SpanFromContext(r.Context()).SetAttributes(attribute.String("enduser.id", principal.ID))

			log := logger.FromContext(r.Context()).With().Str("user_id", principal.ID).Logger()
			ctx := logger.WithContext(auth.WithPrincipal(r.Context(), principal), log)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeAuthFailure(w http.ResponseWriter, r *http.Request, gate *auth.Gate, err error) {
	kind := auth.TokenInvalidOther
	var failure *auth.Failure
	if errors.As(err, &failure) {
		kind = failure.Kind
	}

	log := logger.FromContext(r.Context())
	log.Warn().Err(err).Str("kind", string(kind)).Str("path", r.URL.Path).Msg("authentication failed")

	body := errorBody{Error: kind.Message()}
	if gate.Development() && failure != nil && failure.Err != nil {
		body.Details = failure.Err.Error()
	}
	writeBody(w, kind.Status(), body)
}
