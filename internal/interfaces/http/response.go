package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"moneytracker/internal/domain/budget"
	"moneytracker/internal/domain/savings"
	"moneytracker/internal/domain/subscription"
	"moneytracker/internal/domain/transaction"
	"moneytracker/internal/domain/user"
	"moneytracker/internal/shared/auth"
	"moneytracker/internal/shared/logger"
	"moneytracker/internal/shared/validation"
)

// envelope is the shape of every API response body.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Details string `json:"details,omitempty"`
}

type deletedResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeData(w http.ResponseWriter, status int, data any, message string) {
	writeJSON(w, status, envelope{Success: true, Data: data, Message: message})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Error: msg})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
}

// NotFound answers requests that matched no route.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, envelope{Message: "Route " + r.URL.RequestURI() + " not found"})
}

var notFoundMessages = []struct {
	err error
	msg string
}{
	{transaction.ErrNotFound, "Transaction not found"},
	{budget.ErrNotFound, "Budget not found"},
	{savings.ErrNotFound, "Savings goal not found"},
	{subscription.ErrNotFound, "Subscription not found"},
	{user.ErrNotFound, "User not found"},
}

// errorResponder maps service errors onto the API's status codes. Internal
// error text reaches the client only when showDetails is set.
type errorResponder struct {
	showDetails bool
}

// respond writes the error response for err. message is the generic client
// text used for unexpected failures of op.
func (e errorResponder) respond(w http.ResponseWriter, r *http.Request, err error, op, resourceID, message string) {
	if validation.Is(err) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	for _, nf := range notFoundMessages {
		if errors.Is(err, nf.err) {
			writeError(w, http.StatusNotFound, nf.msg)
			return
		}
	}

	log := logger.FromContext(r.Context())
	event := log.Error().Err(err).Str("operation", op)
	if resourceID != "" {
		event = event.Str("resource_id", resourceID)
	}
	event.Msg("request failed")

	body := envelope{Error: message}
	if e.showDetails {
		body.Details = err.Error()
	}
	writeJSON(w, http.StatusInternalServerError, body)
}

// decodeJSON reads the request body into dst. It reports false after writing
// a 400 when the body cannot be used.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if validation.Is(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return false
		}
		log := logger.FromContext(r.Context())
		log.Debug().Err(err).Str("path", r.URL.Path).Msg("invalid request body")
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// principal returns the authenticated caller, answering 401 when the auth
// middleware did not attach one.
func principal(w http.ResponseWriter, r *http.Request) (auth.Principal, bool) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return auth.Principal{}, false
	}
	return p, true
}
