// Package httpjson holds the JSON request/response conventions shared by all
// API handlers. Error bodies are always {"message": "..."} with no
// machine-readable code; unanticipated failures are logged and answered with
// a generic 500 so internals never leak to clients.
package httpjson

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/GodishalaAshwith/taskhub/internal/app/system/limits"
	"go.uber.org/zap"
)

// Message is the body shape for status-only responses.
type Message struct {
	Message string `json:"message"`
}

// Respond writes v as JSON with the given status. Encode failures are logged
// by the caller's recovery path; at this point headers are already sent.
func Respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes {"message": msg} with the given status.
func Error(w http.ResponseWriter, status int, msg string) {
	Respond(w, status, Message{Message: msg})
}

// ServerError logs err and answers with a generic 500. The logged operation
// string identifies the failing handler step.
func ServerError(w http.ResponseWriter, log *zap.Logger, operation string, err error) {
	if log != nil {
		log.Error(operation, zap.Error(err))
	}
	Error(w, http.StatusInternalServerError, "Something went wrong")
}

// ErrBodyTooLarge is returned by Decode when the request body exceeds the
// read limit.
var ErrBodyTooLarge = errors.New("request body too large")

// Decode reads a JSON request body into dst, rejecting unknown garbage
// gracefully. Returns an error suitable for a 400 response.
func Decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxJSONBodySize)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return ErrBodyTooLarge
		}
		return err
	}
	return nil
}
