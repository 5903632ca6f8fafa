// Package api holds the small response-writing helpers shared by every
// feature package. All success payloads carry `"success": true` and all
// failures go through the apperror envelope, so clients see one shape.
package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/user/blogapi-go/apperror"
)

// WriteJSON serializes data and writes it with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already sent; all we can do is log.
		log.Printf("failed to encode response: %v", err)
	}
}

// WriteError converts any error into the standardized failure envelope.
// Errors that are not *AppError are treated as internal and surfaced
// generically so collaborator details never leak to clients.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperror.FromError(err)
	if !ok {
		appErr = apperror.NewInternalError("An unexpected error occurred", err)
	}
	if appErr.StatusCode() >= http.StatusInternalServerError {
		log.Printf("%s %s: %v", r.Method, r.URL.Path, appErr.Unwrap())
	}
	WriteJSON(w, appErr.StatusCode(), appErr.ToResponse())
}
