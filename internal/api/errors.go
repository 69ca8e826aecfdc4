// internal/api/errors.go
//
// Gateway error taxonomy.
//
// Context
// -------
// The backend rejects requests with a JSON envelope whose shape varies by
// failure class: most carry {"message": "..."}, some nest it under
// {"error": {"message": "..."}}.  Error extracts whichever is present so
// the submission layer can show the server's wording, and falls back to a
// generic string otherwise.  Transport-level failures never have an
// envelope and always fall back.
//
// Notes
// -----
// • Every failure path surfaces exactly one user-visible message.
// • Oxford commas, two spaces after periods.

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// GenericUserMessage is shown when the backend gives us nothing usable.
const GenericUserMessage = "Something went wrong while submitting.  Please try again."

// Error is a rejected backend call.  Status is the HTTP status code, or 0
// for transport failures.
type Error struct {
	Status    int
	Message   string // server-provided, may be empty
	RequestID string
	Route     string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s: %d: %s", e.Route, e.Status, e.Message)
	}
	return fmt.Sprintf("api: %s: status %d", e.Route, e.Status)
}

// UserMessage returns the server-provided message when present, else the
// generic fallback.  The submission controller consumes this through the
// userMessager interface.
func (e *Error) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return GenericUserMessage
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Status == http.StatusNotFound
}

// errorEnvelope covers the response shapes the backend emits on rejection.
type errorEnvelope struct {
	Message string `json:"message"`
	Err     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// decodeError turns a non-2xx response body into *Error.  A body that is
// not JSON (proxies, HTML error pages) simply yields an empty Message.
func decodeError(route, reqID string, status int, body []byte) *Error {
	var env errorEnvelope
	_ = json.Unmarshal(body, &env)

	msg := env.Message
	if msg == "" {
		msg = env.Err.Message
	}
	return &Error{Status: status, Message: msg, RequestID: reqID, Route: route}
}
