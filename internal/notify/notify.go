// internal/notify/notify.go
//
// PetManager – transient user notifications (toasts).
//
// Context
//   The submission controller and page handlers emit success and error
//   notices.  This package defines the capability contract and two
//   implementations: Log, which writes the notice to the structured log
//   (useful in tests and background paths), and Flash, which stores one
//   notice in a short-lived cookie so the next rendered page can show it as
//   a toast.
//
//   Exactly one user-visible message is produced per failure path; nothing
//   is silently dropped.
//
// Style
//   Two-space sentence spacing, Oxford comma, concise inline notes.
//
//------------------------------------------------------------------------------

package notify

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Kind classifies a notification for styling and log level.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

// Notification is one user-visible notice.
type Notification struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Kind    Kind   `json:"kind"`
}

// Notifier is the capability consumed by the submission controller.
type Notifier interface {
	Notify(title, message string, kind Kind)
}

//
// Log implementation
//

// Log writes notifications to the global zap logger.  The zero value is
// ready to use.
type Log struct{}

func (Log) Notify(title, message string, kind Kind) {
	switch kind {
	case KindError:
		zap.S().Warnw("notice", "title", title, "message", message)
	default:
		zap.S().Infow("notice", "title", title, "message", message)
	}
}

//
// Flash implementation (cookie-backed)
//

const cookieName = "petmanager_flash"

// Flash stores at most one pending notification in a response cookie.  Bind
// it to the in-flight ResponseWriter with For.
type Flash struct {
	w http.ResponseWriter
}

// For returns a Notifier that flashes onto w.
func For(w http.ResponseWriter) Flash { return Flash{w: w} }

func (f Flash) Notify(title, message string, kind Kind) {
	raw, err := json.Marshal(Notification{Title: title, Message: message, Kind: kind})
	if err != nil {
		zap.S().Errorw("flash encode failed", "err", err)
		return
	}
	http.SetCookie(f.w, &http.Cookie{
		Name:     cookieName,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   60, // seconds; the next page load consumes it
	})
}

// Pop returns the pending notification, if any, and clears the cookie so a
// notice is rendered exactly once.
func Pop(w http.ResponseWriter, r *http.Request) *Notification {
	ck, err := r.Cookie(cookieName)
	if err != nil || ck.Value == "" {
		return nil
	}

	// Clear regardless of decode success; a corrupt cookie must not wedge.
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	raw, err := base64.RawURLEncoding.DecodeString(ck.Value)
	if err != nil {
		return nil
	}
	var n Notification
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil
	}
	return &n
}
