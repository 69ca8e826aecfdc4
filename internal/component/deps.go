// internal/component/deps.go
package component

import (
	"net"
	"net/http"

	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/acl"
	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/api"
	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/form"
	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/middleware"
	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/session"
)

// Deps carries the process-wide resources components need during Init
// and inside their handlers.  Components keep the struct they receive;
// every field is safe for concurrent use.
type Deps struct {
	Gateway  *api.Client
	Sessions *session.Manager
	Forms    *form.ControllerCache
	ACL      *acl.Store
	Root     string // filesystem root for templates and form definitions
}

// FormKey scopes a live form controller to one browser and one form, so
// a double-submit collapses without serializing unrelated users.  Logged
// in operators key by session ID; anonymous visitors (login, register)
// fall back to the remote address.
func FormKey(r *http.Request, formID string) string {
	if sid := middleware.SessionID(r.Context()); sid != "" {
		return sid + "/" + formID
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "anon:" + host + "/" + formID
}
