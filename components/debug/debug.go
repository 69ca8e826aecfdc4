// components/debug/debug.go
//
// Diagnostic component that echoes the enriched request metadata.
// Handy when checking what the audit log will record for a client.
package debug

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/auth"
	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/component"
	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/requestinfo"
)

var _ component.Component = (*Component)(nil)

type Component struct{}

func (c *Component) Name() string { return "debug" }

func (c *Component) Init(component.Deps) error { return nil }

func (c *Component) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/debug", handler)
	return r
}

func init() { component.Register(&Component{}) }

// handler writes a JSON blob with the request's enriched metadata.
func handler(w http.ResponseWriter, r *http.Request) {
	operator, _ := auth.Operator(r.Context())
	out := map[string]any{
		"path":     r.URL.Path,
		"query":    r.URL.RawQuery,
		"ua":       r.UserAgent(),
		"operator": operator,
	}
	if info := requestinfo.FromContext(r.Context()); info != nil {
		out["ua_parsed"] = info.UA
		out["geo"] = info.Geo
		out["lang"] = info.PrimaryLang
		out["timestamp"] = info.Timestamp
	}

	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(out)
}
