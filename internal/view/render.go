// internal/view/render.go
//
// Central view engine: template lookup, layout wrapping, func-map
// injection, and an LRU of parsed *template.Template* sets.
//
// Public helpers
// --------------
//   - SetRoot        – fix the filesystem root (called once from cmd/web).
//   - Render         – write a page, wrapped in the shared layout, to w.
//   - RenderToString – return template.HTML (partials, e-mails).
//
// Every page template lives at components/<comp>/templates/<name>.html
// and defines a "content" block (plus an optional "title" block).  The
// shared chrome lives at views/layout.html and pulls the page in via
// {{ template "content" . }}.  Layout and page are parsed as one set,
// so a page's sub-templates work out-of-the-box.
//
// Render injects the per-request keys every layout render expects:
//
//   - Info   – *requestinfo.RequestInfo for the current request
//   - Flash  – *notify.Notification popped from the flash cookie, or nil
//   - Head   – *head.Builder with the console defaults
//   - User   – the operator email, or "" when anonymous
//
// Pages therefore never fetch these themselves.

package view

import (
	"bytes"
	"html/template"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/auth"
	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/cache"
	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/head"
	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/notify"
	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/requestinfo"
)

//
// cache definitions
//

// CachePolicy hints how the caller wants this template cached.
type CachePolicy int

const (
	CacheDefault CachePolicy = iota // cache parsed sets
	CacheSkip                       // never cache (template development)
)

// Parsed template sets per page; tweak capacity when perf-testing.
var tmplLRU = cache.New(256)

// root is the directory holding views/ and components/.  cmd/web sets it
// from config during boot; the default suits tests run from a package dir.
var root = "."

// SetRoot fixes the filesystem root for template lookup.
func SetRoot(dir string) { root = dir }

//
// public helpers
//

// Render executes the layout-wrapped page template and streams it to w.
func Render(w http.ResponseWriter, r *http.Request, comp, name string, data map[string]any, policy CachePolicy) error {
	t, err := load(comp, name, policy)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return t.ExecuteTemplate(w, "layout", inject(w, r, data))
}

// RenderToString executes a page without the layout and returns HTML.
// Used for fragments that embed into an already-rendered page.
func RenderToString(r *http.Request, comp, name string, data map[string]any) (template.HTML, error) {
	t, err := load(comp, name, CacheDefault)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "content", injectInfo(r, data)); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

//
// internal: load
//

// load finds and (if necessary) parses the layout + page template set.
func load(comp, name string, policy CachePolicy) (*template.Template, error) {
	key := strings.Join([]string{comp, name}, "::")

	if policy != CacheSkip {
		if v, ok := tmplLRU.Get(key); ok {
			return v.(*template.Template), nil
		}
	}

	layout := filepath.Join(root, "views", "layout.html")
	page := filepath.Join(root, "components", comp, "templates", name+".html")

	t, err := template.New("layout").Funcs(buildFuncMap()).ParseFiles(layout, page)
	if err != nil {
		return nil, err
	}

	if policy != CacheSkip {
		tmplLRU.Add(key, t)
	}
	return t, nil
}

//
// func-map builders
//

func buildFuncMap() template.FuncMap {
	fm := template.FuncMap{
		"dict": dict,
	}
	for k, v := range uaFuncMap() { // UA helpers (browser/os parsing)
		fm[k] = v
	}
	return fm
}

//
// helpers
//

// NewHead returns a head.Builder pre-seeded with the console defaults.
// Pages that need extra tags (a post-success refresh, for instance) build
// one here, add to it, and pass it under the "Head" key.
func NewHead(title string) *head.Builder {
	h := head.New()
	h.SetTitle(title)
	h.Meta(`<meta charset="utf-8">`)
	h.Meta(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	h.Link(`<link rel="icon" href="/favicon.ico">`)
	return h
}

// inject adds the per-request keys every layout render expects.  The
// flash cookie is consumed here so a notification renders exactly once.
func inject(w http.ResponseWriter, r *http.Request, data map[string]any) map[string]any {
	data = injectInfo(r, data)
	if _, ok := data["Flash"]; !ok {
		data["Flash"] = notify.Pop(w, r)
	}
	if _, ok := data["Head"]; !ok {
		data["Head"] = NewHead("PetManager")
	}
	if _, ok := data["User"]; !ok {
		email, _ := auth.Operator(r.Context())
		data["User"] = email
	}
	return data
}

func injectInfo(r *http.Request, data map[string]any) map[string]any {
	if data == nil {
		data = map[string]any{}
	}
	if _, ok := data["Info"]; !ok {
		data["Info"] = requestinfo.FromContext(r.Context())
	}
	return data
}

// dict builds a map in templates: {{ dict "k" 1 "k2" "v" }}.
func dict(kv ...any) map[string]any {
	m := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, _ := kv[i].(string)
		m[key] = kv[i+1]
	}
	return m
}
