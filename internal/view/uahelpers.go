// internal/view/uahelpers.go
//
// User-Agent-related template helpers, keyed off the *RequestInfo the
// enrichment middleware stores on every request.
package view

import (
	"html/template"

	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/requestinfo"
)

// uaFuncMap returns helpers keyed off *requestinfo.RequestInfo.  Each
// helper tolerates a nil receiver so pages render even when the
// enrichment middleware has not run (unit tests, health checks).
func uaFuncMap() template.FuncMap {
	return template.FuncMap{
		"browser": func(i *requestinfo.RequestInfo) string {
			if i == nil {
				return ""
			}
			return i.UA.Browser
		},
		"browserVersion": func(i *requestinfo.RequestInfo) string {
			if i == nil {
				return ""
			}
			return i.UA.Version
		},
		"os": func(i *requestinfo.RequestInfo) string {
			if i == nil {
				return ""
			}
			return i.UA.OS
		},
		"device": func(i *requestinfo.RequestInfo) string {
			if i == nil {
				return ""
			}
			return i.UA.Device
		},
		"isBot": func(i *requestinfo.RequestInfo) bool {
			return i != nil && i.UA.IsBot
		},
	}
}
