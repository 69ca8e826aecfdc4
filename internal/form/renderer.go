// internal/form/renderer.go
//
// PetManager – Forms subsystem: HTML renderer.
//
// Context
//   Given a parsed FormDef (from definition.go) this file converts the
//   definition into safe, accessible HTML markup.  Each semantic kind maps
//   to the matching HTML5 input type so the browser hints at the same rules
//   the server enforces, a CSRF token is injected as a hidden input, and
//   current values (from the live controller) pre-fill the fields so a
//   failed submission keeps what the user typed.
//
// Workflow
//   •  RenderForm looks up the FormDef by ID and writes each field via
//      writeField, in definition order.
//   •  Password inputs are never pre-filled.
//   •  The caller receives the final HTML as template.HTML so the
//      surrounding template does not double-escape the markup.
//
// Style
//   Output HTML is deliberately plain – no framework classes – so the
//   stylesheet can style via element selectors or class hooks.  Each input
//   gets id="fld-{name}" and is wrapped in <div class="form-field">.
//
//------------------------------------------------------------------------------

package form

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"strconv"
	"time"
)

// SelectOption is one entry of a dynamically sourced select: Value is what
// the browser submits, Label what the user sees.
type SelectOption struct {
	Value string
	Label string
}

// RenderOption tweaks one RenderForm call.
type RenderOption func(*renderCfg)

type renderCfg struct {
	options map[string][]SelectOption
}

// WithOptions renders the named field as a select fed from opts instead of
// its default control.  Used for reference data that lives on the backend,
// such as payment conditions; the field keeps its declared kind for
// validation.
func WithOptions(field string, opts []SelectOption) RenderOption {
	return func(c *renderCfg) {
		if c.options == nil {
			c.options = map[string][]SelectOption{}
		}
		c.options[field] = opts
	}
}

// RenderForm returns the HTML markup for the specified form ID, pre-filled
// from values (typically Controller.Values()).
func RenderForm(formID string, values Values, opts ...RenderOption) (template.HTML, error) {
	fd, ok := GetFormDef(formID)
	if !ok {
		return "", fmt.Errorf("RenderForm: unknown form %q", formID)
	}

	var cfg renderCfg
	for _, o := range opts {
		o(&cfg)
	}

	var buf bytes.Buffer
	// Form wrapper div to allow per-form CSS targeting if desired.
	buf.WriteString(`<div class="petmanager-form">` + "\n")

	// Iterate fields in definition order.
	for i := range fd.Fields {
		f := &fd.Fields[i]
		if dyn, ok := cfg.options[f.Name]; ok {
			writeDynamicSelect(&buf, f, values, dyn)
			continue
		}
		writeField(&buf, f, values)
	}

	// Hidden CSRF input.
	buf.WriteString(fmt.Sprintf(`<input type="hidden" name="csrf_token" value="%s">`+"\n", csrfGenerateToken()))

	buf.WriteString(`</div>`)
	return template.HTML(buf.String()), nil
}

// inputType maps a semantic kind to the HTML5 input type.
func inputType(k Kind) string {
	switch k {
	case KindEmail:
		return "email"
	case KindPassword, KindPasswordConfirm, KindSecret:
		return "password"
	case KindPhone:
		return "tel"
	case KindDate:
		return "date"
	case KindNumber:
		return "number"
	default:
		return "text"
	}
}

// writeField emits HTML for an individual field into buf, applying the
// current value and validation attributes.
func writeField(buf *bytes.Buffer, f *FieldDef, values Values) {
	val := ""
	if values != nil {
		val = values[f.Name]
	}

	// Container
	buf.WriteString(`<div class="form-field">` + "\n")

	idAttr := `id="fld-` + html.EscapeString(f.Name) + `"`
	nameAttr := `name="` + html.EscapeString(f.Name) + `"`

	// Label first (for accessibility)
	buf.WriteString(`<label for="fld-` + html.EscapeString(f.Name) + `">` + html.EscapeString(f.Label) + `</label>` + "\n")

	switch f.Kind {
	case KindTextarea, KindAddress:
		rows := f.Rows
		if rows <= 0 {
			rows = 3
		}
		buf.WriteString(`<textarea ` + idAttr + ` ` + nameAttr + ` rows="` + strconv.Itoa(rows) + `"`)
		if f.Required {
			buf.WriteString(` required`)
		}
		if f.MaxLength > 0 {
			buf.WriteString(` maxlength="` + strconv.Itoa(f.MaxLength) + `"`)
		}
		if f.Placeholder != "" {
			buf.WriteString(` placeholder="` + html.EscapeString(f.Placeholder) + `"`)
		}
		buf.WriteString(`>`)
		if val != "" {
			buf.WriteString(html.EscapeString(val))
		}
		buf.WriteString(`</textarea>` + "\n")

	case KindSelect:
		buf.WriteString(`<select ` + idAttr + ` ` + nameAttr)
		if f.Required {
			buf.WriteString(` required`)
		}
		buf.WriteString(`>` + "\n")
		for _, opt := range f.Options {
			sel := ""
			if val == opt {
				sel = ` selected`
			}
			buf.WriteString(`<option value="` + html.EscapeString(opt) + `"` + sel + `>` + html.EscapeString(opt) + `</option>` + "\n")
		}
		buf.WriteString(`</select>` + "\n")

	default:
		buf.WriteString(`<input ` + idAttr + ` ` + nameAttr + ` type="` + inputType(f.Kind) + `"`)
		if f.Placeholder != "" {
			buf.WriteString(` placeholder="` + html.EscapeString(f.Placeholder) + `"`)
		}
		if f.Required {
			buf.WriteString(` required`)
		}
		if f.MinLength > 0 {
			buf.WriteString(` minlength="` + strconv.Itoa(f.MinLength) + `"`)
		}
		if f.MaxLength > 0 {
			buf.WriteString(` maxlength="` + strconv.Itoa(f.MaxLength) + `"`)
		}
		// Password fields are not pre-filled.
		if val != "" && f.Kind != KindPassword && f.Kind != KindPasswordConfirm && f.Kind != KindSecret {
			buf.WriteString(` value="` + html.EscapeString(val) + `"`)
		}
		buf.WriteString(`>` + "\n")
	}

	// Placeholder span for error messages (populated on server re-render).
	buf.WriteString(`<span class="error" aria-live="polite"></span>` + "\n")

	buf.WriteString(`</div>` + "\n")
}

// writeDynamicSelect emits a select whose options were fetched at request
// time.  Markup mirrors the static select branch of writeField.
func writeDynamicSelect(buf *bytes.Buffer, f *FieldDef, values Values, opts []SelectOption) {
	val := ""
	if values != nil {
		val = values[f.Name]
	}

	buf.WriteString(`<div class="form-field">` + "\n")
	buf.WriteString(`<label for="fld-` + html.EscapeString(f.Name) + `">` + html.EscapeString(f.Label) + `</label>` + "\n")
	buf.WriteString(`<select id="fld-` + html.EscapeString(f.Name) + `" name="` + html.EscapeString(f.Name) + `"`)
	if f.Required {
		buf.WriteString(` required`)
	}
	buf.WriteString(`>` + "\n")
	for _, opt := range opts {
		sel := ""
		if val == opt.Value {
			sel = ` selected`
		}
		buf.WriteString(`<option value="` + html.EscapeString(opt.Value) + `"` + sel + `>` + html.EscapeString(opt.Label) + `</option>` + "\n")
	}
	buf.WriteString(`</select>` + "\n")
	buf.WriteString(`<span class="error" aria-live="polite"></span>` + "\n")
	buf.WriteString(`</div>` + "\n")
}

// csrfGenerateToken is a thin wrapper so the renderer degrades gracefully on
// the (extremely rare) entropy failure instead of aborting the page.
func csrfGenerateToken() string {
	token, err := GenerateToken() // from csrf.go
	if err != nil {
		return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
	}
	return token
}
