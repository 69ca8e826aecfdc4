// internal/form/submit.go
//
// PetManager – Forms subsystem: request binding.
//
// Context
//   Handlers want one call that parses the POST body, checks the CSRF
//   token, and copies the posted inputs into the live Controller — after
//   which Controller.Submit drives validation and the gateway call.
//
//------------------------------------------------------------------------------

package form

import (
	"errors"
	"net/http"
)

// ErrBadToken reports a missing or invalid CSRF token.  Callers should
// treat it as a user error ("refresh and try again"), not a 500.
var ErrBadToken = errors.New("form: security token invalid")

// Bind parses r and loads the posted values for c's fields into c.  Fields
// absent from the POST body are recorded as empty, so clearing an input
// really clears it.
func Bind(r *http.Request, c *Controller) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	if !VerifyToken(r.PostForm.Get("csrf_token")) {
		return ErrBadToken
	}

	def := c.Def()
	for i := range def.Fields {
		name := def.Fields[i].Name
		c.SetValue(name, r.PostForm.Get(name))
	}
	return nil
}
