// components/auth/auth.go
//
// PetManager authentication component – login, registration, and logout.
//
// Registration walks the full submission state machine: ordered field
// validation, one gateway call per admitted trigger, and a deferred
// return to the login page after the success notice has been visible
// for a moment.  Login exchanges credentials for a backend token and
// starts a server-side session; the token itself never reaches the
// browser.
//
//------------------------------------------------------------------------------

package auth

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/api"
	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/component"
	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/form"
	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/notify"
	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/view"
)

const (
	loginFormID    = "auth/login"
	registerFormID = "auth/register"
)

// Compile-time assertion: *Component satisfies component.Component.
var _ component.Component = (*Component)(nil)

// Component encapsulates login and registration functionality.
type Component struct {
	deps component.Deps
}

/*────────────────── component.Component methods ───────────────────────────*/

// Name returns the canonical component key.
func (c *Component) Name() string { return "auth" }

// Init stores process-wide dependencies.
func (c *Component) Init(deps component.Deps) error {
	c.deps = deps
	return nil
}

// Routes builds and returns the router mounted at “/”.
func (c *Component) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/login", c.handleLoginGET)
	r.Post("/login", c.handleLoginPOST)
	r.Get("/register", c.handleRegisterGET)
	r.Post("/register", c.handleRegisterPOST)
	r.Post("/logout", c.handleLogout)
	return r
}

// Register component at program start.
func init() { component.Register(&Component{}) }

/*──────────────────────────── controllers ──────────────────────────────────*/

func (c *Component) loginController(r *http.Request) *form.Controller {
	key := component.FormKey(r, loginFormID)
	return c.deps.Forms.GetOrCreate(key, func() *form.Controller {
		def, _ := form.GetFormDef(loginFormID)
		return form.NewController(def, c.submitLogin)
	})
}

func (c *Component) registerController(r *http.Request) *form.Controller {
	key := component.FormKey(r, registerFormID)
	return c.deps.Forms.GetOrCreate(key, func() *form.Controller {
		def, _ := form.GetFormDef(registerFormID)
		return form.NewController(def, c.submitRegister,
			form.WithDeferred(func() { c.deps.Forms.Drop(key) }))
	})
}

// submitLogin exchanges credentials for a bearer token.
func (c *Component) submitLogin(ctx context.Context, clean form.Values) (any, error) {
	resp, err := c.deps.Gateway.Login(ctx, api.LoginRequest{
		Email:    clean["email"],
		Password: clean["password"],
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// submitRegister creates the account.  The backend answers 204, so the
// entity is nil on success.
func (c *Component) submitRegister(ctx context.Context, clean form.Values) (any, error) {
	err := c.deps.Gateway.Register(ctx, api.RegisterRequest{
		IDNumber:    clean["document"],
		IDType:      "CC",
		Name:        clean["name"],
		PhoneNumber: clean["phone"],
		Email:       clean["email"],
		Password:    clean["password"],
	})
	return nil, err
}

/*──────────────────────────── Handlers ─────────────────────────────────────*/

func (c *Component) handleLoginGET(w http.ResponseWriter, r *http.Request) {
	c.renderLogin(w, r, "")
}

func (c *Component) handleLoginPOST(w http.ResponseWriter, r *http.Request) {
	ctrl := c.loginController(r)
	if err := form.Bind(r, ctrl); err != nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}

	out := ctrl.Submit(r.Context())
	switch out.State {
	case form.StateSucceeded:
		resp, ok := out.Entity.(api.LoginResponse)
		if !ok || resp.AccessToken == "" {
			c.renderLogin(w, r, form.MsgSubmitFailed)
			return
		}
		email := ctrl.Values()["email"] // cleared on success; fetch from post
		if email == "" {
			email = r.PostFormValue("email")
		}
		if _, err := c.deps.Sessions.Begin(r.Context(), w, r, email, resp.AccessToken); err != nil {
			zap.L().Error("session begin", zap.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		c.deps.Forms.Drop(component.FormKey(r, loginFormID))
		http.Redirect(w, r, "/providers", http.StatusSeeOther)

	case form.StateInvalid, form.StateFailed:
		c.renderLogin(w, r, out.Message)

	default: // StateSubmitting: trigger ignored while one is in flight
		c.renderLogin(w, r, "")
	}
}

func (c *Component) handleRegisterGET(w http.ResponseWriter, r *http.Request) {
	c.renderRegister(w, r, "", false)
}

func (c *Component) handleRegisterPOST(w http.ResponseWriter, r *http.Request) {
	ctrl := c.registerController(r)
	if err := form.Bind(r, ctrl); err != nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}

	out := ctrl.Submit(r.Context())
	switch out.State {
	case form.StateSucceeded:
		notify.For(w).Notify("Success", "Your account was created.", notify.KindSuccess)
		c.renderRegister(w, r, "", true)

	case form.StateInvalid, form.StateFailed:
		c.renderRegister(w, r, out.Message, false)

	default:
		c.renderRegister(w, r, "", false)
	}
}

func (c *Component) handleLogout(w http.ResponseWriter, r *http.Request) {
	c.deps.Sessions.End(r.Context(), w, r)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

/*──────────────────────────── render helpers ───────────────────────────────*/

func (c *Component) renderLogin(w http.ResponseWriter, r *http.Request, errMsg string) {
	ctrl := c.loginController(r)
	html, err := form.RenderForm(loginFormID, ctrl.Values())
	if err != nil {
		zap.L().Error("render login form", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	data := map[string]any{
		"Head":      view.NewHead("Sign in – PetManager"),
		"Form":      html,
		"FormError": errMsg,
	}
	if err := view.Render(w, r, "auth", "login", data, view.CacheDefault); err != nil {
		zap.L().Error("render login page", zap.Error(err))
	}
}

// renderRegister draws the registration page.  After success it arms a
// timed refresh back to the login page, matching the success-notice
// delay, and renders the cleared form underneath the notice.
func (c *Component) renderRegister(w http.ResponseWriter, r *http.Request, errMsg string, succeeded bool) {
	ctrl := c.registerController(r)
	html, err := form.RenderForm(registerFormID, ctrl.Values())
	if err != nil {
		zap.L().Error("render register form", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	h := view.NewHead("Create account – PetManager")
	if succeeded {
		h.Meta(`<meta http-equiv="refresh" content="1.5;url=/login">`)
	}
	data := map[string]any{
		"Head":      h,
		"Form":      html,
		"FormError": errMsg,
		"Succeeded": succeeded,
	}
	if err := view.Render(w, r, "auth", "register", data, view.CacheDefault); err != nil {
		zap.L().Error("render register page", zap.Error(err))
	}
}
