// components/user/user.go
//
// PetManager user-administration component – console accounts and roles.
//
// Everything here is gated to the ADMIN role: the session middleware
// resolves the operator, and the role store answers against the backend
// users endpoint.  Account creation runs the standard submission state
// machine with the role select fed from the backend.
//
//------------------------------------------------------------------------------

package user

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/acl"
	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/api"
	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/component"
	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/form"
	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/notify"
	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/view"
)

const (
	newUserFormID = "user/new"
	newRoleFormID = "user/new_role"

	adminRole = "ADMIN"
)

var _ component.Component = (*Component)(nil)

// Component encapsulates console account administration.
type Component struct {
	deps component.Deps
}

func (c *Component) Name() string { return "user" }

func (c *Component) Init(deps component.Deps) error {
	c.deps = deps
	return nil
}

// Routes mounts the admin-gated account and role endpoints.  Init runs
// before mounting, so the role store is live here.
func (c *Component) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(acl.RequireRole(c.deps.ACL, adminRole))
	r.Get("/users", c.handleList)
	r.Get("/users/new", c.handleNewGET)
	r.Post("/users/new", c.handleNewPOST)
	r.Post("/users/{id}/toggle", c.handleToggle)
	r.Post("/users/{id}/delete", c.handleDelete)
	r.Get("/users/roles", c.handleRoles)
	r.Post("/users/roles/new", c.handleNewRole)
	return r
}

func init() { component.Register(&Component{}) }

/*──────────────────────────── controllers ──────────────────────────────────*/

func (c *Component) newUserController(r *http.Request) *form.Controller {
	key := component.FormKey(r, newUserFormID)
	return c.deps.Forms.GetOrCreate(key, func() *form.Controller {
		def, _ := form.GetFormDef(newUserFormID)
		return form.NewController(def, c.submitNewUser,
			form.WithDeferred(func() { c.deps.Forms.Drop(key) }))
	})
}

func (c *Component) submitNewUser(ctx context.Context, clean form.Values) (any, error) {
	u, err := c.deps.Gateway.CreateUser(ctx, api.CreateUser{
		IDNumber:    clean["document"],
		IDType:      "CC",
		Name:        clean["name"],
		PhoneNumber: clean["phone"],
		Email:       clean["email"],
		Password:    clean["password"],
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

/*──────────────────────────── Handlers ─────────────────────────────────────*/

func (c *Component) handleList(w http.ResponseWriter, r *http.Request) {
	users, err := c.deps.Gateway.Users(r.Context())
	if err != nil {
		zap.L().Error("user list", zap.Error(err))
		notify.For(w).Notify("Error", api.GenericUserMessage, notify.KindError)
	}
	data := map[string]any{
		"Head":  view.NewHead("Users – PetManager"),
		"Users": users,
	}
	if err := view.Render(w, r, "user", "list", data, view.CacheDefault); err != nil {
		zap.L().Error("render user list", zap.Error(err))
	}
}

func (c *Component) handleNewGET(w http.ResponseWriter, r *http.Request) {
	c.renderNew(w, r, "", false)
}

func (c *Component) handleNewPOST(w http.ResponseWriter, r *http.Request) {
	ctrl := c.newUserController(r)
	if err := form.Bind(r, ctrl); err != nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}

	out := ctrl.Submit(r.Context())
	switch out.State {
	case form.StateSucceeded:
		notify.For(w).Notify("Success", "The account was created.", notify.KindSuccess)
		c.renderNew(w, r, "", true)

	case form.StateInvalid, form.StateFailed:
		c.renderNew(w, r, out.Message, false)

	default:
		c.renderNew(w, r, "", false)
	}
}

// handleToggle flips an account between active and inactive.
func (c *Component) handleToggle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	u, err := c.deps.Gateway.User(r.Context(), id)
	if err != nil {
		notify.For(w).Notify("Error", api.GenericUserMessage, notify.KindError)
		http.Redirect(w, r, "/users", http.StatusSeeOther)
		return
	}
	next := !u.Active
	if _, err := c.deps.Gateway.UpdateUser(r.Context(), id, api.UpdateUser{Active: &next}); err != nil {
		notify.For(w).Notify("Error", api.GenericUserMessage, notify.KindError)
	} else {
		verb := "deactivated"
		if next {
			verb = "activated"
		}
		notify.For(w).Notify("Success", fmt.Sprintf("The account was %s.", verb), notify.KindSuccess)
	}
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

func (c *Component) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := c.deps.Gateway.DeleteUser(r.Context(), id); err != nil {
		notify.For(w).Notify("Error", api.GenericUserMessage, notify.KindError)
	} else {
		notify.For(w).Notify("Success", "The account was deleted.", notify.KindSuccess)
	}
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

func (c *Component) handleRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := c.deps.Gateway.Roles(r.Context())
	if err != nil {
		zap.L().Error("role list", zap.Error(err))
		notify.For(w).Notify("Error", api.GenericUserMessage, notify.KindError)
	}
	html, err := form.RenderForm(newRoleFormID, nil)
	if err != nil {
		zap.L().Error("render role form", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	data := map[string]any{
		"Head":  view.NewHead("Roles – PetManager"),
		"Roles": roles,
		"Form":  html,
	}
	if err := view.Render(w, r, "user", "roles", data, view.CacheDefault); err != nil {
		zap.L().Error("render role list", zap.Error(err))
	}
}

// handleNewRole creates a role.  The form is small enough that it skips
// the controller machinery: validation happens through the same field
// validators via a throwaway controller.
func (c *Component) handleNewRole(w http.ResponseWriter, r *http.Request) {
	def, _ := form.GetFormDef(newRoleFormID)
	ctrl := form.NewController(def, func(ctx context.Context, clean form.Values) (any, error) {
		return c.deps.Gateway.CreateRole(ctx, api.CreateRole{
			Name:        clean["name"],
			Description: clean["description"],
		})
	})
	if err := form.Bind(r, ctrl); err != nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	out := ctrl.Submit(r.Context())
	switch out.State {
	case form.StateSucceeded:
		notify.For(w).Notify("Success", "The role was created.", notify.KindSuccess)
	case form.StateInvalid, form.StateFailed:
		notify.For(w).Notify("Error", out.Message, notify.KindError)
	}
	http.Redirect(w, r, "/users/roles", http.StatusSeeOther)
}

/*──────────────────────────── render helpers ───────────────────────────────*/

func (c *Component) renderNew(w http.ResponseWriter, r *http.Request, errMsg string, succeeded bool) {
	ctrl := c.newUserController(r)
	html, err := form.RenderForm(newUserFormID, ctrl.Values())
	if err != nil {
		zap.L().Error("render user form", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	h := view.NewHead("New user – PetManager")
	if succeeded {
		h.Meta(`<meta http-equiv="refresh" content="1.5;url=/users">`)
	}
	data := map[string]any{
		"Head":      h,
		"Form":      html,
		"FormError": errMsg,
		"Succeeded": succeeded,
	}
	if err := view.Render(w, r, "user", "new", data, view.CacheDefault); err != nil {
		zap.L().Error("render user new page", zap.Error(err))
	}
}
