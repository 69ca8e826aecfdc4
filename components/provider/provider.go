// components/provider/provider.go
//
// PetManager provider component – supplier directory, detail, and
// registration.
//
// The detail page fans out to three backend endpoints concurrently (the
// supplier record, its product links, and its payment summary) and joins
// them before rendering.  Registration runs the standard submission
// state machine with a NIT-uniqueness pre-check, so a duplicate NIT
// surfaces as a field-level veto instead of a backend error.
//
//------------------------------------------------------------------------------

package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/api"
	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/component"
	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/form"
	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/notify"
	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/view"
)

const newFormID = "provider/new"

// MsgNITTaken is the veto shown when the uniqueness probe finds the NIT.
const MsgNITTaken = "A provider with this NIT is already registered."

var _ component.Component = (*Component)(nil)

// Component encapsulates the provider directory.
type Component struct {
	deps component.Deps
}

func (c *Component) Name() string { return "provider" }

func (c *Component) Init(deps component.Deps) error {
	c.deps = deps
	return nil
}

func (c *Component) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/providers", c.handleList)
	r.Get("/providers/new", c.handleNewGET)
	r.Post("/providers/new", c.handleNewPOST)
	r.Get("/providers/{id}", c.handleDetail)
	r.Post("/providers/{id}/delete", c.handleDelete)
	r.Post("/providers/{id}/products", c.handleLinkProduct)
	r.Post("/providers/{id}/products/{linkID}/delete", c.handleUnlinkProduct)
	return r
}

func init() { component.Register(&Component{}) }

/*──────────────────────────── controller ───────────────────────────────────*/

func (c *Component) newController(r *http.Request) *form.Controller {
	key := component.FormKey(r, newFormID)
	return c.deps.Forms.GetOrCreate(key, func() *form.Controller {
		def, _ := form.GetFormDef(newFormID)
		return form.NewController(def, c.submitNew,
			form.WithPrecheck(c.precheckNIT),
			form.WithDeferred(func() { c.deps.Forms.Drop(key) }))
	})
}

// precheckNIT vetoes the submission when the NIT already exists.  The
// probe runs after local validation, so the NIT here is well-formed.
func (c *Component) precheckNIT(ctx context.Context, clean form.Values) (string, error) {
	exists, err := c.deps.Gateway.NitExists(ctx, clean["nit"])
	if err != nil {
		return "", err
	}
	if exists {
		return MsgNITTaken, nil
	}
	return "", nil
}

func (c *Component) submitNew(ctx context.Context, clean form.Values) (any, error) {
	condID, err := strconv.Atoi(clean["payment_condition"])
	if err != nil {
		return nil, fmt.Errorf("provider: bad payment condition %q: %w", clean["payment_condition"], err)
	}
	sup, err := c.deps.Gateway.CreateSupplier(ctx, api.CreateSupplier{
		NIT:                clean["nit"],
		Name:               clean["name"],
		PhoneNumber:        clean["phone"],
		Address:            clean["address"],
		Email:              clean["email"],
		PaymentConditionID: condID,
		PaymentNotes:       clean["payment_notes"],
	})
	if err != nil {
		return nil, err
	}
	return sup, nil
}

/*──────────────────────────── Handlers ─────────────────────────────────────*/

func (c *Component) handleList(w http.ResponseWriter, r *http.Request) {
	suppliers, err := c.deps.Gateway.Suppliers(r.Context())
	if err != nil {
		c.renderError(w, r, err)
		return
	}
	data := map[string]any{
		"Head":      view.NewHead("Providers – PetManager"),
		"Suppliers": suppliers,
	}
	if err := view.Render(w, r, "provider", "list", data, view.CacheDefault); err != nil {
		zap.L().Error("render provider list", zap.Error(err))
	}
}

// handleDetail joins the supplier record, its product links, and its
// payment summary.  The three fetches run concurrently; the first error
// cancels the rest.
func (c *Component) handleDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	var (
		supplier api.Supplier
		products api.SupplierProducts
		summary  api.LastAndNextPayment
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		supplier, err = c.deps.Gateway.Supplier(ctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		products, err = c.deps.Gateway.SupplierProducts(ctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		summary, err = c.deps.Gateway.LastAndNextPayment(ctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		if api.IsNotFound(err) {
			http.NotFound(w, r)
			return
		}
		c.renderError(w, r, err)
		return
	}

	catalogue, err := c.deps.Gateway.Products(r.Context())
	if err != nil {
		zap.L().Warn("product catalogue fetch", zap.Error(err))
	}

	data := map[string]any{
		"Head":      view.NewHead(supplier.Name + " – PetManager"),
		"Supplier":  supplier,
		"Products":  products,
		"Summary":   summary,
		"Catalogue": catalogue,
	}
	if err := view.Render(w, r, "provider", "detail", data, view.CacheDefault); err != nil {
		zap.L().Error("render provider detail", zap.Error(err))
	}
}

func (c *Component) handleNewGET(w http.ResponseWriter, r *http.Request) {
	c.renderNew(w, r, "", false)
}

func (c *Component) handleNewPOST(w http.ResponseWriter, r *http.Request) {
	ctrl := c.newController(r)
	if err := form.Bind(r, ctrl); err != nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}

	out := ctrl.Submit(r.Context())
	switch out.State {
	case form.StateSucceeded:
		notify.For(w).Notify("Success", "The provider was registered.", notify.KindSuccess)
		c.renderNew(w, r, "", true)

	case form.StateInvalid, form.StateFailed:
		c.renderNew(w, r, out.Message, false)

	default:
		c.renderNew(w, r, "", false)
	}
}

func (c *Component) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := c.deps.Gateway.DeleteSupplier(r.Context(), id); err != nil {
		notify.For(w).Notify("Error", userMessage(err), notify.KindError)
	} else {
		notify.For(w).Notify("Success", "The provider was deleted.", notify.KindSuccess)
	}
	http.Redirect(w, r, "/providers", http.StatusSeeOther)
}

func (c *Component) handleLinkProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	productID, err := strconv.Atoi(r.PostFormValue("product_id"))
	if err != nil {
		notify.For(w).Notify("Error", "Please choose a product.", notify.KindError)
		http.Redirect(w, r, "/providers/"+strconv.Itoa(id), http.StatusSeeOther)
		return
	}
	if _, err := c.deps.Gateway.LinkSupplierProduct(r.Context(), id, productID); err != nil {
		notify.For(w).Notify("Error", userMessage(err), notify.KindError)
	} else {
		notify.For(w).Notify("Success", "The product was linked.", notify.KindSuccess)
	}
	http.Redirect(w, r, "/providers/"+strconv.Itoa(id), http.StatusSeeOther)
}

func (c *Component) handleUnlinkProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	linkID, err := strconv.Atoi(chi.URLParam(r, "linkID"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := c.deps.Gateway.UnlinkSupplierProduct(r.Context(), linkID); err != nil {
		notify.For(w).Notify("Error", userMessage(err), notify.KindError)
	} else {
		notify.For(w).Notify("Success", "The product was unlinked.", notify.KindSuccess)
	}
	http.Redirect(w, r, "/providers/"+id, http.StatusSeeOther)
}

/*──────────────────────────── render helpers ───────────────────────────────*/

// renderNew draws the registration page.  Payment conditions are
// reference data on the backend, so the select is fed per request.
func (c *Component) renderNew(w http.ResponseWriter, r *http.Request, errMsg string, succeeded bool) {
	conditions, err := c.deps.Gateway.PaymentConditions(r.Context())
	if err != nil {
		c.renderError(w, r, err)
		return
	}
	opts := make([]form.SelectOption, 0, len(conditions))
	for _, pc := range conditions {
		opts = append(opts, form.SelectOption{
			Value: strconv.Itoa(pc.ID),
			Label: pc.Name,
		})
	}

	ctrl := c.newController(r)
	html, err := form.RenderForm(newFormID, ctrl.Values(), form.WithOptions("payment_condition", opts))
	if err != nil {
		zap.L().Error("render provider form", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h := view.NewHead("New provider – PetManager")
	if succeeded {
		h.Meta(`<meta http-equiv="refresh" content="1.5;url=/providers">`)
	}
	data := map[string]any{
		"Head":      h,
		"Form":      html,
		"FormError": errMsg,
		"Succeeded": succeeded,
	}
	if err := view.Render(w, r, "provider", "new", data, view.CacheDefault); err != nil {
		zap.L().Error("render provider new page", zap.Error(err))
	}
}

func (c *Component) renderError(w http.ResponseWriter, r *http.Request, err error) {
	zap.L().Error("provider gateway", zap.Error(err))
	notify.For(w).Notify("Error", userMessage(err), notify.KindError)
	data := map[string]any{
		"Head": view.NewHead("Providers – PetManager"),
	}
	if rerr := view.Render(w, r, "provider", "list", data, view.CacheDefault); rerr != nil {
		http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
	}
}

// userMessage prefers the server-provided message on gateway errors.
func userMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.UserMessage() != "" {
		return apiErr.UserMessage()
	}
	return api.GenericUserMessage
}
