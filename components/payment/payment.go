// components/payment/payment.go
//
// PetManager payment component – scheduling and history.
//
// Scheduling runs the standard submission state machine.  The supplier
// and product selects are reference data fed from the backend at render
// time; the submitted values are still validated server-side like every
// other field.
//
//------------------------------------------------------------------------------

package payment

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/api"
	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/component"
	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/form"
	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/notify"
	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/view"
)

const scheduleFormID = "payment/schedule"

var _ component.Component = (*Component)(nil)

// Component encapsulates payment scheduling and history.
type Component struct {
	deps component.Deps
}

func (c *Component) Name() string { return "payment" }

func (c *Component) Init(deps component.Deps) error {
	c.deps = deps
	return nil
}

func (c *Component) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/payments", c.handleIndex)
	r.Get("/payments/new", c.handleNewGET)
	r.Post("/payments/new", c.handleNewPOST)
	r.Get("/payments/supplier/{id}", c.handleHistory)
	return r
}

func init() { component.Register(&Component{}) }

/*──────────────────────────── controller ───────────────────────────────────*/

func (c *Component) scheduleController(r *http.Request) *form.Controller {
	key := component.FormKey(r, scheduleFormID)
	return c.deps.Forms.GetOrCreate(key, func() *form.Controller {
		def, _ := form.GetFormDef(scheduleFormID)
		return form.NewController(def, c.submitSchedule,
			form.WithDeferred(func() { c.deps.Forms.Drop(key) }))
	})
}

// submitSchedule creates a single-line payment.  Amount is derived by
// the backend from quantity times unit price.
func (c *Component) submitSchedule(ctx context.Context, clean form.Values) (any, error) {
	supplierID, err := strconv.Atoi(clean["supplier_id"])
	if err != nil {
		return nil, fmt.Errorf("payment: bad supplier %q: %w", clean["supplier_id"], err)
	}
	productID, err := strconv.Atoi(clean["product"])
	if err != nil {
		return nil, fmt.Errorf("payment: bad product %q: %w", clean["product"], err)
	}
	quantity, err := strconv.ParseFloat(clean["quantity"], 64)
	if err != nil {
		return nil, fmt.Errorf("payment: bad quantity %q: %w", clean["quantity"], err)
	}
	price, err := strconv.ParseFloat(clean["price_per_unit"], 64)
	if err != nil {
		return nil, fmt.Errorf("payment: bad unit price %q: %w", clean["price_per_unit"], err)
	}

	// Resolve the product record so the payload carries its identity.
	catalogue, err := c.deps.Gateway.Products(ctx)
	if err != nil {
		return nil, err
	}
	var product api.Product
	for _, p := range catalogue {
		if p.ID == productID {
			product = p
			break
		}
	}
	if product.Name == "" {
		return nil, fmt.Errorf("payment: unknown product %d", productID)
	}

	pay, err := c.deps.Gateway.CreatePayment(ctx, api.CreatePayment{
		SupplierID:  supplierID,
		PaymentDate: clean["payment_date"],
		Products: []api.PaymentProduct{{
			Product:      product,
			Quantity:     quantity,
			PricePerUnit: price,
		}},
		Notes: clean["notes"],
	})
	if err != nil {
		return nil, err
	}
	return pay, nil
}

/*──────────────────────────── Handlers ─────────────────────────────────────*/

// handleIndex lists suppliers with shortcuts into scheduling and history.
func (c *Component) handleIndex(w http.ResponseWriter, r *http.Request) {
	suppliers, err := c.deps.Gateway.Suppliers(r.Context())
	if err != nil {
		zap.L().Error("payment supplier list", zap.Error(err))
		notify.For(w).Notify("Error", api.GenericUserMessage, notify.KindError)
		suppliers = nil
	}
	data := map[string]any{
		"Head":      view.NewHead("Payments – PetManager"),
		"Suppliers": suppliers,
	}
	if err := view.Render(w, r, "payment", "index", data, view.CacheDefault); err != nil {
		zap.L().Error("render payment index", zap.Error(err))
	}
}

func (c *Component) handleNewGET(w http.ResponseWriter, r *http.Request) {
	if s := r.URL.Query().Get("supplier"); s != "" {
		c.scheduleController(r).SetValue("supplier_id", s)
	}
	c.renderNew(w, r, "", false)
}

func (c *Component) handleNewPOST(w http.ResponseWriter, r *http.Request) {
	ctrl := c.scheduleController(r)
	if err := form.Bind(r, ctrl); err != nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}

	out := ctrl.Submit(r.Context())
	switch out.State {
	case form.StateSucceeded:
		notify.For(w).Notify("Success", "The payment was scheduled.", notify.KindSuccess)
		c.renderNew(w, r, "", true)

	case form.StateInvalid, form.StateFailed:
		c.renderNew(w, r, out.Message, false)

	default:
		c.renderNew(w, r, "", false)
	}
}

func (c *Component) handleHistory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	history, err := c.deps.Gateway.SupplierPayments(r.Context(), id)
	if err != nil {
		if api.IsNotFound(err) {
			http.NotFound(w, r)
			return
		}
		zap.L().Error("payment history", zap.Error(err))
		notify.For(w).Notify("Error", api.GenericUserMessage, notify.KindError)
	}
	data := map[string]any{
		"Head":    view.NewHead("Payment history – PetManager"),
		"History": history,
	}
	if err := view.Render(w, r, "payment", "history", data, view.CacheDefault); err != nil {
		zap.L().Error("render payment history", zap.Error(err))
	}
}

/*──────────────────────────── render helpers ───────────────────────────────*/

func (c *Component) renderNew(w http.ResponseWriter, r *http.Request, errMsg string, succeeded bool) {
	suppliers, err := c.deps.Gateway.Suppliers(r.Context())
	if err != nil {
		zap.L().Error("payment suppliers fetch", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
		return
	}
	catalogue, err := c.deps.Gateway.Products(r.Context())
	if err != nil {
		zap.L().Error("payment catalogue fetch", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
		return
	}

	supplierOpts := make([]form.SelectOption, 0, len(suppliers))
	for _, s := range suppliers {
		supplierOpts = append(supplierOpts, form.SelectOption{
			Value: strconv.Itoa(s.ID),
			Label: s.Name,
		})
	}
	productOpts := make([]form.SelectOption, 0, len(catalogue))
	for _, p := range catalogue {
		label := p.Name
		if p.Brand != "" {
			label += " (" + p.Brand + ")"
		}
		productOpts = append(productOpts, form.SelectOption{
			Value: strconv.Itoa(p.ID),
			Label: label,
		})
	}

	ctrl := c.scheduleController(r)
	html, err := form.RenderForm(scheduleFormID, ctrl.Values(),
		form.WithOptions("supplier_id", supplierOpts),
		form.WithOptions("product", productOpts))
	if err != nil {
		zap.L().Error("render payment form", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h := view.NewHead("Schedule payment – PetManager")
	if succeeded {
		h.Meta(`<meta http-equiv="refresh" content="1.5;url=/payments">`)
	}
	data := map[string]any{
		"Head":      h,
		"Form":      html,
		"FormError": errMsg,
		"Succeeded": succeeded,
	}
	if err := view.Render(w, r, "payment", "new", data, view.CacheDefault); err != nil {
		zap.L().Error("render payment new page", zap.Error(err))
	}
}
