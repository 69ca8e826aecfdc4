// internal/api/payments.go
//
// Payment scheduling and history endpoints.

package api

import (
	"context"
	"net/http"
	"strconv"
)

// CreatePayment schedules a payment for a supplier.
func (c *Client) CreatePayment(ctx context.Context, req CreatePayment) (Payment, error) {
	var out Payment
	err := c.do(ctx, http.MethodPost, "/api/payments", "/api/payments", nil, req, &out)
	return out, err
}

// SupplierPayments returns every payment recorded for a supplier.
func (c *Client) SupplierPayments(ctx context.Context, supplierID int) (SupplierPayments, error) {
	var out SupplierPayments
	route := "/api/payments/supplier/{id}"
	err := c.do(ctx, http.MethodGet, route, "/api/payments/supplier/"+strconv.Itoa(supplierID), nil, nil, &out)
	return out, err
}

// LastAndNextPayment returns the most recent settled payment and the
// nearest scheduled one for a supplier.  Both may be absent.
func (c *Client) LastAndNextPayment(ctx context.Context, supplierID int) (LastAndNextPayment, error) {
	var out LastAndNextPayment
	route := "/api/payments/supplier/{id}/last-and-next"
	path := "/api/payments/supplier/" + strconv.Itoa(supplierID) + "/last-and-next"
	err := c.do(ctx, http.MethodGet, route, path, nil, nil, &out)
	return out, err
}

// PaymentConditions returns the catalogue of payment schedules a
// supplier can be registered under.
func (c *Client) PaymentConditions(ctx context.Context) ([]PaymentCondition, error) {
	var out PaymentConditions
	if err := c.do(ctx, http.MethodGet, "/api/payments/conditions", "/api/payments/conditions", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.PaymentConditions, nil
}
