// internal/api/suppliers.go
//
// Supplier CRUD plus the NIT-uniqueness precheck the new-provider form
// runs before it will submit.

package api

import (
	"context"
	"net/http"
	"strconv"
)

// Suppliers returns every registered supplier.
func (c *Client) Suppliers(ctx context.Context) ([]Supplier, error) {
	var out []Supplier
	if err := c.do(ctx, http.MethodGet, "/api/suppliers", "/api/suppliers", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Supplier fetches one supplier by ID.
func (c *Client) Supplier(ctx context.Context, id int) (Supplier, error) {
	var out Supplier
	err := c.do(ctx, http.MethodGet, "/api/suppliers/{id}", "/api/suppliers/"+strconv.Itoa(id), nil, nil, &out)
	return out, err
}

// CreateSupplier registers a new supplier and returns the stored record.
func (c *Client) CreateSupplier(ctx context.Context, req CreateSupplier) (Supplier, error) {
	var out Supplier
	err := c.do(ctx, http.MethodPost, "/api/suppliers", "/api/suppliers", nil, req, &out)
	return out, err
}

// UpdateSupplier applies a partial update to a supplier.
func (c *Client) UpdateSupplier(ctx context.Context, id int, req UpdateSupplier) (Supplier, error) {
	var out Supplier
	err := c.do(ctx, http.MethodPut, "/api/suppliers/{id}", "/api/suppliers/"+strconv.Itoa(id), nil, req, &out)
	return out, err
}

// DeleteSupplier removes a supplier.
func (c *Client) DeleteSupplier(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/api/suppliers/{id}", "/api/suppliers/"+strconv.Itoa(id), nil, nil, nil)
}

// NitExists reports whether a supplier with the given NIT is already
// registered.  The new-provider form calls this before submitting so the
// operator sees the conflict as a field message rather than a backend
// error.
func (c *Client) NitExists(ctx context.Context, nit string) (bool, error) {
	var out bool
	err := c.do(ctx, http.MethodGet, "/api/suppliers/exists/nit/{nit}", "/api/suppliers/exists/nit/"+nit, nil, nil, &out)
	return out, err
}
