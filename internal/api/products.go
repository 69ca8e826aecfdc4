// internal/api/products.go
//
// Product catalogue and supplier-product association endpoints.  Product
// listings are schema-checked after decoding because the detail views
// render them without further guards.

package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Products returns the full product catalogue.
func (c *Client) Products(ctx context.Context) ([]Product, error) {
	var out []Product
	if err := c.do(ctx, http.MethodGet, "/api/products", "/api/products", nil, nil, &out); err != nil {
		return nil, err
	}
	if err := c.checkSlice("/api/products", out); err != nil {
		return nil, err
	}
	return out, nil
}

// SupplierProducts returns the products linked to one supplier.
func (c *Client) SupplierProducts(ctx context.Context, supplierID int) (SupplierProducts, error) {
	var out SupplierProducts
	route := "/api/products/supplier/{id}"
	err := c.do(ctx, http.MethodGet, route, "/api/products/supplier/"+strconv.Itoa(supplierID), nil, nil, &out)
	return out, err
}

// LinkSupplierProduct associates an existing product with a supplier.
func (c *Client) LinkSupplierProduct(ctx context.Context, supplierID, productID int) (SupplierProductLink, error) {
	var out SupplierProductLink
	q := url.Values{}
	q.Set("supplierId", strconv.Itoa(supplierID))
	q.Set("productId", strconv.Itoa(productID))
	err := c.do(ctx, http.MethodPost, "/api/products/supplier-product", "/api/products/supplier-product", q, nil, &out)
	return out, err
}

// UnlinkSupplierProduct removes a supplier-product association.
func (c *Client) UnlinkSupplierProduct(ctx context.Context, linkID int) error {
	route := "/api/products/supplier-product/{id}"
	return c.do(ctx, http.MethodDelete, route, "/api/products/supplier-product/"+strconv.Itoa(linkID), nil, nil, nil)
}
