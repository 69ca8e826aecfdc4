// internal/api/roles.go
//
// Role administration, nested under the users resource on the backend.

package api

import (
	"context"
	"net/http"
	"strconv"
)

// Roles returns every role defined on the backend.
func (c *Client) Roles(ctx context.Context) ([]Role, error) {
	var out []Role
	if err := c.do(ctx, http.MethodGet, "/api/users/roles", "/api/users/roles", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateRole defines a new role.
func (c *Client) CreateRole(ctx context.Context, req CreateRole) (Role, error) {
	var out Role
	err := c.do(ctx, http.MethodPost, "/api/users/roles", "/api/users/roles", nil, req, &out)
	return out, err
}

// UpdateRole renames or re-describes a role.
func (c *Client) UpdateRole(ctx context.Context, id int, req CreateRole) (Role, error) {
	var out Role
	err := c.do(ctx, http.MethodPut, "/api/users/roles/{id}", "/api/users/roles/"+strconv.Itoa(id), nil, req, &out)
	return out, err
}

// DeleteRole removes a role.
func (c *Client) DeleteRole(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/api/users/roles/{id}", "/api/users/roles/"+strconv.Itoa(id), nil, nil, nil)
}
