// internal/api/users.go
//
// Console account administration.  User listings are schema-checked
// after decoding; the admin views trust these shapes.

package api

import (
	"context"
	"net/http"
	"strconv"
)

// Users returns every console account.
func (c *Client) Users(ctx context.Context) ([]User, error) {
	var out []User
	if err := c.do(ctx, http.MethodGet, "/api/users", "/api/users", nil, nil, &out); err != nil {
		return nil, err
	}
	if err := c.checkSlice("/api/users", out); err != nil {
		return nil, err
	}
	return out, nil
}

// User fetches one console account by ID.
func (c *Client) User(ctx context.Context, id int) (User, error) {
	var out User
	if err := c.do(ctx, http.MethodGet, "/api/users/{id}", "/api/users/"+strconv.Itoa(id), nil, nil, &out); err != nil {
		return User{}, err
	}
	if err := c.checkStruct("/api/users/{id}", out); err != nil {
		return User{}, err
	}
	return out, nil
}

// CreateUser registers a console account on behalf of an administrator.
func (c *Client) CreateUser(ctx context.Context, req CreateUser) (User, error) {
	var out User
	err := c.do(ctx, http.MethodPost, "/api/users", "/api/users", nil, req, &out)
	return out, err
}

// UpdateUser applies a partial update to a console account.
func (c *Client) UpdateUser(ctx context.Context, id int, req UpdateUser) (User, error) {
	var out User
	err := c.do(ctx, http.MethodPut, "/api/users/{id}", "/api/users/"+strconv.Itoa(id), nil, req, &out)
	return out, err
}

// DeleteUser removes a console account.
func (c *Client) DeleteUser(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/api/users/{id}", "/api/users/"+strconv.Itoa(id), nil, nil, nil)
}
