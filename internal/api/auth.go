// internal/api/auth.go
//
// Registration and login against the backend's auth endpoints.

package api

import (
	"context"
	"net/http"
)

// Register creates a console account.  The backend answers 204 on
// success, so there is nothing to decode.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/api/auth/register", "/api/auth/register", nil, req, nil)
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	var out LoginResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", "/api/auth/login", nil, req, &out)
	return out, err
}
