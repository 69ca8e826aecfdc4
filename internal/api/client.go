// internal/api/client.go
//
// Typed HTTP gateway to the PetManager backend.
//
/*
Context
--------
Every console feature talks to the remote REST backend through this
client.  One method per endpoint lives in the sibling files (auth.go,
suppliers.go, products.go, payments.go, users.go, roles.go); this file
holds the shared plumbing:

  • request payloads are struct-validated (go-playground/validator tags)
    BEFORE the wire, so a payload that reaches the backend has already
    satisfied its schema,
  • the bearer token travels in the request context (WithToken) and is
    attached as an Authorization header when present,
  • each call carries an X-Request-Id (UUID) echoed into logs and errors,
  • latency and outcome are observed per route template, and
  • non-2xx responses decode into *Error with the server's message.

No automatic retries: a failed submission is surfaced once and the user
decides whether to resubmit.  The transport timeout is the only deadline
this layer applies.

Notes
-----
  • Route templates (“/api/suppliers/{id}”) keep metric cardinality flat.
  • Oxford commas, two spaces after periods.
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/metrics"
)

// Client is safe for concurrent use.  Create once at startup.
type Client struct {
	base     *url.URL
	http     *http.Client
	validate *validator.Validate
}

// New builds a gateway client for the backend at baseURL.  timeout bounds
// the whole request, including body read.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("api: parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("api: base url %q needs scheme and host", baseURL)
	}
	return &Client{
		base:     u,
		http:     &http.Client{Timeout: timeout},
		validate: validator.New(),
	}, nil
}

//
// token plumbing
//

type tokenKey struct{}

// WithToken returns a context whose gateway calls authenticate as the
// session holding tok.
func WithToken(ctx context.Context, tok string) context.Context {
	return context.WithValue(ctx, tokenKey{}, tok)
}

func tokenFrom(ctx context.Context) (string, bool) {
	tok, ok := ctx.Value(tokenKey{}).(string)
	return tok, ok && tok != ""
}

//
// request core
//

// do executes one backend call.  route is the metric/log template, path
// the concrete URL path.  in (optional) is validated and sent as JSON;
// out (optional) receives the decoded response body.
func (c *Client) do(ctx context.Context, method, route, path string, query url.Values, in, out any) error {
	if in != nil {
		if err := c.validate.Struct(in); err != nil {
			return fmt.Errorf("api: %s payload: %w", route, err)
		}
	}

	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("api: %s encode: %w", route, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("api: %s build request: %w", route, err)
	}

	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", reqID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok, ok := tokenFrom(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	elapsed := time.Since(start)
	metrics.GatewayDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())

	if err != nil {
		metrics.GatewayRequests.WithLabelValues(method, route, "error").Inc()
		zap.S().Warnw("gateway transport failure",
			"method", method, "route", route, "request_id", reqID, "err", err)
		return &Error{Status: 0, RequestID: reqID, Route: route}
	}
	defer resp.Body.Close()

	metrics.GatewayRequests.WithLabelValues(method, route, statusClass(resp.StatusCode)).Inc()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: %s read body: %w", route, err)
	}

	if resp.StatusCode >= 400 {
		apiErr := decodeError(route, reqID, resp.StatusCode, raw)
		zap.S().Warnw("gateway rejected call",
			"method", method, "route", route, "request_id", reqID,
			"status", resp.StatusCode, "server_message", apiErr.Message,
			"elapsed", elapsed)
		return apiErr
	}

	zap.S().Debugw("gateway call",
		"method", method, "route", route, "request_id", reqID,
		"status", resp.StatusCode, "elapsed", elapsed)

	if out != nil && resp.StatusCode != http.StatusNoContent && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("api: %s decode: %w", route, err)
		}
	}
	return nil
}

// checkSlice validates each element of a decoded slice response, mirroring
// the schema check some endpoints apply to what the backend returns.
func (c *Client) checkSlice(route string, v any) error {
	if err := c.validate.Var(v, "dive"); err != nil {
		return fmt.Errorf("api: %s response: %w", route, err)
	}
	return nil
}

func (c *Client) checkStruct(route string, v any) error {
	if err := c.validate.Struct(v); err != nil {
		return fmt.Errorf("api: %s response: %w", route, err)
	}
	return nil
}

func statusClass(code int) string {
	return strconv.Itoa(code/100) + "xx"
}
