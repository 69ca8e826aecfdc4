// internal/api/client_test.go
//
// Gateway client tests against an httptest backend: header plumbing,
// error-envelope decoding, payload validation, and the NIT probe.
//
// Run: go test ./internal/api -v

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL, 5*time.Second)
	require.NoError(t, err)
	return c
}

func TestNewRejectsBadBaseURL(t *testing.T) {
	_, err := New("not-a-url", time.Second)
	require.Error(t, err)
}

func TestLoginDecodesToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "ana@petshop.co", req.Email)

		json.NewEncoder(w).Encode(LoginResponse{AccessToken: "tok-123"})
	})

	resp, err := c.Login(context.Background(), LoginRequest{
		Email:    "ana@petshop.co",
		Password: "P@ssw0rd",
	})
	require.NoError(t, err)
	require.Equal(t, "tok-123", resp.AccessToken)
}

func TestBearerAndRequestIDHeaders(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		require.NotEmpty(t, r.Header.Get("X-Request-Id"))
		json.NewEncoder(w).Encode([]Supplier{})
	})

	ctx := WithToken(context.Background(), "tok-123")
	_, err := c.Suppliers(ctx)
	require.NoError(t, err)
}

func TestNoAuthorizationWithoutToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Empty(t, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]Supplier{})
	})

	_, err := c.Suppliers(context.Background())
	require.NoError(t, err)
}

func TestErrorEnvelopeFlat(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"Email is already registered."}`))
	})

	err := c.Register(context.Background(), RegisterRequest{
		IDNumber: "1234567", IDType: "CC", Name: "Ana",
		PhoneNumber: "3001234567", Email: "ana@petshop.co", Password: "P@ssw0rd",
	})
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusConflict, apiErr.Status)
	require.Equal(t, "Email is already registered.", apiErr.UserMessage())
}

func TestErrorEnvelopeNested(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Invalid payment date."}}`))
	})

	_, err := c.Suppliers(context.Background())
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "Invalid payment date.", apiErr.UserMessage())
}

func TestErrorEnvelopeUnparseableFallsBack(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>Bad Gateway</html>"))
	})

	_, err := c.Suppliers(context.Background())
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, GenericUserMessage, apiErr.UserMessage())
}

func TestIsNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"supplier not found"}`, http.StatusNotFound)
	})

	_, err := c.Supplier(context.Background(), 99)
	require.True(t, IsNotFound(err))
}

func TestRegisterValidatesPayloadLocally(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	})

	// Missing email must fail client-side validation before any request.
	err := c.Register(context.Background(), RegisterRequest{
		IDNumber: "1234567", IDType: "CC", Name: "Ana",
		PhoneNumber: "3001234567", Password: "P@ssw0rd",
	})
	require.Error(t, err)
	require.False(t, called)
}

func TestNitExists(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/suppliers/exists/nit/900123456", r.URL.Path)
		w.Write([]byte("true"))
	})

	exists, err := c.NitExists(context.Background(), "900123456")
	require.NoError(t, err)
	require.True(t, exists)
}

func TestPaymentConditionsUnwrapsEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/payments/conditions", r.URL.Path)
		w.Write([]byte(`{"paymentConditions":[{"id":1,"name":"NET_30"},{"id":2,"name":"NET_60"}]}`))
	})

	conds, err := c.PaymentConditions(context.Background())
	require.NoError(t, err)
	require.Len(t, conds, 2)
	require.Equal(t, "NET_30", conds[0].Name)
}

func TestLinkSupplierProductQueryParams(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "7", r.URL.Query().Get("supplierId"))
		require.Equal(t, "3", r.URL.Query().Get("productId"))
		json.NewEncoder(w).Encode(SupplierProductLink{ID: 11})
	})

	link, err := c.LinkSupplierProduct(context.Background(), 7, 3)
	require.NoError(t, err)
	require.Equal(t, 11, link.ID)
}
