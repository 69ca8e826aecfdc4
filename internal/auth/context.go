// internal/auth/context.go
//
// Request-scoped operator identity.
//
// Usage
// -----
//     // Attach the operator after the session resolves.
//     ctx = auth.WithOperator(ctx, "ana@petshop.co")
//
//     // Downstream code retrieves the email.
//     email, ok := auth.Operator(ctx)
//
// Notes
// -----
// • Stores the email directly in context.  The backend bearer token
//   travels separately via api.WithToken, so handlers that never call
//   the gateway do not carry it.

package auth

import "context"

// operatorKey is unexported to avoid context-key collisions.
type operatorKey struct{}

// WithOperator returns a new context carrying the operator's email.
func WithOperator(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, operatorKey{}, email)
}

// Operator extracts the operator email from ctx.  It returns ("", false)
// when no operator is attached.
func Operator(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(operatorKey{}).(string)
	return v, ok && v != ""
}
