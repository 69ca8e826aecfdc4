// internal/acl/middleware.go
//
// Chi middleware helpers that enforce role-based access.

package acl

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/Fabrica-Escuela-PetManager/front-petmanager/internal/auth"
)

// RequireRole ensures the current operator holds ANY of the supplied
// roles.  The session middleware must run first; requests with no
// operator in context get a 401, failed lookups a 500, and operators
// without a matching role a 403.
func RequireRole(store *Store, names ...string) func(http.Handler) http.Handler {
	if len(names) == 0 {
		panic("acl.RequireRole: at least one role name must be supplied")
	}
	allowSet := make(map[string]struct{}, len(names))
	for _, n := range names {
		allowSet[n] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, ok := auth.Operator(r.Context())
			if !ok {
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}

			role, err := store.Role(r.Context(), email)
			if errors.Is(err, ErrUnknownOperator) {
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}
			if err != nil {
				zap.L().Error("acl role lookup", zap.String("email", email), zap.Error(err))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			if _, ok := allowSet[role]; ok {
				next.ServeHTTP(w, r)
				return
			}
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		})
	}
}
