package middleware

import (
	"net/http"

	"go-clinic-management/internal/domain/entity"
	"go-clinic-management/internal/policy"
	"go-clinic-management/pkg/response"
)

// RequireRoles creates a middleware that checks the principal's role name
// against the allowed set. The denial carries no detail about which rule
// failed.
func RequireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := GetPrincipalFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Authentication required")
				return
			}

			if !policy.RequireRole(principal, roles...) {
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin gates user, role and specialty administration
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRoles(entity.RoleAdmin)(next)
}
