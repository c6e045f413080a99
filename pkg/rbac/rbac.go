// Package rbac guards routes by the role claim that middleware.Auth puts in
// the request context.
package rbac

import (
	"net/http"

	"github.com/xcursi322/prakt/pkg/middleware"
	"github.com/xcursi322/prakt/pkg/response"
)

// Role names carried in API tokens.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// RoleFor maps the customer admin flag to a token role.
func RoleFor(isAdmin bool) string {
	if isAdmin {
		return RoleAdmin
	}
	return RoleCustomer
}

// HasRole allows the request only when the token role is one of roles.
// middleware.Auth must run first.
func HasRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := middleware.RoleFromCtx(r)
			if !ok || !allowed[role] {
				response.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
