package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/xcursi322/prakt/pkg/auth"
	"github.com/xcursi322/prakt/pkg/response"
)

type authKey struct{}

type principal struct {
	userID uint
	role   string
}

// Auth validates the bearer token and stores the customer id and role in the
// request context for UserIDFromCtx / RoleFromCtx.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			response.Unauthorized(w)
			return
		}

		claims, err := auth.ValidateToken(strings.TrimSpace(token))
		if err != nil {
			response.Error(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := WithPrincipal(r.Context(), claims.UserID, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithPrincipal stores an authenticated identity in ctx.
func WithPrincipal(ctx context.Context, userID uint, role string) context.Context {
	return context.WithValue(ctx, authKey{}, principal{userID: userID, role: role})
}

// UserIDFromCtx returns the authenticated customer id set by Auth.
func UserIDFromCtx(r *http.Request) (uint, bool) {
	p, ok := r.Context().Value(authKey{}).(principal)
	if !ok || p.userID == 0 {
		return 0, false
	}
	return p.userID, true
}

// RoleFromCtx returns the role claim set by Auth.
func RoleFromCtx(r *http.Request) (string, bool) {
	p, ok := r.Context().Value(authKey{}).(principal)
	if !ok || p.role == "" {
		return "", false
	}
	return p.role, true
}
