package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/lmarchuk/translix/internal/models"
	"github.com/lmarchuk/translix/internal/server/auth"
)

type ctxKey string

const (
	emailKey ctxKey = "email"
	roleKey  ctxKey = "role"
)

// authMiddleware validates the Authorization header and attaches the caller
// identity to the request context.
func (h *Handler) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeError(w, http.StatusUnauthorized, "missing or invalid token")
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		email, role, err := auth.IdentityFromToken(tokenString, h.jwtSecret)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), emailKey, email)
		ctx = context.WithValue(ctx, roleKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// adminOnly rejects callers whose token does not carry the admin role.
func (h *Handler) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if callerRole(r.Context()) != models.RoleAdmin {
			writeError(w, http.StatusForbidden, "admin role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func callerEmail(ctx context.Context) string {
	email, _ := ctx.Value(emailKey).(string)
	return email
}

func callerRole(ctx context.Context) models.Role {
	role, _ := ctx.Value(roleKey).(models.Role)
	return role
}
