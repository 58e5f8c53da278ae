// Package middleware provides HTTP middleware for the API server.
package middleware

import (
	"net/http"
	"strings"

	"orgsphere/backend/internal/security"
	"orgsphere/backend/internal/server/respond"
)

const bearerPrefix = "bearer "

// RequireSession validates the Bearer session token from the Authorization
// header and sets admin_id, email, and organization in the request context.
// Requests with a missing, malformed, invalid, or expired token get 401.
func RequireSession(tokens *security.TokenProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearer(r)
			if token == "" {
				respond.Error(w, http.StatusUnauthorized, "missing authentication token")
				return
			}
			claims, err := tokens.ValidateSession(token)
			if err != nil {
				respond.Error(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			ctx := WithIdentity(r.Context(), claims.Subject, claims.Email, claims.Organization)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearer returns the Bearer token from the request, or "" if missing or malformed.
func extractBearer(r *http.Request) string {
	v := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(v) < len(bearerPrefix) {
		return ""
	}
	if !strings.EqualFold(v[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(v[len(bearerPrefix):])
}
