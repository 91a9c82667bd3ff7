package middleware

import (
	"context"
	"net/http"

	"github.com/edustream/backend/internal/auth/service"
)

// OptionalAuthMiddleware extracts identity when a valid token is present
// and lets anonymous requests through. Handlers behind it must treat a
// missing user ID as an anonymous caller.
func OptionalAuthMiddleware(tokenGenerator *service.TokenGenerator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, role, err := tokenGenerator.ValidateAccessToken(token)
			if err != nil {
				// An invalid token degrades to anonymous access
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			ctx = context.WithValue(ctx, roleKey, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
