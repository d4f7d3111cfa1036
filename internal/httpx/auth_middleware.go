package httpx

import (
	"log/slog"
	"net/http"
	"strings"

	"holidaykeeper/internal/platform/crypto"
)

// RequireRole guards write routes with an HS256 bearer token carrying role.
// An empty secret disables the check.
func RequireRole(secret, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if secret == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Missing bearer token", nil)
				return
			}
			token := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := crypto.ParseToken(secret, token)
			if err != nil {
				slog.Debug("token_rejected", "request_id", RequestIDFrom(r), "error", err)
				JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token", nil)
				return
			}
			if claims.Role != role {
				JSONError(w, r, http.StatusForbidden, "FORBIDDEN", "Insufficient role", nil)
				return
			}

			ctx := ContextWithSubject(r.Context(), claims.Sub, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
