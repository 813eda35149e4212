package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"bettertomorrow/internal/delivery/http/helpers"
	"bettertomorrow/internal/domain"
)

type contextKey string

const principalKey contextKey = "principal"

// SetPrincipal returns a context with the verified principal email set.
// Used by the auth middleware and by handler tests.
func SetPrincipal(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, principalKey, email)
}

// PrincipalFromContext returns the verified principal email from the context,
// if present.
func PrincipalFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(principalKey).(string)
	return email, ok
}

// RequireAuth returns a wrapper that validates the Bearer token and sets the
// principal email in the request context. If the token is missing or invalid,
// it responds with 401 and does not call next.
func RequireAuth(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "missing authorization header")
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "invalid authorization format")
				return
			}
			token := strings.TrimSpace(auth[len(prefix):])
			if token == "" {
				helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "missing token")
				return
			}
			email, err := verifier.Verify(token)
			if err != nil {
				logger.WarnContext(r.Context(), "token verification failed", "path", r.URL.Path, "err", err)
				helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			r = r.WithContext(SetPrincipal(r.Context(), email))
			next(w, r)
		}
	}
}
