package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	h "secretsanta/internal/delivery/http/helpers"
	"secretsanta/internal/domain"
)

type contextKey string

const organizerKey contextKey = "organizer"

// SetOrganizer returns a context carrying the authenticated organizer.
func SetOrganizer(ctx context.Context, organizer string) context.Context {
	return context.WithValue(ctx, organizerKey, organizer)
}

// OrganizerFromContext returns the authenticated organizer from the context, if present.
func OrganizerFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(organizerKey).(string)
	return id, ok
}

// RequireAuth returns a wrapper that validates the Bearer token and sets the organizer in the request context.
// If the token is missing or invalid, it responds with 401 and does not call next.
// A nil verifier disables authentication.
func RequireAuth(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		if verifier == nil {
			return next
		}
		return func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing authorization header")
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid authorization format")
				return
			}
			token := strings.TrimSpace(auth[len(prefix):])
			if token == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing token")
				return
			}
			organizer, err := verifier.Verify(token)
			if err != nil {
				logger.DebugContext(r.Context(), "token rejected", "err", err)
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			r = r.WithContext(SetOrganizer(r.Context(), organizer))
			next(w, r)
		}
	}
}
