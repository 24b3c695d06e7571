package middleware

import (
	"context"
	"net/http"

	"github.com/fintrackr/fintrackr/internal/auth"
	"github.com/fintrackr/fintrackr/internal/domain"
	"github.com/fintrackr/fintrackr/internal/logger"
	"github.com/fintrackr/fintrackr/internal/store"
)

// AuthCookieName is the cookie carrying the session token.
const AuthCookieName = "token"

type contextKey string

const userKey contextKey = "user"

// Auth authenticates requests from the session cookie: it verifies the JWT,
// loads the user, and attaches it to the request context. Requests without a
// valid session are rejected with 401.
func Auth(tokens *auth.TokenManager, users store.UserStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(AuthCookieName)
			if err != nil || cookie.Value == "" {
				WriteError(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			userID, err := tokens.Verify(cookie.Value)
			if err != nil {
				WriteError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				WriteError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			ctx := WithUser(r.Context(), user)
			scoped := logger.FromContext(ctx).With().Str("user_id", user.ID).Logger()
			next.ServeHTTP(w, r.WithContext(logger.WithContext(ctx, scoped)))
		})
	}
}

// WithUser attaches the authenticated user to the context.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the authenticated user attached by Auth.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userKey).(*domain.User)
	return user, ok
}
