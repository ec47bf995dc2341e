package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/eventease/server/internal/api/problem"
	"github.com/eventease/server/internal/domain/auth"
	"github.com/eventease/server/internal/domain/sessions"
)

const sessionKey contextKey = "session"

// RequireSession authenticates requests with a bearer token. The token
// carries a session id; the session store decides whether it is still live.
// Authenticated requests refresh the session's activity timestamp and carry
// the session in their context.
func RequireSession(tokens *auth.TokenManager, manager *sessions.Manager, env string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := auth.TokenFromHeader(r.Header.Get("Authorization"))
			if err != nil {
				problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Unauthorized", err, env)
				return
			}

			claims, err := tokens.Validate(raw)
			if err != nil {
				problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Unauthorized", err, env)
				return
			}

			session, err := manager.Get(r.Context(), claims.Subject)
			if err != nil {
				problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Unauthorized",
					errors.New("session is no longer active"), env)
				return
			}

			manager.Touch(r.Context(), session.ID)

			ctx := context.WithValue(r.Context(), sessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithSession returns a context carrying the session, exactly as
// RequireSession stores it.
func WithSession(ctx context.Context, session sessions.Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// SessionFromContext returns the session placed by RequireSession.
func SessionFromContext(ctx context.Context) (sessions.Session, bool) {
	session, ok := ctx.Value(sessionKey).(sessions.Session)
	return session, ok
}
