package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"littlelemon/internal/auth"
	"littlelemon/internal/storage"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// actorKey is the context key for the authenticated actor.
const actorKey contextKey = "actor"

// ActorFrom extracts the authenticated actor from the context.
func ActorFrom(ctx context.Context) (auth.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(auth.Actor)
	return actor, ok
}

// WithActor returns a context carrying the actor. Exposed for tests.
func WithActor(ctx context.Context, actor auth.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// RequireAuth validates the Bearer token and builds the request's Actor.
// Roles are read from storage on every request, not from the token, so a
// roster removal takes effect immediately.
func RequireAuth(jwtManager *auth.JWTManager, store storage.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeAuthError(w, auth.ErrMissingToken)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeAuthError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := jwtManager.Validate(parts[1])
			if err != nil {
				writeAuthError(w, auth.ErrInvalidToken)
				return
			}

			user, err := store.GetUserByID(r.Context(), claims.UserID)
			if err != nil {
				// Token subject no longer exists; treat as a bad token.
				writeAuthError(w, auth.ErrInvalidToken)
				return
			}
			roles, err := store.GetUserRoles(r.Context(), user.ID)
			if err != nil {
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}

			actor := auth.NewActor(user.ID, user.Username, user.Superuser, roles)
			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

func writeAuthError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
