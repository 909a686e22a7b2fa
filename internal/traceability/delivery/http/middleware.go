package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/openorigin/traceability/pkg/auth"
)

type contextKey string

const (
	ActorIDKey contextKey = "actor_id"
	RoleKey    contextKey = "role"
)

// AuthMiddleware validates JWT bearer tokens on /api routes and enforces
// actor scope: a token bound to an actor may only touch that actor's
// resources. Admin tokens and tokens without an actor binding pass
// through.
func AuthMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasPrefix(r.URL.Path, "/api/") {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondJSON(w, http.StatusUnauthorized, Response{
					Success: false,
					Error:   "Authorization header required",
				})
				return
			}

			// Extract token from "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				respondJSON(w, http.StatusUnauthorized, Response{
					Success: false,
					Error:   "Invalid authorization header format",
				})
				return
			}

			claims, err := auth.ValidateToken(parts[1])
			if err != nil {
				respondJSON(w, http.StatusUnauthorized, Response{
					Success: false,
					Error:   "Invalid token",
				})
				return
			}

			if pathActor := mux.Vars(r)["actor_id"]; pathActor != "" &&
				claims.ActorID != "" && claims.ActorID != pathActor && claims.Role != "admin" {
				respondJSON(w, http.StatusForbidden, Response{
					Success: false,
					Error:   "Token is not valid for this actor",
				})
				return
			}

			// Add claims to context
			ctx := context.WithValue(r.Context(), ActorIDKey, claims.ActorID)
			ctx = context.WithValue(ctx, RoleKey, claims.Role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
