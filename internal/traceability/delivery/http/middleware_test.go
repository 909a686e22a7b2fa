package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"github.com/openorigin/traceability/pkg/auth"
)

func authRouter(t *testing.T) *mux.Router {
	t.Helper()
	router := mux.NewRouter()
	router.Use(AuthMiddleware())
	router.HandleFunc("/api/actors/{actor_id}/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return router
}

func mustToken(t *testing.T, actorID, role string) string {
	t.Helper()
	token, err := auth.GenerateToken(actorID, role)
	if err != nil {
		t.Fatalf("generating token: %v", err)
	}
	return token
}

func TestAuthMiddleware(t *testing.T) {
	router := authRouter(t)

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"non-api path skips auth", "/healthz", "", http.StatusOK},
		{"missing header", "/api/actors/farm-1/ping", "", http.StatusUnauthorized},
		{"malformed header", "/api/actors/farm-1/ping", "Token abc", http.StatusUnauthorized},
		{"garbage token", "/api/actors/farm-1/ping", "Bearer not.a.jwt", http.StatusUnauthorized},
		{"matching actor", "/api/actors/farm-1/ping", "Bearer " + mustToken(t, "farm-1", "operator"), http.StatusOK},
		{"foreign actor", "/api/actors/farm-1/ping", "Bearer " + mustToken(t, "farm-2", "operator"), http.StatusForbidden},
		{"admin crosses actors", "/api/actors/farm-1/ping", "Bearer " + mustToken(t, "farm-2", "admin"), http.StatusOK},
		{"service token without actor", "/api/actors/farm-1/ping", "Bearer " + mustToken(t, "", "service"), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d (%s)", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestAuthMiddlewarePutsClaimsInContext(t *testing.T) {
	router := mux.NewRouter()
	router.Use(AuthMiddleware())

	var gotActor, gotRole string
	router.HandleFunc("/api/actors/{actor_id}/ping", func(w http.ResponseWriter, r *http.Request) {
		gotActor, _ = r.Context().Value(ActorIDKey).(string)
		gotRole, _ = r.Context().Value(RoleKey).(string)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/actors/farm-9/ping", nil)
	req.Header.Set("Authorization", "Bearer "+mustToken(t, "farm-9", "operator"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotActor != "farm-9" || gotRole != "operator" {
		t.Fatalf("claims not propagated: actor=%q role=%q", gotActor, gotRole)
	}
}
