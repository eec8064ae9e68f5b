package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/iho/pocketbank/internal/domain"
)

func TestActor(t *testing.T) {
	var (
		actor string
		meta  domain.RequestMeta
	)
	handler := chimw.RequestID(Actor(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor = domain.ActorFromContext(r.Context())
		meta = domain.RequestMetaFromContext(r.Context())
	})))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", nil)
	req.Header.Set(UserIDHeader, "admin-1")
	req.Header.Set("User-Agent", "pocketbank-test")
	req.RemoteAddr = "192.0.2.1:1234"
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if actor != "admin-1" {
		t.Fatalf("expected actor admin-1, got %q", actor)
	}
	if meta.IPAddress != "192.0.2.1" || meta.UserAgent != "pocketbank-test" {
		t.Fatalf("unexpected request meta %+v", meta)
	}
	if meta.RequestID == "" {
		t.Fatal("expected request id to be captured")
	}
}

func TestActor_DefaultsToSystem(t *testing.T) {
	var actor string
	handler := Actor(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor = domain.ActorFromContext(r.Context())
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if actor != domain.SystemActor {
		t.Fatalf("expected %q, got %q", domain.SystemActor, actor)
	}
}
