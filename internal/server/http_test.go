package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"account-credential-service/internal/auth/service"
	"account-credential-service/internal/config"
	"account-credential-service/internal/security"
	"account-credential-service/internal/user/domain"
)

type nilRepo struct{}

func (nilRepo) FindByEmail(context.Context, string) (*domain.User, error) { return nil, nil }
func (nilRepo) FindByEmailOrMobile(context.Context, string, string) (*domain.User, error) {
	return nil, nil
}
func (nilRepo) FindByResetDigest(context.Context, string) (*domain.User, error) { return nil, nil }
func (nilRepo) Insert(ctx context.Context, u *domain.User) (*domain.User, error) {
	u2 := *u
	u2.ID = "u1"
	return &u2, nil
}
func (nilRepo) SetResetToken(context.Context, string, string, time.Time) error { return nil }
func (nilRepo) ConsumeResetToken(context.Context, string, string, string) (bool, error) {
	return false, nil
}

type nopMailer struct{}

func (nopMailer) SendPasswordReset(string, string) error { return nil }

func newTestServer() *Server {
	cfg := &config.Config{HTTPAddr: ":0"}
	svc := service.NewAuthService(
		nilRepo{},
		security.NewHasher(4),
		security.NewResetTokenManager(time.Hour),
		security.NewTokenProvider([]byte("test-secret"), "account-credential-service", time.Hour),
		nopMailer{},
		nil,
		slog.Default(),
	)
	return New(cfg, slog.Default(), svc)
}

func TestHealthRoutes(t *testing.T) {
	srv := newTestServer()
	for _, path := range []string{"/", "/api"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		srv.Router().ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", path, w.Code)
			continue
		}
		var resp map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("GET %s: decode: %v", path, err)
		}
		if resp["status"] != "ok" {
			t.Errorf("GET %s status field = %v, want ok", path, resp["status"])
		}
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer()
	req := httptest.NewRequest(http.MethodOptions, "/api/auth/signup", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d, want 204", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}

func TestAuthRoutesMounted(t *testing.T) {
	srv := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/test", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/auth/test status = %d, want 200", w.Code)
	}
}
