package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/canpai/canpai/internal/config"
	"github.com/canpai/canpai/internal/security"
)

func newTestSecurity() *security.Manager {
	return security.NewManager(&config.AuthConfig{
		JWTSecret:   "test-secret",
		TokenExpiry: time.Hour,
		BcryptCost:  4,
	})
}

func TestAuthMiddleware_SkipPath(t *testing.T) {
	sec := newTestSecurity()
	mw := AuthMiddleware(&AuthConfig{Security: sec, SkipPaths: []string{"/health"}})

	called := false
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if !called {
		t.Error("跳过路径应直接放行")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, expected 200", rec.Code)
	}
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	sec := newTestSecurity()
	mw := AuthMiddleware(&AuthConfig{Security: sec})

	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("缺少令牌不应放行")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stores", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, expected 401", rec.Code)
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	sec := newTestSecurity()
	mw := AuthMiddleware(&AuthConfig{Security: sec})

	staffID := uuid.New()
	token, err := sec.IssueToken(&security.Claims{
		AccountID: uuid.New(),
		Username:  "tencho",
		StaffID:   &staffID,
		IsManager: true,
	})
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	var got *security.Claims
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = ClaimsFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stores", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", rec.Code)
	}
	if got == nil || got.Username != "tencho" {
		t.Error("上下文中应携带登录声明")
	}
}

func TestRequireManager(t *testing.T) {
	h := RequireManager(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// 没有声明
	req := httptest.NewRequest(http.MethodPost, "/api/v1/requirements", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("无声明 status = %d, expected 403", rec.Code)
	}

	// 非管理者
	sec := newTestSecurity()
	mw := AuthMiddleware(&AuthConfig{Security: sec})
	token, _ := sec.IssueToken(&security.Claims{AccountID: uuid.New(), Username: "staff"})

	chained := mw(h)
	req = httptest.NewRequest(http.MethodPost, "/api/v1/requirements", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	chained.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("非管理者 status = %d, expected 403", rec.Code)
	}

	// 管理者
	token, _ = sec.IssueToken(&security.Claims{AccountID: uuid.New(), Username: "boss", IsManager: true})
	req = httptest.NewRequest(http.MethodPost, "/api/v1/requirements", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	chained.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("管理者 status = %d, expected 200", rec.Code)
	}
}
