package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/artoasis/artoasis-backend/internal/config"
	"github.com/artoasis/artoasis-backend/internal/model"
	"github.com/artoasis/artoasis-backend/internal/response"
	"github.com/artoasis/artoasis-backend/internal/service"
	"github.com/gin-gonic/gin"
)

type memUserStore struct {
	users map[string]*model.User
}

func (m *memUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	u, ok := m.users[email]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (m *memUserStore) Create(_ context.Context, u *model.User) error { return nil }
func (m *memUserStore) List(_ context.Context) ([]model.User, error)  { return nil, nil }
func (m *memUserStore) ListByRole(_ context.Context, _ model.Role) ([]model.User, error) {
	return nil, nil
}
func (m *memUserStore) UpdateRole(_ context.Context, _ int64, _ model.Role) (int64, error) {
	return 0, nil
}

func errCodeOf(t *testing.T, body []byte) response.ErrCode {
	t.Helper()
	var env struct {
		Error *response.ErrorBody `json:"error"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if env.Error == nil {
		t.Fatal("expected an error body")
	}
	return env.Error.Code
}

func setupGuardedRouter(t *testing.T) (*gin.Engine, *service.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	authService := service.NewAuthService(&config.Config{
		JWTSecret: "test-secret",
		JWTExpiry: time.Hour,
	})
	userService := service.NewUserService(&memUserStore{users: map[string]*model.User{
		"admin@example.com":   {ID: 1, Email: "admin@example.com", Role: model.RoleAdmin},
		"student@example.com": {ID: 2, Email: "student@example.com", Role: model.RoleStudent},
	}})

	r := gin.New()
	r.GET("/admin-only",
		RequireAuth(authService),
		RequireRole(userService, model.RoleAdmin),
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		},
	)
	return r, authService
}

func TestRequireAuth_MissingOrBadToken(t *testing.T) {
	r, _ := setupGuardedRouter(t)

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", w.Code)
			}
			if code := errCodeOf(t, w.Body.Bytes()); code != response.ErrTokenInvalid {
				t.Errorf("error code = %q, want %q", code, response.ErrTokenInvalid)
			}
		})
	}
}

func TestRequireRole_NonAdminForbidden(t *testing.T) {
	r, authService := setupGuardedRouter(t)

	token, err := authService.IssueToken("student@example.com")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
	if code := errCodeOf(t, w.Body.Bytes()); code != response.ErrAdminOnly {
		t.Errorf("error code = %q, want %q", code, response.ErrAdminOnly)
	}
}

func TestRequireRole_AdminAllowed(t *testing.T) {
	r, authService := setupGuardedRouter(t)

	token, err := authService.IssueToken("admin@example.com")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", w.Code, w.Body.String())
	}
}

func TestRequireRole_UnknownIdentityForbidden(t *testing.T) {
	r, authService := setupGuardedRouter(t)

	// Valid token for an identity with no account. The role resolves to
	// unset, which never satisfies a role gate.
	token, err := authService.IssueToken("ghost@example.com")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}
