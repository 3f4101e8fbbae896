package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"pasta_admin/internal/models"
	"pasta_admin/internal/services"
)

// stubAuth resolves a fixed set of session ids to users.
type stubAuth struct {
	users map[string]*models.User
}

func (s *stubAuth) Register(services.RegisterInput) (models.User, error) {
	return models.User{}, nil
}

func (s *stubAuth) Login(context.Context, string, string) (models.User, string, error) {
	return models.User{}, "", nil
}

func (s *stubAuth) Logout(context.Context, string) error { return nil }

func (s *stubAuth) CurrentUser(_ context.Context, sessionID string) *models.User {
	return s.users[sessionID]
}

func newGateRouter(authSvc services.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(LoadUser(authSvc))
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	r.GET("/auth", RequireAuthenticated(), ok)
	r.GET("/admin", RequireAdmin(), ok)
	r.GET("/super", RequireSuperAdmin(), ok)
	return r
}

func TestRoleGates(t *testing.T) {
	authSvc := &stubAuth{users: map[string]*models.User{
		"sess-vendor": {ID: 1, Role: models.RoleVendor},
		"sess-admin":  {ID: 2, Role: models.RoleAdmin},
		"sess-super":  {ID: 3, Role: models.RoleSuperAdmin},
	}}
	router := newGateRouter(authSvc)

	tests := []struct {
		name    string
		path    string
		session string
		want    int
	}{
		{"anonymous is 401", "/auth", "", http.StatusUnauthorized},
		{"expired session is 401", "/auth", "sess-gone", http.StatusUnauthorized},
		{"vendor reaches authenticated route", "/auth", "sess-vendor", http.StatusOK},
		{"vendor blocked from admin route", "/admin", "sess-vendor", http.StatusForbidden},
		{"admin reaches admin route", "/admin", "sess-admin", http.StatusOK},
		{"admin blocked from super route", "/super", "sess-admin", http.StatusForbidden},
		{"super admin passes every gate", "/super", "sess-super", http.StatusOK},
		{"super admin implies admin", "/admin", "sess-super", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.session != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tt.session})
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
