package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pasta_admin/internal/middleware"
	"pasta_admin/internal/models"
	"pasta_admin/internal/services"
	"pasta_admin/internal/session"
	"pasta_admin/internal/store"
)

func newTestRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := store.Open(filepath.Join(t.TempDir(), "snapshot.json"))
	require.NoError(t, err)
	authService := services.NewAuthService(st, session.NewMemoryStore(time.Hour))

	authHandler := NewAuthHandler(authService, false, time.Hour)

	r := gin.New()
	r.Use(middleware.LoadUser(authService))
	r.POST("/api/auth/login", authHandler.Login)
	r.POST("/api/auth/logout", authHandler.Logout)
	r.GET("/api/auth/me", authHandler.Me)
	r.POST("/api/auth/register", middleware.RequireSuperAdmin(), authHandler.Register)
	return r, st
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.SessionCookie {
			return ck
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func TestLoginSetsHardenedCookie(t *testing.T) {
	router, st := newTestRouter(t)
	_, err := st.CreateUser(store.NewUser{Username: "vendedora", Password: "secreto123", Role: models.RoleVendor, IsActive: true})
	require.NoError(t, err)

	rec := postJSON(t, router, "/api/auth/login", gin.H{"username": "vendedora", "password": "secreto123"})
	require.Equal(t, http.StatusOK, rec.Code)

	ck := sessionCookie(t, rec)
	assert.NotEmpty(t, ck.Value)
	assert.True(t, ck.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, ck.SameSite)
	// Max-age follows the configured session TTL, an hour in this router,
	// not a baked-in constant.
	assert.Equal(t, int(time.Hour.Seconds()), ck.MaxAge)

	// The response body must not leak the password hash.
	var body models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Empty(t, body.Password)

	// The cookie authenticates subsequent requests.
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(ck)
	meRec := httptest.NewRecorder()
	router.ServeHTTP(meRec, req)
	assert.Equal(t, http.StatusOK, meRec.Code)
}

func TestLoginFailuresShareOneMessage(t *testing.T) {
	router, st := newTestRouter(t)
	_, err := st.CreateUser(store.NewUser{Username: "activa", Password: "secreto123", Role: models.RoleVendor, IsActive: true})
	require.NoError(t, err)
	_, err = st.CreateUser(store.NewUser{Username: "dormida", Password: "secreto123", Role: models.RoleVendor, IsActive: false})
	require.NoError(t, err)

	attempts := []gin.H{
		{"username": "fantasma", "password": "secreto123"},
		{"username": "activa", "password": "equivocada"},
		{"username": "dormida", "password": "secreto123"},
	}

	var messages []string
	for _, attempt := range attempts {
		rec := postJSON(t, router, "/api/auth/login", attempt)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		messages = append(messages, body["error"])
	}

	// No username enumeration: every failure reads the same.
	assert.Equal(t, messages[0], messages[1])
	assert.Equal(t, messages[1], messages[2])
}

func TestLogoutClearsSession(t *testing.T) {
	router, st := newTestRouter(t)
	_, err := st.CreateUser(store.NewUser{Username: "saliente", Password: "secreto123", Role: models.RoleVendor, IsActive: true})
	require.NoError(t, err)

	loginRec := postJSON(t, router, "/api/auth/login", gin.H{"username": "saliente", "password": "secreto123"})
	ck := sessionCookie(t, loginRec)

	logoutRec := postJSON(t, router, "/api/auth/logout", gin.H{}, ck)
	require.Equal(t, http.StatusOK, logoutRec.Code)
	cleared := sessionCookie(t, logoutRec)
	assert.Less(t, cleared.MaxAge, 0, "logout must expire the cookie")

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(ck)
	meRec := httptest.NewRecorder()
	router.ServeHTTP(meRec, req)
	assert.Equal(t, http.StatusUnauthorized, meRec.Code)

	// Logging out again is harmless.
	again := postJSON(t, router, "/api/auth/logout", gin.H{}, ck)
	assert.Equal(t, http.StatusOK, again.Code)
}

func TestRegisterRequiresSuperAdmin(t *testing.T) {
	router, st := newTestRouter(t)
	_, err := st.CreateUser(store.NewUser{Username: "jefa", Password: "secreto123", Role: models.RoleSuperAdmin, IsActive: true})
	require.NoError(t, err)
	_, err = st.CreateUser(store.NewUser{Username: "comun", Password: "secreto123", Role: models.RoleAdmin, IsActive: true})
	require.NoError(t, err)

	newAccount := gin.H{"username": "nueva", "password": "secreto123"}

	rec := postJSON(t, router, "/api/auth/register", newAccount)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	adminLogin := postJSON(t, router, "/api/auth/login", gin.H{"username": "comun", "password": "secreto123"})
	rec = postJSON(t, router, "/api/auth/register", newAccount, sessionCookie(t, adminLogin))
	assert.Equal(t, http.StatusForbidden, rec.Code, "plain admins cannot provision accounts")

	superLogin := postJSON(t, router, "/api/auth/login", gin.H{"username": "jefa", "password": "secreto123"})
	rec = postJSON(t, router, "/api/auth/register", newAccount, sessionCookie(t, superLogin))
	require.Equal(t, http.StatusCreated, rec.Code)

	// Registration does not log the new account in.
	var created models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, models.RoleVendor, created.Role)
	assert.Empty(t, rec.Result().Cookies(), "register must not establish a session")

	rec = postJSON(t, router, "/api/auth/register", newAccount, sessionCookie(t, superLogin))
	assert.Equal(t, http.StatusConflict, rec.Code)
}
