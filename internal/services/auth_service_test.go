package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pasta_admin/internal/models"
	"pasta_admin/internal/session"
	"pasta_admin/internal/store"
)

func newAuthFixture(t *testing.T) (AuthService, *store.Store, *session.MemoryStore) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "snapshot.json"))
	require.NoError(t, err)
	sessions := session.NewMemoryStore(time.Hour)
	return NewAuthService(st, sessions), st, sessions
}

func TestRegisterDefaultsAndSanitizes(t *testing.T) {
	svc, st, _ := newAuthFixture(t)

	user, err := svc.Register(RegisterInput{Username: "nuevo", Password: "secreto123", Name: "Nuevo Vendedor"})
	require.NoError(t, err)

	assert.Equal(t, models.RoleVendor, user.Role)
	assert.True(t, user.IsActive)
	assert.Empty(t, user.Password, "password hash must not leave the gateway")

	stored, ok := st.UserByID(user.ID)
	require.True(t, ok)
	assert.NotEmpty(t, stored.Password)
	assert.NotEqual(t, "secreto123", stored.Password)
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Register(RegisterInput{Username: "duplicada", Password: "secreto123"})
	require.NoError(t, err)

	_, err = svc.Register(RegisterInput{Username: "DUPLICADA", Password: "otro456"})
	assert.ErrorIs(t, err, store.ErrUsernameTaken)
}

func TestLoginPaths(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	inactive := false
	_, err := svc.Register(RegisterInput{Username: "dormida", Password: "secreto123", Active: &inactive})
	require.NoError(t, err)
	_, err = svc.Register(RegisterInput{Username: "activa", Password: "secreto123"})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "nadie", "secreto123")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, _, err = svc.Login(ctx, "activa", "equivocada")
	assert.ErrorIs(t, err, ErrBadCredentials)

	// Correct credentials on an inactive account fail with their own
	// reason and open no session.
	_, sessionID, err := svc.Login(ctx, "dormida", "secreto123")
	assert.ErrorIs(t, err, ErrInactiveAccount)
	assert.Empty(t, sessionID)

	user, sessionID, err := svc.Login(ctx, "ACTIVA", "secreto123")
	require.NoError(t, err)
	assert.NotEmpty(t, sessionID)
	assert.Empty(t, user.Password)

	resolved := svc.CurrentUser(ctx, sessionID)
	require.NotNil(t, resolved)
	assert.Equal(t, user.ID, resolved.ID)
}

func TestLogoutIsIdempotent(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(RegisterInput{Username: "saliente", Password: "secreto123"})
	require.NoError(t, err)
	_, sessionID, err := svc.Login(ctx, "saliente", "secreto123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, sessionID))
	require.NoError(t, svc.Logout(ctx, sessionID))
	require.NoError(t, svc.Logout(ctx, ""))

	assert.Nil(t, svc.CurrentUser(ctx, sessionID))
}

func TestCurrentUserWithDeletedAccount(t *testing.T) {
	svc, st, _ := newAuthFixture(t)
	ctx := context.Background()

	user, err := svc.Register(RegisterInput{Username: "efimera", Password: "secreto123"})
	require.NoError(t, err)
	_, sessionID, err := svc.Login(ctx, "efimera", "secreto123")
	require.NoError(t, err)

	require.NoError(t, st.DeleteUser(user.ID))

	assert.Nil(t, svc.CurrentUser(ctx, sessionID), "a live session over a deleted user resolves to anonymous")
}

func TestRolePredicates(t *testing.T) {
	vendor := &models.User{Role: models.RoleVendor}
	admin := &models.User{Role: models.RoleAdmin}
	super := &models.User{Role: models.RoleSuperAdmin}

	assert.True(t, IsAuthenticated(vendor))
	assert.False(t, IsAdmin(vendor))
	assert.False(t, IsSuperAdmin(vendor))

	assert.True(t, IsAuthenticated(admin))
	assert.True(t, IsAdmin(admin))
	assert.False(t, IsSuperAdmin(admin))

	assert.True(t, IsAuthenticated(super))
	assert.True(t, IsAdmin(super), "every super admin passes the admin check")
	assert.True(t, IsSuperAdmin(super))

	assert.False(t, IsAuthenticated(nil))
	assert.False(t, IsAdmin(nil))
	assert.False(t, IsSuperAdmin(nil))
}
