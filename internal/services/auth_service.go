package services

import (
	"context"
	"errors"
	"fmt"

	"pasta_admin/internal/auth"
	"pasta_admin/internal/models"
	"pasta_admin/internal/session"
	"pasta_admin/internal/store"
)

// Login failures stay distinct internally so callers can log precisely;
// the HTTP layer collapses all three into one message so a caller
// cannot probe which part of the check failed.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrBadCredentials  = errors.New("bad credentials")
	ErrInactiveAccount = errors.New("account is inactive")
)

// RegisterInput describes a new dashboard account. Role defaults to
// vendor and Active to true when unset.
type RegisterInput struct {
	Username string
	Password string
	Name     string
	Role     models.Role
	Active   *bool
}

// AuthService is the only place sessions and credentials meet. Route
// handlers never touch password hashes or the session backend directly.
type AuthService interface {
	// Register creates an account without establishing a session:
	// provisioning through the dashboard does not log the new user in.
	Register(input RegisterInput) (models.User, error)
	// Login verifies credentials and opens a session. The returned user
	// has the password hash stripped.
	Login(ctx context.Context, username, password string) (models.User, string, error)
	// Logout destroys a session; unknown ids are not an error.
	Logout(ctx context.Context, sessionID string) error
	// CurrentUser resolves a session to its user, or nil for anonymous.
	// A session pointing at a since-deleted user also resolves to nil.
	CurrentUser(ctx context.Context, sessionID string) *models.User
}

type authService struct {
	store    *store.Store
	sessions session.Store
}

func NewAuthService(st *store.Store, sessions session.Store) AuthService {
	return &authService{store: st, sessions: sessions}
}

func (s *authService) Register(input RegisterInput) (models.User, error) {
	role := input.Role
	if role == "" {
		role = models.RoleVendor
	}
	active := true
	if input.Active != nil {
		active = *input.Active
	}

	user, err := s.store.CreateUser(store.NewUser{
		Username: input.Username,
		Password: input.Password,
		Name:     input.Name,
		Role:     role,
		IsActive: active,
	})
	if err != nil {
		return models.User{}, err
	}
	return user.Sanitized(), nil
}

func (s *authService) Login(ctx context.Context, username, password string) (models.User, string, error) {
	user, ok := s.store.UserByUsername(username)
	if !ok {
		return models.User{}, "", ErrUserNotFound
	}
	if !auth.CheckPassword(password, user.Password) {
		return models.User{}, "", ErrBadCredentials
	}
	if !user.IsActive {
		return models.User{}, "", ErrInactiveAccount
	}

	sessionID, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return models.User{}, "", fmt.Errorf("create session: %w", err)
	}
	return user.Sanitized(), sessionID, nil
}

func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.sessions.Destroy(ctx, sessionID)
}

func (s *authService) CurrentUser(ctx context.Context, sessionID string) *models.User {
	if sessionID == "" {
		return nil
	}
	userID, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil
	}
	user, ok := s.store.UserByID(userID)
	if !ok {
		return nil
	}
	sanitized := user.Sanitized()
	return &sanitized
}

// Authorization predicates. Each stricter check implies the previous
// one, backed by the role rank table rather than per-predicate lists.

func IsAuthenticated(u *models.User) bool {
	return u != nil
}

func IsAdmin(u *models.User) bool {
	return u != nil && u.Role.AtLeast(models.RoleAdmin)
}

func IsSuperAdmin(u *models.User) bool {
	return u != nil && u.Role.AtLeast(models.RoleSuperAdmin)
}
