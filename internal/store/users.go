package store

import (
	"fmt"
	"strings"

	"pasta_admin/internal/auth"
	"pasta_admin/internal/models"
)

// NewUser is the input for user creation. Password is always plaintext
// here and always hashed before storage; the snapshot-load path never
// goes through CreateUser, so there is no "maybe already hashed" guess.
type NewUser struct {
	Username string
	Password string
	Name     string
	Role     models.Role
	IsActive bool
}

// UserPatch is a partial update. Nil fields are left untouched.
type UserPatch struct {
	Username *string
	Password *string // plaintext, re-hashed on update
	Name     *string
	Role     *models.Role
	IsActive *bool
}

func (s *Store) UserByID(id uint) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	return u, ok
}

// UserByUsername looks a user up case-insensitively.
func (s *Store) UserByUsername(username string) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.findUsername(username)
	return u, ok
}

func (s *Store) Users() []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	return sortedValues(s.users, func(u models.User) uint { return u.ID })
}

func (s *Store) CreateUser(input NewUser) (models.User, error) {
	if strings.TrimSpace(input.Username) == "" {
		return models.User{}, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if input.Password == "" {
		return models.User{}, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}
	if !input.Role.Valid() {
		return models.User{}, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, input.Role)
	}

	hashed, err := auth.HashPassword(input.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.findUsername(input.Username); taken {
		return models.User{}, ErrUsernameTaken
	}

	s.userSeq++
	user := models.User{
		ID:        s.userSeq,
		Username:  input.Username,
		Password:  hashed,
		Name:      input.Name,
		Role:      input.Role,
		IsActive:  input.IsActive,
		CreatedAt: s.now(),
	}
	s.users[user.ID] = user
	s.persistLocked()

	return user, nil
}

func (s *Store) UpdateUser(id uint, patch UserPatch) (models.User, error) {
	var hashed string
	if patch.Password != nil {
		if *patch.Password == "" {
			return models.User{}, fmt.Errorf("%w: password cannot be empty", ErrInvalidInput)
		}
		h, err := auth.HashPassword(*patch.Password)
		if err != nil {
			return models.User{}, fmt.Errorf("hash password: %w", err)
		}
		hashed = h
	}
	if patch.Role != nil && !patch.Role.Valid() {
		return models.User{}, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, *patch.Role)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}

	if patch.Username != nil {
		if strings.TrimSpace(*patch.Username) == "" {
			return models.User{}, fmt.Errorf("%w: username cannot be empty", ErrInvalidInput)
		}
		if other, taken := s.findUsername(*patch.Username); taken && other.ID != id {
			return models.User{}, ErrUsernameTaken
		}
		user.Username = *patch.Username
	}
	if patch.Password != nil {
		user.Password = hashed
	}
	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Role != nil {
		user.Role = *patch.Role
	}
	if patch.IsActive != nil {
		user.IsActive = *patch.IsActive
	}

	s.users[id] = user
	s.persistLocked()

	return user, nil
}

// DeleteUser removes a user record outright. Sessions referencing the
// id resolve to anonymous afterwards; clients keep their vendor_id
// until an admin reassigns them.
func (s *Store) DeleteUser(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.users, id)
	s.persistLocked()
	return nil
}

// findUsername must be called with s.mu held.
func (s *Store) findUsername(username string) (models.User, bool) {
	for _, u := range s.users {
		if strings.EqualFold(u.Username, username) {
			return u, true
		}
	}
	return models.User{}, false
}
