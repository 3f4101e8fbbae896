package store

import (
	"fmt"
	"strings"

	"pasta_admin/internal/models"
)

type NewClient struct {
	Name     string
	Email    string
	Phone    string
	Address  string
	VendorID *uint
}

type ClientPatch struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
	// VendorID reassigns ownership. The outer pointer marks presence,
	// the inner one allows clearing the vendor.
	VendorID **uint
}

func (s *Store) ClientByID(id uint) (models.Client, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.clients[id]
	return c, ok
}

func (s *Store) Clients() []models.Client {
	s.mu.Lock()
	defer s.mu.Unlock()

	return sortedValues(s.clients, func(c models.Client) uint { return c.ID })
}

// ClientsByVendor returns only the clients owned by the given vendor.
// This is the scoping query behind the vendor dashboard.
func (s *Store) ClientsByVendor(vendorID uint) []models.Client {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := sortedValues(s.clients, func(c models.Client) uint { return c.ID })
	owned := all[:0]
	for _, c := range all {
		if c.VendorID != nil && *c.VendorID == vendorID {
			owned = append(owned, c)
		}
	}
	return owned
}

func (s *Store) CreateClient(input NewClient) (models.Client, error) {
	if strings.TrimSpace(input.Name) == "" {
		return models.Client{}, fmt.Errorf("%w: client name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(input.Phone) == "" {
		return models.Client{}, fmt.Errorf("%w: client phone is required", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if input.VendorID != nil {
		if err := s.checkVendor(*input.VendorID); err != nil {
			return models.Client{}, err
		}
	}

	s.clientSeq++
	client := models.Client{
		ID:        s.clientSeq,
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Address:   input.Address,
		VendorID:  input.VendorID,
		CreatedAt: s.now(),
	}
	s.clients[client.ID] = client
	s.persistLocked()

	return client, nil
}

func (s *Store) UpdateClient(id uint, patch ClientPatch) (models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	client, ok := s.clients[id]
	if !ok {
		return models.Client{}, ErrNotFound
	}

	if patch.VendorID != nil && *patch.VendorID != nil {
		if err := s.checkVendor(**patch.VendorID); err != nil {
			return models.Client{}, err
		}
	}

	if patch.Name != nil {
		client.Name = *patch.Name
	}
	if patch.Email != nil {
		client.Email = *patch.Email
	}
	if patch.Phone != nil {
		client.Phone = *patch.Phone
	}
	if patch.Address != nil {
		client.Address = *patch.Address
	}
	if patch.VendorID != nil {
		client.VendorID = *patch.VendorID
	}

	s.clients[id] = client
	s.persistLocked()

	return client, nil
}

// ClientByPhone matches a client by exact phone string. Used by the
// WhatsApp webhook to attribute inbound messages.
func (s *Store) ClientByPhone(phone string) (models.Client, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.clients {
		if c.Phone == phone {
			return c, true
		}
	}
	return models.Client{}, false
}

// checkVendor must be called with s.mu held.
func (s *Store) checkVendor(vendorID uint) error {
	vendor, ok := s.users[vendorID]
	if !ok {
		return fmt.Errorf("%w: vendor %d", ErrNotFound, vendorID)
	}
	if vendor.Role != models.RoleVendor {
		return fmt.Errorf("%w: user %d is not a vendor", ErrInvalidInput, vendorID)
	}
	return nil
}
