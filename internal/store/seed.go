package store

import (
	"fmt"

	"pasta_admin/internal/auth"
	"pasta_admin/internal/models"
)

// seed populates a brand new store with the baseline accounts and a
// small sample catalog. Runs only when no snapshot file exists.
func (s *Store) seed() error {
	now := s.now()

	seedUsers := []struct {
		username string
		password string
		name     string
		role     models.Role
	}{
		{"superadmin", "superadmin123", "Laura Bianchi", models.RoleSuperAdmin},
		{"admin", "admin123", "Marco Rossi", models.RoleAdmin},
		{"vendedor1", "vendedor123", "Paula Gutiérrez", models.RoleVendor},
	}

	for _, u := range seedUsers {
		hashed, err := auth.HashPassword(u.password)
		if err != nil {
			return fmt.Errorf("hash seed password: %w", err)
		}
		s.userSeq++
		s.users[s.userSeq] = models.User{
			ID:        s.userSeq,
			Username:  u.username,
			Password:  hashed,
			Name:      u.name,
			Role:      u.role,
			IsActive:  true,
			CreatedAt: now,
		}
	}
	vendorID := s.userSeq

	seedProducts := []models.Product{
		{Name: "Ravioles de ricota y nuez", Description: "Caja x 24 unidades, congelados", Price: 5200, Category: "pasta rellena", IsVegetarian: true, IsFeatured: true, UnitSize: "500g", Stock: 40},
		{Name: "Sorrentinos de jamón y queso", Description: "Caja x 12 unidades, congelados", Price: 6100, Category: "pasta rellena", IsFeatured: true, UnitSize: "600g", Stock: 35},
		{Name: "Ñoquis de papa", Description: "Bolsa familiar, congelados", Price: 3400, Category: "pasta", IsVegetarian: true, UnitSize: "1kg", Stock: 60},
		{Name: "Lasaña de verdura", Description: "Bandeja lista para horno", Price: 7800, Category: "platos listos", IsVegetarian: true, UnitSize: "800g", Stock: 20},
	}

	for _, p := range seedProducts {
		s.productSeq++
		p.ID = s.productSeq
		p.IsActive = true
		p.CreatedAt = now
		s.products[p.ID] = p
	}

	s.clientSeq++
	s.clients[s.clientSeq] = models.Client{
		ID:        s.clientSeq,
		Name:      "Almacén Don Pepe",
		Email:     "donpepe@example.com",
		Phone:     "01155550001",
		Address:   "Av. Rivadavia 1234",
		VendorID:  &vendorID,
		CreatedAt: now,
	}

	return nil
}
