package store

import (
	"fmt"
	"strings"

	"pasta_admin/internal/models"
)

type NewProduct struct {
	Name         string
	Description  string
	Price        int64
	Category     string
	ImageURL     string
	IsVegetarian bool
	IsFeatured   bool
	UnitSize     string
	Stock        int
}

type ProductPatch struct {
	Name         *string
	Description  *string
	Price        *int64
	Category     *string
	ImageURL     *string
	IsVegetarian *bool
	IsFeatured   *bool
	IsActive     *bool
	UnitSize     *string
	Stock        *int
}

func (s *Store) ProductByID(id uint) (models.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	return p, ok
}

// Products lists the catalog in insertion order. With onlyActive set,
// soft-deleted products are filtered out; the public catalog always
// asks for active only.
func (s *Store) Products(onlyActive bool) []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := sortedValues(s.products, func(p models.Product) uint { return p.ID })
	if !onlyActive {
		return all
	}
	active := all[:0]
	for _, p := range all {
		if p.IsActive {
			active = append(active, p)
		}
	}
	return active
}

func (s *Store) CreateProduct(input NewProduct) (models.Product, error) {
	if strings.TrimSpace(input.Name) == "" {
		return models.Product{}, fmt.Errorf("%w: product name is required", ErrInvalidInput)
	}
	if input.Price < 0 {
		return models.Product{}, fmt.Errorf("%w: price cannot be negative", ErrInvalidInput)
	}
	if input.Stock < 0 {
		return models.Product{}, fmt.Errorf("%w: stock cannot be negative", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.productSeq++
	product := models.Product{
		ID:           s.productSeq,
		Name:         input.Name,
		Description:  input.Description,
		Price:        input.Price,
		Category:     input.Category,
		ImageURL:     input.ImageURL,
		IsVegetarian: input.IsVegetarian,
		IsFeatured:   input.IsFeatured,
		IsActive:     true,
		UnitSize:     input.UnitSize,
		Stock:        input.Stock,
		CreatedAt:    s.now(),
	}
	s.products[product.ID] = product
	s.persistLocked()

	return product, nil
}

func (s *Store) UpdateProduct(id uint, patch ProductPatch) (models.Product, error) {
	if patch.Price != nil && *patch.Price < 0 {
		return models.Product{}, fmt.Errorf("%w: price cannot be negative", ErrInvalidInput)
	}
	if patch.Stock != nil && *patch.Stock < 0 {
		return models.Product{}, fmt.Errorf("%w: stock cannot be negative", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[id]
	if !ok {
		return models.Product{}, ErrNotFound
	}

	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	if patch.Category != nil {
		product.Category = *patch.Category
	}
	if patch.ImageURL != nil {
		product.ImageURL = *patch.ImageURL
	}
	if patch.IsVegetarian != nil {
		product.IsVegetarian = *patch.IsVegetarian
	}
	if patch.IsFeatured != nil {
		product.IsFeatured = *patch.IsFeatured
	}
	if patch.IsActive != nil {
		product.IsActive = *patch.IsActive
	}
	if patch.UnitSize != nil {
		product.UnitSize = *patch.UnitSize
	}
	if patch.Stock != nil {
		product.Stock = *patch.Stock
	}

	s.products[id] = product
	s.persistLocked()

	return product, nil
}

// DeactivateProduct soft-deletes a product. Past orders keep their
// item rows; listings simply stop including it.
func (s *Store) DeactivateProduct(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[id]
	if !ok {
		return ErrNotFound
	}
	product.IsActive = false
	s.products[id] = product
	s.persistLocked()
	return nil
}
