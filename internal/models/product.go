package models

import "time"

// Product is a catalog item. Prices are stored in minor currency units
// (cents), never floats.
type Product struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        int64     `json:"price"`
	Category     string    `json:"category"`
	ImageURL     string    `json:"image_url"`
	IsVegetarian bool      `json:"is_vegetarian"`
	IsFeatured   bool      `json:"is_featured"`
	IsActive     bool      `json:"is_active"`
	UnitSize     string    `json:"unit_size"`
	Stock        int       `json:"stock"`
	CreatedAt    time.Time `json:"created_at"`
}
