package models

import "time"

// Client is a customer record. VendorID links the client to the vendor
// user that owns the relationship; nil means unassigned.
type Client struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	VendorID  *uint     `json:"vendor_id"`
	CreatedAt time.Time `json:"created_at"`
}
