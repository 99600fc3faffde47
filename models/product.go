package models

import "time"

// Product is an immutable catalog record. Subcategory is nil for products
// that only belong to a top-level category.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Subcategory *string   `json:"subcategory"`
	Images      []string  `json:"images"`
	CreatedAt   time.Time `json:"created_at"`
}
