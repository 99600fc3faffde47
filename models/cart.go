package models

// CartItem pairs a product with the quantity selected by the customer.
// Quantity is always >= 1; reducing an item to zero removes it instead.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// CartSnapshot is the full ordered cart contents. Insertion order is
// preserved across quantity updates, so the drawer and the order message
// list items in the order they were added.
type CartSnapshot []CartItem
