package models

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AddCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type FilterRequest struct {
	Category    *string `json:"category"`
	Subcategory *string `json:"subcategory"`
}

type SearchRequest struct {
	Term string `json:"term"`
}

type CreateProductRequest struct {
	Name        string   `json:"name" form:"name" binding:"required,min=3"`
	Price       float64  `json:"price" form:"price" binding:"required,gte=0"`
	Category    string   `json:"category" form:"category" binding:"required"`
	Subcategory *string  `json:"subcategory" form:"subcategory"`
	Images      []string `json:"images" form:"images"`
}

type UpdateProductRequest struct {
	Name        string   `json:"name" form:"name"`
	Price       *float64 `json:"price" form:"price"`
	Category    string   `json:"category" form:"category"`
	Subcategory *string  `json:"subcategory" form:"subcategory"`
	Images      []string `json:"images" form:"images"`
}
