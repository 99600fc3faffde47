package models

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type LoginResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

type CartResponse struct {
	Items      CartSnapshot `json:"items"`
	TotalPrice float64      `json:"total_price"`
	TotalItems int          `json:"total_items"`
	IsOpen     bool         `json:"is_open"`
}

type CheckoutResponse struct {
	Message     string `json:"message"`
	WhatsAppURL string `json:"whatsapp_url"`
}
