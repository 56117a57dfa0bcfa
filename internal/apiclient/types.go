package apiclient

import "glassstore/internal/domain"

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by both /login and /register.
type AuthResponse struct {
	Message     string      `json:"message"`
	AccessToken string      `json:"access_token" validate:"required"`
	User        domain.User `json:"user"`
}

type CardDetails struct {
	Number string `json:"number"`
	Name   string `json:"name"`
	Expiry string `json:"expiry"`
	CVV    string `json:"cvv"`
}

// PaymentRequest is the body of POST /payment/process. Only the field matching
// PaymentMethod is expected to be set.
type PaymentRequest struct {
	PaymentMethod string       `json:"payment_method"`
	Amount        float64      `json:"amount"`
	CardDetails   *CardDetails `json:"card_details,omitempty"`
	UPIID         string       `json:"upi_id,omitempty"`
	Bank          string       `json:"bank,omitempty"`
}

type PaymentResult struct {
	Status        string        `json:"status" validate:"required"`
	PaymentID     string        `json:"payment_id" validate:"required"`
	Amount        domain.Amount `json:"amount"`
	PaymentMethod string        `json:"payment_method"`
	Message       string        `json:"message"`
}

type ReviewRequest struct {
	ProductID string `json:"product_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
}

// ReviewPage is the reviews of one product plus the backend's aggregate. Stats is
// nil when the backend did not send it.
type ReviewPage struct {
	Reviews []domain.Review     `json:"reviews" validate:"dive"`
	Stats   *domain.RatingStats `json:"stats"`
}

type HealthStatus struct {
	Status    string                 `json:"status" validate:"required"`
	Timestamp string                 `json:"timestamp"`
	Database  string                 `json:"database"`
	Stats     map[string]interface{} `json:"stats,omitempty"`
}

// RemoteCart is the server-side cart kept by the backend for the signed-in user.
type RemoteCart struct {
	ID    string             `json:"id"`
	Items []domain.OrderItem `json:"items"`
}

type CartItemUpdate struct {
	Quantity int `json:"quantity"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type userResponse struct {
	User domain.User `json:"user"`
}

type orderResponse struct {
	Message string       `json:"message"`
	Order   domain.Order `json:"order"`
}

type ordersResponse struct {
	Orders []domain.Order `json:"orders" validate:"dive"`
}

type productResponse struct {
	Product domain.Product `json:"product"`
}

type productsResponse struct {
	Products []domain.Product `json:"products" validate:"dive"`
}

type reviewResponse struct {
	Message string        `json:"message"`
	Review  domain.Review `json:"review"`
}

type cartResponse struct {
	Cart RemoteCart `json:"cart"`
}
