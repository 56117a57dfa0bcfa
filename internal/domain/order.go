package domain

import (
	"strconv"
	"strings"
)

// BillingInfo is the billing form submitted with an order.
type BillingInfo struct {
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	Pincode string `json:"pincode" validate:"required"`
}

// OrderItem is the wire form of a cart line inside an order.
type OrderItem struct {
	ID            string                 `json:"id"`
	Name          string                 `json:"name"`
	Price         float64                `json:"price"`
	Quantity      int                    `json:"quantity"`
	Customization map[string]interface{} `json:"customization,omitempty"`
}

// OrderRequest is the body of POST /orders.
type OrderRequest struct {
	Items         []OrderItem `json:"items"`
	TotalAmount   float64     `json:"total_amount"`
	PaymentMethod string      `json:"payment_method"`
	BillingInfo   BillingInfo `json:"billing_info"`
}

// Order is an order as stored by the backend. The stored billing info is not
// held to the form rules of BillingInfo.
type Order struct {
	ID            string      `json:"id" validate:"required"`
	OrderNumber   string      `json:"order_number"`
	TotalAmount   Amount      `json:"total_amount"`
	Status        string      `json:"status"`
	PaymentMethod string      `json:"payment_method"`
	BillingInfo   BillingInfo `json:"billing_info" validate:"-"`
	Items         []OrderItem `json:"items"`
	CreatedAt     string      `json:"created_at"`
}

// Amount decodes a money value sent either as a JSON number or a numeric string.
// Anything else (null, garbage) decodes to zero.
type Amount float64

func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if unq, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unq)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*a = 0
		return nil
	}
	*a = Amount(f)
	return nil
}

// String formats the amount with two decimals.
func (a Amount) String() string {
	return strconv.FormatFloat(float64(a), 'f', 2, 64)
}
