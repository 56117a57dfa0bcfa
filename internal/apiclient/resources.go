package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"glassstore/internal/domain"
)

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, "register", http.MethodPost, "/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, "login", http.MethodPost, "/login", creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Profile(ctx context.Context) (*domain.User, error) {
	var out userResponse
	if err := c.do(ctx, "profile", http.MethodGet, "/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) CreateOrder(ctx context.Context, req domain.OrderRequest) (*domain.Order, error) {
	var out orderResponse
	if err := c.do(ctx, "create order", http.MethodPost, "/orders", req, &out); err != nil {
		return nil, err
	}
	return &out.Order, nil
}

func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var out ordersResponse
	if err := c.do(ctx, "list orders", http.MethodGet, "/orders", nil, &out); err != nil {
		return nil, err
	}
	return out.Orders, nil
}

func (c *Client) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	var out orderResponse
	if err := c.do(ctx, "get order", http.MethodGet, "/orders/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Order, nil
}

func (c *Client) ProcessPayment(ctx context.Context, req PaymentRequest) (*PaymentResult, error) {
	var out PaymentResult
	if err := c.do(ctx, "process payment", http.MethodPost, "/payment/process", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateReview(ctx context.Context, req ReviewRequest) (*domain.Review, error) {
	var out reviewResponse
	if err := c.do(ctx, "create review", http.MethodPost, "/reviews", req, &out); err != nil {
		return nil, err
	}
	return &out.Review, nil
}

func (c *Client) ListReviews(ctx context.Context, productID string) (*ReviewPage, error) {
	var out ReviewPage
	if err := c.do(ctx, "list reviews", http.MethodGet, "/reviews/"+url.PathEscape(productID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var out HealthStatus
	if err := c.do(ctx, "health", http.MethodGet, "/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListProducts returns the catalog, optionally restricted to one category.
func (c *Client) ListProducts(ctx context.Context, category string) ([]domain.Product, error) {
	path := "/products"
	if category != "" {
		path += "?category=" + url.QueryEscape(category)
	}
	var out productsResponse
	if err := c.do(ctx, "list products", http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Products, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var out productResponse
	if err := c.do(ctx, "get product", http.MethodGet, "/products/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Product, nil
}

// CreateProduct validates p locally before sending it.
func (c *Client) CreateProduct(ctx context.Context, p domain.NewProduct) (*domain.Product, error) {
	if err := c.validate.Struct(p); err != nil {
		return nil, &domain.ValidationError{Field: "product", Reason: err.Error(), Err: err}
	}
	var out productResponse
	if err := c.do(ctx, "create product", http.MethodPost, "/products", p, &out); err != nil {
		return nil, err
	}
	return &out.Product, nil
}

func (c *Client) GetCart(ctx context.Context) (*RemoteCart, error) {
	var out cartResponse
	if err := c.do(ctx, "get cart", http.MethodGet, "/cart", nil, &out); err != nil {
		return nil, err
	}
	return &out.Cart, nil
}

func (c *Client) AddCartItem(ctx context.Context, item domain.OrderItem) error {
	return c.do(ctx, "add cart item", http.MethodPost, "/cart/items", item, &messageResponse{})
}

func (c *Client) UpdateCartItem(ctx context.Context, id string, update CartItemUpdate) error {
	return c.do(ctx, "update cart item", http.MethodPut, "/cart/items/"+url.PathEscape(id), update, &messageResponse{})
}

func (c *Client) RemoveCartItem(ctx context.Context, id string) error {
	return c.do(ctx, "remove cart item", http.MethodDelete, "/cart/items/"+url.PathEscape(id), nil, &messageResponse{})
}

func (c *Client) ClearCart(ctx context.Context) error {
	return c.do(ctx, "clear cart", http.MethodDelete, "/cart/clear", nil, &messageResponse{})
}
