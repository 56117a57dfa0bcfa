package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"glassstore/internal/domain"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTokens struct {
	token   string
	cleared bool
}

func (s *stubTokens) Token() string { return s.token }

func (s *stubTokens) ClearToken() {
	s.token = ""
	s.cleared = true
}

type stubRecorder struct {
	mu       sync.Mutex
	outcomes []string
}

func (r *stubRecorder) ObserveRequest(op, outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, op+":"+outcome)
}

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *stubRecorder) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	rec := &stubRecorder{}
	return New(Options{BaseURL: srv.URL + "/api", Logger: quietLogger(), Recorder: rec}), rec
}

func TestUnreachableServerIsConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL + "/api"
	srv.Close()

	c := New(Options{BaseURL: base, Logger: quietLogger()})
	_, err := c.Health(context.Background())

	var connErr *ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, "health", connErr.Op)
	assert.Contains(t, connErr.Hint(), "Unable to connect to server")
	assert.Contains(t, connErr.Hint(), strings.TrimSuffix(base, "/api"))
	assert.NotContains(t, connErr.Hint(), "/api")
}

func TestServerErrorIsHTTPStatusError(t *testing.T) {
	c, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "Failed to get products"}`))
	})

	_, err := c.ListProducts(context.Background(), "")

	var statusErr *HTTPStatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 500, statusErr.Status)
	assert.Equal(t, "Failed to get products", statusErr.Message())
	assert.Contains(t, err.Error(), "HTTP error! status: 500")
	assert.Equal(t, []string{"list products:status_error"}, rec.outcomes)
}

func TestHTTPStatusErrorMessageFallsBackToBody(t *testing.T) {
	e := &HTTPStatusError{Status: 502, Body: "Bad Gateway"}
	assert.Equal(t, "Bad Gateway", e.Message())
}

func TestAuthorizationHeaderOnlyWithToken(t *testing.T) {
	var got []string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"orders": []}`))
	})

	_, err := c.ListOrders(context.Background())
	require.NoError(t, err)

	tokens := &stubTokens{token: "abc"}
	c.SetTokenStore(tokens)
	_, err = c.ListOrders(context.Background())
	require.NoError(t, err)

	tokens.token = ""
	_, err = c.ListOrders(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"", "Bearer abc", ""}, got)
}

func TestLoginDecodesAndValidates(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/login", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var creds Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "bob@x.com", creds.Email)
		_, _ = w.Write([]byte(`{"message":"ok","access_token":"tok","user":{"id":"1","name":"Bob","email":"bob@x.com"}}`))
	})

	res, err := c.Login(context.Background(), Credentials{Email: "bob@x.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "tok", res.AccessToken)
	assert.Equal(t, "Bob", res.User.Name)
}

func TestSchemaMismatchIsDecodeError(t *testing.T) {
	cases := map[string]string{
		"missing token": `{"user":{"id":"1","email":"a@b.c"}}`,
		"not json":      `<html>`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			})
			_, err := c.Login(context.Background(), Credentials{Email: "a@b.c"})
			var decodeErr *DecodeError
			require.ErrorAs(t, err, &decodeErr)
			assert.Equal(t, "login", decodeErr.Op)
		})
	}
}

func TestReviewRatingOutOfRangeIsDecodeError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"reviews":[{"id":"r1","product_id":"p1","rating":9}]}`))
	})
	_, err := c.ListReviews(context.Background(), "p1")
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
}

func TestListProductsCategoryQuery(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Safety Glass", r.URL.Query().Get("category"))
		_, _ = w.Write([]byte(`{"products":[{"id":"p1","name":"Tempered Glass","basePrice":25}]}`))
	})
	products, err := c.ListProducts(context.Background(), "Safety Glass")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 25.0, products[0].BasePrice)
}

func TestOrderAmountAcceptsString(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/orders/o%201", r.URL.EscapedPath())
		_, _ = w.Write([]byte(`{"order":{"id":"o 1","total_amount":"177.5","billing_info":{"email":"a@b.co","phone":"1","address":"x","city":"y","state":"z","pincode":"1"}}}`))
	})
	order, err := c.GetOrder(context.Background(), "o 1")
	require.NoError(t, err)
	assert.Equal(t, "177.50", order.TotalAmount.String())
}

func TestCreateProductValidatesLocally(t *testing.T) {
	called := false
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { called = true })

	_, err := c.CreateProduct(context.Background(), domain.NewProduct{Name: "Mirror Glass"})
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.False(t, called)
}

func TestCanceledContextIsNotConnectionError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"healthy"}`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Health(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	var connErr *ConnectionError
	assert.False(t, errors.As(err, &connErr))
}

func TestLogoutClearsTokenStore(t *testing.T) {
	c := New(Options{BaseURL: "http://localhost:5000/api"})
	tokens := &stubTokens{token: "abc"}
	c.SetTokenStore(tokens)
	c.Logout()
	assert.True(t, tokens.cleared)

	// no store attached
	New(Options{}).Logout()
}

func TestRemoteCartEndpoints(t *testing.T) {
	var (
		mu    sync.Mutex
		calls []string
	)
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls = append(calls, r.Method+" "+r.URL.EscapedPath())
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodGet {
			_, _ = w.Write([]byte(`{"cart":{"id":"c1","items":[{"id":"mirror-glass-1","name":"Mirror Glass","price":15,"quantity":2}]}}`))
			return
		}
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	})
	ctx := context.Background()

	cart, err := c.GetCart(ctx)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)

	require.NoError(t, c.AddCartItem(ctx, domain.OrderItem{ID: "gift-1-1", Name: "Vase", Price: 20, Quantity: 1}))
	require.NoError(t, c.UpdateCartItem(ctx, "gift 1", CartItemUpdate{Quantity: 3}))
	require.NoError(t, c.RemoveCartItem(ctx, "gift-1-1"))
	require.NoError(t, c.ClearCart(ctx))

	assert.Equal(t, []string{
		"GET /api/cart",
		"POST /api/cart/items",
		"PUT /api/cart/items/gift%201",
		"DELETE /api/cart/items/gift-1-1",
		"DELETE /api/cart/clear",
	}, calls)
}

func TestProfileRequiresUser(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user":{"id":"u1","name":"Asha","email":"asha@example.com"}}`))
	})
	u, err := c.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", u.Email)
}

func TestListOrdersAcceptsStoredBillingWithEmptyFields(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"orders":[{"id":"o1","total_amount":"118.00","billing_info":{"email":"not-an-email","phone":"","address":"","city":"","state":"","pincode":""},"items":[]}]}`))
	})
	orders, err := c.ListOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "", orders[0].BillingInfo.Phone)
	assert.Equal(t, "118.00", orders[0].TotalAmount.String())
}
