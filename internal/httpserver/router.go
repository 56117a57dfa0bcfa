package httpserver

import (
	"context"
	"errors"

	"glassstore/internal/apiclient"
	"glassstore/internal/cart"
	"glassstore/internal/catalog"
	"glassstore/internal/checkout"
	"glassstore/internal/domain"
	"glassstore/internal/feedback"
	"glassstore/internal/metrics"
	"glassstore/internal/pricing"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

type sessionService interface {
	Login(ctx context.Context, email, password string) (*domain.User, error)
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Logout(ctx context.Context) error
	User() *domain.User
	Token() string
	IsAuthenticated() bool
	IsAdmin() bool
}

type adminGate interface {
	Login(ctx context.Context, email, password, code string) (*domain.User, error)
	Remaining() int
}

type catalogService interface {
	ListProducts(ctx context.Context, q catalog.Query) (catalog.Listing, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	Gifts(category string, by catalog.GiftSort) ([]domain.GiftProduct, []string)
	Gift(id string) (domain.GiftProduct, error)
}

type cartEngine interface {
	Add(line domain.CartLine) error
	Update(id string, patch cart.Patch) (bool, error)
	Remove(id string) bool
	Clear()
	Get(id string) (domain.CartLine, bool)
	Lines() []domain.CartLine
	Subtotal() decimal.Decimal
	ItemCount() int
}

type checkoutService interface {
	Quote() pricing.Breakdown
	Submit(ctx context.Context, req checkout.Request) (*checkout.Receipt, error)
	Pay(ctx context.Context, details checkout.PaymentDetails) (*apiclient.PaymentResult, error)
}

type orderReader interface {
	ListOrders(ctx context.Context) ([]domain.Order, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
}

type reviewService interface {
	Submit(ctx context.Context, d feedback.Draft) (*domain.Review, error)
	Load(ctx context.Context, productID string, by feedback.SortOrder) (*feedback.Page, error)
}

// Deps are the components the routes work on. Metrics may be nil.
type Deps struct {
	Session   sessionService
	AdminGate adminGate
	Catalog   catalogService
	Cart      cartEngine
	Checkout  checkoutService
	Orders    orderReader
	Reviews   reviewService
	Backend   backendHealth
	Metrics   *metrics.Metrics

	CORSOrigins []string
	RateLimit   rate.Limit
	RateBurst   int
}

// buildRouter wires routes for the storefront surface.
func buildRouter(logger *logrus.Entry, deps Deps) (*gin.Engine, error) {
	if deps.Session == nil || deps.Cart == nil || deps.Catalog == nil || deps.Checkout == nil {
		return nil, errors.New("httpserver: session, cart, catalog and checkout are required")
	}

	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(corsConfig(deps.CORSOrigins)))
	if deps.Metrics != nil {
		router.Use(metricsMiddleware(deps.Metrics))
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}
	if deps.RateLimit > 0 {
		router.Use(newRateLimiter(deps.RateLimit, deps.RateBurst, logger).middleware())
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.Backend))

	h := &handlers{deps: deps, logger: logger}

	sess := router.Group("/session")
	sess.GET("", h.getSession)
	sess.POST("/login", h.login)
	sess.POST("/register", h.register)
	sess.POST("/admin-login", h.adminLogin)
	sess.POST("/logout", h.logout)

	cat := router.Group("/catalog")
	cat.GET("/products", h.listProducts)
	cat.GET("/products/:id", h.getProduct)
	cat.GET("/gifts", h.listGifts)

	lines := router.Group("/cart")
	lines.GET("", h.getCart)
	lines.DELETE("", h.clearCart)
	lines.POST("/items", h.addLine)
	lines.PATCH("/items/:id", h.updateLine)
	lines.DELETE("/items/:id", h.removeLine)
	lines.POST("/gifts/:id", h.addGift)
	lines.POST("/glass/:id", h.addGlass)

	co := router.Group("/checkout")
	co.GET("/quote", h.quote)
	co.POST("", h.submitOrder)
	co.POST("/payment", h.pay)

	router.GET("/orders", h.listOrders)
	router.GET("/orders/:id", h.getOrder)
	router.GET("/reviews/:productId", h.listReviews)
	router.POST("/reviews", h.createReview)

	return router, nil
}

type handlers struct {
	deps   Deps
	logger *logrus.Entry
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	return cfg
}
