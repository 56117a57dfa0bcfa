package catalog

import (
	"context"
	"errors"

	"glassstore/internal/apiclient"
	"glassstore/internal/domain"

	"github.com/sirupsen/logrus"
)

type productSource interface {
	ListProducts(ctx context.Context, category string) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
}

// Service serves the catalog views. Products come from the backend; when the
// backend cannot be read the fallback catalog is served instead and the listing
// is marked as cached.
type Service struct {
	source   productSource
	fallback *Data
	logger   *logrus.Entry
}

func NewService(source productSource, fallback *Data, logger *logrus.Entry) *Service {
	if fallback == nil {
		fallback = &Data{}
	}
	return &Service{source: source, fallback: fallback, logger: logger}
}

// Listing is one page of the product view.
type Listing struct {
	Products   []domain.Product `json:"products"`
	Categories []string         `json:"categories"`
	Cached     bool             `json:"cached"`
	// Notice explains why cached products are shown.
	Notice string `json:"notice,omitempty"`
}

func (s *Service) ListProducts(ctx context.Context, q Query) (Listing, error) {
	products, err := s.source.ListProducts(ctx, "")
	cached := false
	notice := ""
	if err != nil {
		if !fallbackAllowed(err) {
			return Listing{}, err
		}
		s.logger.WithError(err).Warn("product list unavailable, serving cached products")
		products = s.fallback.Products
		cached = true
		notice = "Showing cached products. " + errorText(err)
	}
	return Listing{
		Products:   FilterProducts(products, q),
		Categories: Categories(products),
		Cached:     cached,
		Notice:     notice,
	}, nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.source.GetProduct(ctx, id)
	if err == nil {
		return p, nil
	}
	if fallbackAllowed(err) {
		if cached, ok := s.fallback.Product(id); ok {
			return &cached, nil
		}
	}
	var statusErr *apiclient.HTTPStatusError
	if errors.As(err, &statusErr) && statusErr.Status == 404 {
		return nil, domain.ErrNotFound
	}
	return nil, err
}

// Gifts lists the gift range for one category in the requested order.
func (s *Service) Gifts(category string, by GiftSort) ([]domain.GiftProduct, []string) {
	return SortGifts(FilterGifts(s.fallback.Gifts, category), by), GiftCategories(s.fallback.Gifts)
}

func (s *Service) Gift(id string) (domain.GiftProduct, error) {
	g, ok := s.fallback.Gift(id)
	if !ok {
		return domain.GiftProduct{}, domain.ErrNotFound
	}
	return g, nil
}

// fallbackAllowed is true for failures where the backend gave no usable answer.
// A 4xx is an answer and is passed through.
func fallbackAllowed(err error) bool {
	var (
		connErr   *apiclient.ConnectionError
		statusErr *apiclient.HTTPStatusError
		decodeErr *apiclient.DecodeError
	)
	switch {
	case errors.As(err, &connErr), errors.As(err, &decodeErr):
		return true
	case errors.As(err, &statusErr):
		return statusErr.Status >= 500
	default:
		return false
	}
}

func errorText(err error) string {
	var connErr *apiclient.ConnectionError
	if errors.As(err, &connErr) {
		return connErr.Hint()
	}
	var statusErr *apiclient.HTTPStatusError
	if errors.As(err, &statusErr) {
		return statusErr.Message()
	}
	return err.Error()
}
