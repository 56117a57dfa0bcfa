package catalog

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"glassstore/internal/apiclient"
	"glassstore/internal/domain"
	"glassstore/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedCatalog(t *testing.T) {
	d, err := Embedded()
	require.NoError(t, err)
	assert.Len(t, d.Products, 6)
	assert.Len(t, d.Gifts, 8)

	mirror, ok := d.Product("mirror-glass")
	require.True(t, ok)
	assert.Equal(t, 15.0, mirror.BasePrice)
	assert.Contains(t, mirror.Specifications, "Silvered backing")
}

func TestDecodeRejectsMissingID(t *testing.T) {
	_, err := Decode(strings.NewReader("products:\n  - name: Nameless\n"))
	require.Error(t, err)
}

func TestResolveProductImageReplacesSentinel(t *testing.T) {
	for _, bad := range []string{"#", "", "  ", "N/A", "null", "undefined", "na"} {
		got := ResolveProductImage(ImageInput{Image: bad, Name: "Mirror Glass", Category: "Mirrors"})
		assert.NotContains(t, got.Src, "#", bad)
		assert.Equal(t, got.Placeholder, got.Src, bad)
		assert.Contains(t, got.Src, "glass", bad)
	}
}

func TestResolveProductImageKeepsValidURL(t *testing.T) {
	got := ResolveProductImage(ImageInput{Image: "  https://img.test/a.jpg ", Name: "Mirror Glass"})
	assert.Equal(t, "https://img.test/a.jpg", got.Src)
	assert.NotEqual(t, got.Src, got.Placeholder)
}

func TestPlaceholderKeywords(t *testing.T) {
	in := ImageInput{
		Name:        "Mirror Glass",
		Category:    "Mirrors",
		Description: "High-quality silvered mirror glass with crystal-clear reflection",
	}
	assert.Equal(t, "glass,mirrors,mirror,high,quality,silvered", keywords(in))

	u, err := url.Parse(PlaceholderImage(in))
	require.NoError(t, err)
	assert.Equal(t, "source.unsplash.com", u.Host)
	assert.Equal(t, "/400x300/", u.Path)
	assert.Equal(t, "glass,mirrors,mirror,high,quality,silvered", mustUnescape(t, u.RawQuery))
}

func mustUnescape(t *testing.T, s string) string {
	t.Helper()
	out, err := url.QueryUnescape(s)
	require.NoError(t, err)
	return out
}

func TestFilterProducts(t *testing.T) {
	d, err := Embedded()
	require.NoError(t, err)

	got := FilterProducts(d.Products, Query{Search: "SAFETY"})
	names := productNames(got)
	assert.Equal(t, []string{"Tempered Glass", "Laminated Glass"}, names)

	got = FilterProducts(d.Products, Query{Category: "Decorative"})
	assert.Equal(t, []string{"Frosted Glass", "Tinted Glass"}, productNames(got))

	assert.Len(t, FilterProducts(d.Products, Query{Category: AllCategories}), 6)
	assert.Equal(t, []string{"All", "Mirrors", "Windows", "Safety", "Decorative"}, Categories(d.Products))
}

func productNames(ps []domain.Product) []string {
	var out []string
	for _, p := range ps {
		out = append(out, p.Name)
	}
	return out
}

func TestSortGifts(t *testing.T) {
	d, err := Embedded()
	require.NoError(t, err)

	ids := func(gs []domain.GiftProduct) []string {
		var out []string
		for _, g := range gs {
			out = append(out, g.ID)
		}
		return out
	}

	assert.Equal(t, "gift-4", SortGifts(d.Gifts, SortPopular)[0].ID)
	assert.Equal(t, "gift-4", SortGifts(d.Gifts, SortPriceLow)[0].ID)
	assert.Equal(t, "gift-5", SortGifts(d.Gifts, SortPriceHigh)[0].ID)
	assert.Equal(t, "gift-5", SortGifts(d.Gifts, SortRating)[0].ID)
	// stable: gift-1 and gift-7 tie on rating
	byRating := ids(SortGifts(d.Gifts, SortRating))
	assert.Equal(t, []string{"gift-5", "gift-1", "gift-7"}, byRating[:3])

	assert.Equal(t, "gift-1", d.Gifts[0].ID, "input must not be reordered")
	assert.Equal(t, SortPopular, ParseGiftSort("bogus"))
	assert.Equal(t, SortPriceHigh, ParseGiftSort("PRICE-HIGH"))
}

func TestGiftCategoriesExcludePersonalized(t *testing.T) {
	d, err := Embedded()
	require.NoError(t, err)
	cats := GiftCategories(d.Gifts)
	assert.Equal(t, "All", cats[0])
	assert.NotContains(t, cats, "Personalized")
	assert.Equal(t, []string{"All", "Decorative", "Frames", "Home Decor", "Art", "Storage"}, cats)
	assert.Len(t, FilterGifts(d.Gifts, "Home Decor"), 2)
}

func TestGiftLine(t *testing.T) {
	g := domain.GiftProduct{ID: "gift-4", Name: "Glass Coaster Set", Description: "Set of 6", Price: 34.99}
	now := time.UnixMilli(1700000000123)

	line := GiftLine(g, now)
	assert.Equal(t, "gift-4-1700000000123", line.ID)
	assert.Equal(t, 1, line.Quantity)
	assert.Equal(t, "34.99", line.UnitPrice.String())
	assert.Equal(t, "gift", line.Customization["type"])
	assert.Equal(t, "Set of 6", line.Customization["description"])
}

func TestGlassLine(t *testing.T) {
	p := domain.Product{ID: "mirror-glass", Name: "Mirror Glass", BasePrice: 15}

	line, err := GlassLine(p, "mirror-glass-1", 24, 36, 2)
	require.NoError(t, err)
	assert.Equal(t, "90", line.UnitPrice.String())
	assert.Equal(t, "180", line.LineTotal().String())
	assert.Equal(t, 6.0, line.Customization["area"])

	_, err = GlassLine(p, "x", 0, 36, 1)
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "height", vErr.Field)
}

type stubSource struct {
	products []domain.Product
	err      error
}

func (s stubSource) ListProducts(context.Context, string) ([]domain.Product, error) {
	return s.products, s.err
}

func (s stubSource) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, p := range s.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, &apiclient.HTTPStatusError{Status: 404, Body: `{"error":"Product not found"}`}
}

func TestServiceFallsBackOnConnectionError(t *testing.T) {
	d, err := Embedded()
	require.NoError(t, err)
	svc := NewService(stubSource{err: &apiclient.ConnectionError{Origin: "http://localhost:5000", Err: errors.New("refused")}}, d, logging.Discard())

	listing, err := svc.ListProducts(context.Background(), Query{Category: "Safety"})
	require.NoError(t, err)
	assert.True(t, listing.Cached)
	assert.Contains(t, listing.Notice, "Showing cached products")
	assert.Len(t, listing.Products, 2)

	p, err := svc.GetProduct(context.Background(), "window-glass")
	require.NoError(t, err)
	assert.Equal(t, "Window Glass", p.Name)
}

func TestServicePassesClientErrorsThrough(t *testing.T) {
	svc := NewService(stubSource{err: &apiclient.HTTPStatusError{Status: 401}}, nil, logging.Discard())
	_, err := svc.ListProducts(context.Background(), Query{})
	var statusErr *apiclient.HTTPStatusError
	require.ErrorAs(t, err, &statusErr)
}

func TestServiceProductNotFound(t *testing.T) {
	svc := NewService(stubSource{products: []domain.Product{{ID: "p1", Name: "P"}}}, nil, logging.Discard())
	_, err := svc.GetProduct(context.Background(), "missing")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	listing, err := svc.ListProducts(context.Background(), Query{})
	require.NoError(t, err)
	assert.False(t, listing.Cached)
	assert.Len(t, listing.Products, 1)
}
