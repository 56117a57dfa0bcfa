package catalog

import (
	"sort"
	"strings"

	"glassstore/internal/domain"
)

// AllCategories matches every category.
const AllCategories = "All"

// Query narrows the product view. Search matches name or description,
// case-insensitively.
type Query struct {
	Search   string
	Category string
}

func FilterProducts(products []domain.Product, q Query) []domain.Product {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	category := strings.TrimSpace(q.Category)

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if category != "" && category != AllCategories && p.Category != category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Categories lists "All" followed by each distinct category in first-seen order.
func Categories(products []domain.Product) []string {
	out := []string{AllCategories}
	seen := map[string]bool{}
	for _, p := range products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}

type GiftSort string

const (
	SortPopular   GiftSort = "popular"
	SortPriceLow  GiftSort = "price-low"
	SortPriceHigh GiftSort = "price-high"
	SortRating    GiftSort = "rating"
)

// ParseGiftSort maps an unknown or empty value to SortPopular.
func ParseGiftSort(s string) GiftSort {
	switch GiftSort(strings.ToLower(strings.TrimSpace(s))) {
	case SortPriceLow:
		return SortPriceLow
	case SortPriceHigh:
		return SortPriceHigh
	case SortRating:
		return SortRating
	default:
		return SortPopular
	}
}

// SortGifts returns a sorted copy. Popular orders by review count.
func SortGifts(gifts []domain.GiftProduct, by GiftSort) []domain.GiftProduct {
	out := append([]domain.GiftProduct(nil), gifts...)
	var less func(a, b domain.GiftProduct) bool
	switch by {
	case SortPriceLow:
		less = func(a, b domain.GiftProduct) bool { return a.Price < b.Price }
	case SortPriceHigh:
		less = func(a, b domain.GiftProduct) bool { return a.Price > b.Price }
	case SortRating:
		less = func(a, b domain.GiftProduct) bool { return a.Rating > b.Rating }
	default:
		less = func(a, b domain.GiftProduct) bool { return a.ReviewCount > b.ReviewCount }
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func FilterGifts(gifts []domain.GiftProduct, category string) []domain.GiftProduct {
	category = strings.TrimSpace(category)
	if category == "" || category == AllCategories {
		return append([]domain.GiftProduct(nil), gifts...)
	}
	var out []domain.GiftProduct
	for _, g := range gifts {
		if g.Category == category {
			out = append(out, g)
		}
	}
	return out
}

// GiftCategories lists the gift filter options. Personalized gifts have their own
// screen and are not offered as a filter.
func GiftCategories(gifts []domain.GiftProduct) []string {
	out := []string{AllCategories}
	seen := map[string]bool{"Personalized": true}
	for _, g := range gifts {
		if seen[g.Category] {
			continue
		}
		seen[g.Category] = true
		out = append(out, g.Category)
	}
	return out
}
