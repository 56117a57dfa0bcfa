// Package seed pushes the bundled catalog to the backend so a fresh install
// has products to show.
package seed

import (
	"context"
	"fmt"
	"strings"

	"glassstore/internal/catalog"
	"glassstore/internal/domain"

	"github.com/sirupsen/logrus"
)

type productAPI interface {
	ListProducts(ctx context.Context, category string) ([]domain.Product, error)
	CreateProduct(ctx context.Context, p domain.NewProduct) (*domain.Product, error)
}

// Result counts what Apply did.
type Result struct {
	Created int
	Skipped int
}

// Apply creates every catalog product the backend does not list yet. Products
// are matched by name, case-insensitively, so running it twice creates nothing
// the second time. Creating products needs an admin session on the client.
func Apply(ctx context.Context, api productAPI, data *catalog.Data, logger *logrus.Entry) (Result, error) {
	var res Result
	existing, err := api.ListProducts(ctx, "")
	if err != nil {
		return res, fmt.Errorf("list products: %w", err)
	}
	seen := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		seen[nameKey(p.Name)] = struct{}{}
	}

	for _, p := range data.Products {
		if _, ok := seen[nameKey(p.Name)]; ok {
			res.Skipped++
			continue
		}
		created, err := api.CreateProduct(ctx, domain.NewProduct{
			Name:           p.Name,
			Category:       p.Category,
			Description:    p.Description,
			BasePrice:      p.BasePrice,
			Image:          p.Image,
			Specifications: p.Specifications,
		})
		if err != nil {
			return res, fmt.Errorf("create product %q: %w", p.Name, err)
		}
		seen[nameKey(p.Name)] = struct{}{}
		res.Created++
		logger.WithFields(logrus.Fields{"id": created.ID, "name": created.Name}).Info("product seeded")
	}
	return res, nil
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
