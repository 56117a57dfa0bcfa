package seed

import (
	"context"
	"errors"
	"testing"

	"glassstore/internal/catalog"
	"glassstore/internal/domain"
	"glassstore/internal/logging"
)

type stubAPI struct {
	existing []domain.Product
	created  []domain.NewProduct
	listErr  error
}

func (s *stubAPI) ListProducts(context.Context, string) ([]domain.Product, error) {
	return s.existing, s.listErr
}

func (s *stubAPI) CreateProduct(_ context.Context, p domain.NewProduct) (*domain.Product, error) {
	s.created = append(s.created, p)
	return &domain.Product{ID: "new-id", Name: p.Name}, nil
}

func TestApply_SkipsExistingByName(t *testing.T) {
	data := &catalog.Data{Products: []domain.Product{
		{ID: "a", Name: "Mirror Glass", BasePrice: 15},
		{ID: "b", Name: "Window Glass", BasePrice: 12},
	}}
	api := &stubAPI{existing: []domain.Product{{ID: "x", Name: " mirror glass "}}}

	res, err := Apply(context.Background(), api, data, logging.Discard())
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if res.Created != 1 || res.Skipped != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
	if len(api.created) != 1 || api.created[0].Name != "Window Glass" || api.created[0].BasePrice != 12 {
		t.Fatalf("unexpected creates %+v", api.created)
	}
}

func TestApply_ListError(t *testing.T) {
	api := &stubAPI{listErr: errors.New("down")}
	if _, err := Apply(context.Background(), api, &catalog.Data{}, logging.Discard()); err == nil {
		t.Fatalf("expected error")
	}
	if len(api.created) != 0 {
		t.Fatalf("expected no creates")
	}
}
