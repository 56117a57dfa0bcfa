package importer

import (
	"context"
	"strings"
	"testing"

	"glassstore/internal/domain"
)

type stubWriter struct {
	items []domain.NewProduct
	err   error
}

func (s *stubWriter) CreateProduct(_ context.Context, p domain.NewProduct) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.items = append(s.items, p)
	return &domain.Product{ID: "id-" + p.Name, Name: p.Name}, nil
}

func TestCSVImporter_Run(t *testing.T) {
	csvData := `name,category,description,basePrice,image,specifications
Frosted Glass,Decorative,Etched privacy glass,18.5,https://example.com/frosted.jpg,5mm thickness;Acid etched
,,,,,Polished edges
Laminated Glass,Safety,Two panes bonded with PVB,30,,`

	w := &stubWriter{}
	count, err := NewCSVImporter(strings.NewReader(csvData), w).Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 products imported, got %d", count)
	}
	if len(w.items) != 2 {
		t.Fatalf("expected 2 products saved, got %d", len(w.items))
	}

	first := w.items[0]
	if first.Name != "Frosted Glass" || first.Category != "Decorative" || first.BasePrice != 18.5 {
		t.Fatalf("unexpected product data: %+v", first)
	}
	if len(first.Specifications) != 3 || first.Specifications[2] != "Polished edges" {
		t.Fatalf("expected continuation row specs, got %v", first.Specifications)
	}
	if w.items[1].Specifications == nil {
		t.Fatalf("expected empty, non-nil specifications")
	}
}

func TestCSVImporter_BadPrice(t *testing.T) {
	csvData := `name,category,description,basePrice
Broken,Misc,No price,abc`

	w := &stubWriter{}
	if _, err := NewCSVImporter(strings.NewReader(csvData), w).Run(context.Background()); err == nil {
		t.Fatalf("expected error for invalid price")
	}
	if len(w.items) != 0 {
		t.Fatalf("expected nothing saved")
	}
}

func TestCSVImporter_MissingNameColumn(t *testing.T) {
	if _, err := NewCSVImporter(strings.NewReader("category,basePrice\nA,1"), &stubWriter{}).Run(context.Background()); err == nil {
		t.Fatalf("expected error for missing name column")
	}
}
