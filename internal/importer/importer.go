// Package importer loads glass products from a CSV export into the backend.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"glassstore/internal/domain"
)

type ProductWriter interface {
	CreateProduct(ctx context.Context, p domain.NewProduct) (*domain.Product, error)
}

// CSVImporter reads rows with the columns name, category, description,
// basePrice, image and specifications. Specifications are separated by ';'.
// A row with an empty name continues the previous product and only adds
// specifications.
type CSVImporter struct {
	reader *csv.Reader
	writer ProductWriter
}

func NewCSVImporter(r io.Reader, w ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1
	csvr.TrimLeadingSpace = true
	return &CSVImporter{reader: csvr, writer: w}
}

// Run creates one product per named row and returns how many were created.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["name"]; !ok {
		return 0, errors.New("read headers: missing name column")
	}

	var (
		current  *domain.NewProduct
		line     int
		imported int
	)
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		line++

		name := pick(record, index, "name")
		specs := splitSpecs(pick(record, index, "specifications"))
		if name == "" {
			if current != nil {
				current.Specifications = append(current.Specifications, specs...)
			}
			continue
		}

		if current != nil {
			if err := i.save(ctx, current); err != nil {
				return imported, err
			}
			imported++
		}
		price, err := parsePrice(pick(record, index, "basePrice"))
		if err != nil {
			return imported, fmt.Errorf("row %d: %w", line, err)
		}
		current = &domain.NewProduct{
			Name:           name,
			Category:       pick(record, index, "category"),
			Description:    pick(record, index, "description"),
			BasePrice:      price,
			Image:          pick(record, index, "image"),
			Specifications: specs,
		}
	}

	if current != nil {
		if err := i.save(ctx, current); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}

func (i *CSVImporter) save(ctx context.Context, p *domain.NewProduct) error {
	if p.Specifications == nil {
		p.Specifications = []string{}
	}
	if _, err := i.writer.CreateProduct(ctx, *p); err != nil {
		return fmt.Errorf("create product %q: %w", p.Name, err)
	}
	return nil
}

func parsePrice(s string) (float64, error) {
	if s == "" {
		return 0, errors.New("basePrice required")
	}
	v, err := strconv.ParseFloat(strings.TrimPrefix(s, "$"), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid basePrice %q", s)
	}
	return v, nil
}

func splitSpecs(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
