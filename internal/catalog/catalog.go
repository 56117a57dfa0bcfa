// Package catalog holds the product and gift listings shown by the storefront:
// the fallback catalog shipped with the binary, the search and sort rules of the
// catalog and gift views, and the builders that turn a product into a cart line.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"glassstore/internal/domain"

	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var embeddedCatalog []byte

// Data is a full catalog: glass products priced per square foot and fixed-price gifts.
type Data struct {
	Products []domain.Product     `yaml:"products"`
	Gifts    []domain.GiftProduct `yaml:"gifts"`
}

// Embedded returns the catalog compiled into the binary.
func Embedded() (*Data, error) {
	return Decode(bytes.NewReader(embeddedCatalog))
}

// LoadFile reads a catalog from a YAML file. An empty path returns the embedded one.
func LoadFile(path string) (*Data, error) {
	if path == "" {
		return Embedded()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

func Decode(r io.Reader) (*Data, error) {
	var d Data
	if err := yaml.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	for i, p := range d.Products {
		if p.ID == "" || p.Name == "" {
			return nil, fmt.Errorf("catalog product %d: id and name are required", i)
		}
	}
	for i, g := range d.Gifts {
		if g.ID == "" || g.Name == "" {
			return nil, fmt.Errorf("catalog gift %d: id and name are required", i)
		}
	}
	return &d, nil
}

// Product looks up a product by id.
func (d *Data) Product(id string) (domain.Product, bool) {
	for _, p := range d.Products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// Gift looks up a gift by id.
func (d *Data) Gift(id string) (domain.GiftProduct, bool) {
	for _, g := range d.Gifts {
		if g.ID == id {
			return g, true
		}
	}
	return domain.GiftProduct{}, false
}
