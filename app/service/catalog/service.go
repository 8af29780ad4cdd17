package catalog

import (
	"encoding/json"
	"errors"
	"strings"

	_ "embed"

	"github.com/elliotchance/pie/v2"
	"github.com/samber/do"
	"github.com/samber/oops"
)

var ErrNotFound = errors.New("product not found")

//go:embed catalog.json
var catalogData []byte

type Service struct {
	products []Product
}

func New(_ *do.Injector) (*Service, error) {
	var products []Product
	if err := json.Unmarshal(catalogData, &products); err != nil {
		return nil, oops.Errorf("failed to parse embedded catalog: %w", err)
	}

	return &Service{products: products}, nil
}

// All returns the catalog in presentation order. Callers must not mutate it.
func (s *Service) All() []Product {
	return s.products
}

func (s *Service) GetByID(id string) (Product, error) {
	index := pie.FindFirstUsing(s.products, func(p Product) bool {
		return p.ID == id
	})
	if index < 0 {
		return Product{}, ErrNotFound
	}

	return s.products[index], nil
}

func (s *Service) FindByName(name string) (Product, error) {
	name = strings.ToLower(name)

	index := pie.FindFirstUsing(s.products, func(p Product) bool {
		return strings.ToLower(p.Name) == name
	})
	if index < 0 {
		return Product{}, ErrNotFound
	}

	return s.products[index], nil
}
