package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"

	"github.com/nikolayk812/cartctx-demo/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"gopkg.in/yaml.v3"
)

//go:embed data/products.yaml
var defaultDataset []byte

type dataset struct {
	Currency string           `yaml:"currency"`
	Products []datasetProduct `yaml:"products"`
}

type datasetProduct struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Price       string `yaml:"price"`
	Description string `yaml:"description"`
	Image       string `yaml:"image"`
}

// Dataset is a port.ProductSource backed by a YAML document.
type Dataset struct {
	raw []byte
}

func NewDataset(raw []byte) *Dataset {
	return &Dataset{raw: raw}
}

// DefaultDataset is the dataset compiled into the binary.
func DefaultDataset() *Dataset {
	return NewDataset(defaultDataset)
}

// Default builds the Catalog from the compiled-in dataset.
func Default() (*Catalog, error) {
	return Load(context.Background(), DefaultDataset())
}

func (d *Dataset) ListProducts(_ context.Context) ([]domain.Product, error) {
	var ds dataset

	dec := yaml.NewDecoder(bytes.NewReader(d.raw))
	dec.KnownFields(true)
	if err := dec.Decode(&ds); err != nil {
		return nil, fmt.Errorf("yaml.Decode: %w", err)
	}

	unit, err := currency.ParseISO(ds.Currency)
	if err != nil {
		return nil, fmt.Errorf("currency[%s] is not valid: %w", ds.Currency, err)
	}

	products := make([]domain.Product, 0, len(ds.Products))
	for _, p := range ds.Products {
		amount, err := decimal.NewFromString(p.Price)
		if err != nil {
			return nil, fmt.Errorf("product[%s] price[%s] is not valid: %w", p.ID, p.Price, err)
		}

		products = append(products, domain.Product{
			ID:          p.ID,
			Title:       p.Title,
			Price:       domain.Money{Amount: amount, Currency: unit},
			Description: p.Description,
			Image:       p.Image,
		})
	}

	return products, nil
}
