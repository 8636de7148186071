// Package catalog holds the read-only product list the cart resolves names and prices from.
package catalog

import (
	"context"
	"fmt"

	"github.com/nikolayk812/cartctx-demo/internal/domain"
	"github.com/nikolayk812/cartctx-demo/internal/port"
	"golang.org/x/text/currency"
)

// Catalog is immutable once built. It is safe for concurrent use.
type Catalog struct {
	products []domain.Product
	byID     map[string]int
	currency currency.Unit
}

func New(products []domain.Product) (*Catalog, error) {
	if len(products) == 0 {
		return nil, fmt.Errorf("catalog is empty: %w", domain.ErrInvalidProduct)
	}

	c := &Catalog{
		products: make([]domain.Product, 0, len(products)),
		byID:     make(map[string]int, len(products)),
		currency: products[0].Price.Currency,
	}

	for i, p := range products {
		if err := validateProduct(p); err != nil {
			return nil, fmt.Errorf("product[%d]: %w", i, err)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("product[%d] id[%s] is duplicated: %w", i, p.ID, domain.ErrInvalidProduct)
		}
		if p.Price.Currency != c.currency {
			return nil, fmt.Errorf("product[%s] currency[%s] != %s: %w",
				p.ID, p.Price.Currency, c.currency, domain.ErrMixedCurrency)
		}

		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}

	return c, nil
}

// Load reads every product from src once and builds a Catalog from them.
func Load(ctx context.Context, src port.ProductSource) (*Catalog, error) {
	products, err := src.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("src.ListProducts: %w", err)
	}

	c, err := New(products)
	if err != nil {
		return nil, fmt.Errorf("catalog.New: %w", err)
	}

	return c, nil
}

func (c *Catalog) Get(id string) (domain.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, false
	}

	return c.products[i], true
}

// Products returns the products in catalog order.
func (c *Catalog) Products() []domain.Product {
	return append([]domain.Product(nil), c.products...)
}

func (c *Catalog) Currency() currency.Unit {
	return c.currency
}

func (c *Catalog) Len() int {
	return len(c.products)
}

func validateProduct(p domain.Product) error {
	if p.ID == "" {
		return fmt.Errorf("id is empty: %w", domain.ErrInvalidProduct)
	}
	if p.Title == "" {
		return fmt.Errorf("id[%s] title is empty: %w", p.ID, domain.ErrInvalidProduct)
	}
	if p.Price.Amount.IsNegative() {
		return fmt.Errorf("id[%s] price[%s] is negative: %w", p.ID, p.Price.Amount, domain.ErrInvalidProduct)
	}

	return nil
}
