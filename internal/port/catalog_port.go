package port

import (
	"context"

	"github.com/nikolayk812/cartctx-demo/internal/domain"
)

type ProductSource interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

type ProductSeeder interface {
	SeedProducts(ctx context.Context, products []domain.Product) error
}

type ProductLookup interface {
	Get(id string) (domain.Product, bool)
}
