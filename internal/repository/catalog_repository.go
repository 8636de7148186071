package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/cartctx-demo/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

const (
	listProductsSQL = `
SELECT id, title, price_amount::text, price_currency, description, image
FROM products
ORDER BY position`

	deleteProductsSQL = `DELETE FROM products`

	insertProductSQL = `
INSERT INTO products (id, position, title, price_amount, price_currency, description, image)
VALUES ($1, $2, $3, $4::numeric, $5, $6, $7)`
)

type CatalogRepository struct {
	q    querier
	pool *pgxpool.Pool
}

func NewCatalog(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{
		q:    pool,
		pool: pool,
	}
}

func NewCatalogWithTx(tx pgx.Tx) *CatalogRepository {
	return &CatalogRepository{
		q:    tx,
		pool: nil, // use provided transaction instead
	}
}

type productRow struct {
	ID            string
	Title         string
	PriceAmount   string
	PriceCurrency string
	Description   string
	Image         string
}

// ListProducts reads the whole catalog in one read-only transaction.
func (r *CatalogRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return withTx(ctx, r.pool, r.q, pgx.TxOptions{AccessMode: pgx.ReadOnly}, func(q querier) ([]domain.Product, error) {
		rows, err := q.Query(ctx, listProductsSQL)
		if err != nil {
			return nil, fmt.Errorf("q.Query: %w", err)
		}

		dbRows, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (productRow, error) {
			var p productRow
			err := row.Scan(&p.ID, &p.Title, &p.PriceAmount, &p.PriceCurrency, &p.Description, &p.Image)
			return p, err
		})
		if err != nil {
			return nil, fmt.Errorf("pgx.CollectRows: %w", err)
		}

		products, err := mapProductRowsToDomain(dbRows)
		if err != nil {
			return nil, fmt.Errorf("mapProductRowsToDomain: %w", err)
		}

		return products, nil
	})
}

// SeedProducts replaces the table contents with products, keeping their order.
func (r *CatalogRepository) SeedProducts(ctx context.Context, products []domain.Product) error {
	_, err := withTx(ctx, r.pool, r.q, pgx.TxOptions{}, func(q querier) (struct{}, error) {
		if _, err := q.Exec(ctx, deleteProductsSQL); err != nil {
			return struct{}{}, fmt.Errorf("q.Exec delete: %w", err)
		}

		for i, p := range products {
			if p.ID == "" {
				return struct{}{}, fmt.Errorf("product[%d] id is empty: %w", i, domain.ErrInvalidProduct)
			}

			_, err := q.Exec(ctx, insertProductSQL,
				p.ID, i, p.Title, p.Price.Amount.String(), p.Price.Currency.String(), p.Description, p.Image)
			if err != nil {
				return struct{}{}, fmt.Errorf("q.Exec insert[%s]: %w", p.ID, err)
			}
		}

		return struct{}{}, nil
	})

	return err
}

func mapProductRowToDomain(row productRow) (domain.Product, error) {
	parsedCurrency, err := currency.ParseISO(row.PriceCurrency)
	if err != nil {
		return domain.Product{}, fmt.Errorf("currency[%s] is not valid: %w", row.PriceCurrency, err)
	}

	amount, err := decimal.NewFromString(row.PriceAmount)
	if err != nil {
		return domain.Product{}, fmt.Errorf("price[%s] is not valid: %w", row.PriceAmount, err)
	}

	return domain.Product{
		ID:          row.ID,
		Title:       row.Title,
		Price:       domain.Money{Amount: amount, Currency: parsedCurrency},
		Description: row.Description,
		Image:       row.Image,
	}, nil
}

func mapProductRowsToDomain(rows []productRow) ([]domain.Product, error) {
	var products []domain.Product

	for _, row := range rows {
		p, err := mapProductRowToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapProductRowToDomain: %w", err)
		}

		products = append(products, p)
	}

	return products, nil
}
