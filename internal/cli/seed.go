package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/cartctx-demo/internal/catalog"
	"github.com/nikolayk812/cartctx-demo/internal/port"
	"github.com/nikolayk812/cartctx-demo/internal/repository"
	"github.com/spf13/cobra"
)

func NewSeedCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Write the built-in catalog into Postgres",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.DSN == "" {
				return errors.New("--dsn is required")
			}

			c, err := catalog.Default()
			if err != nil {
				return fmt.Errorf("catalog.Default: %w", err)
			}

			ctx := cmd.Context()

			pool, err := pgxpool.New(ctx, opts.DSN)
			if err != nil {
				return fmt.Errorf("pgxpool.New: %w", err)
			}
			defer pool.Close()

			if err := seed(ctx, repository.NewCatalog(pool), c); err != nil {
				return err
			}

			opts.logger().Info("catalog seeded", "products", c.Len())
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "seeded %d products\n", c.Len())
			return err
		},
	}
}

func seed(ctx context.Context, dst port.ProductSeeder, c *catalog.Catalog) error {
	if err := dst.SeedProducts(ctx, c.Products()); err != nil {
		return fmt.Errorf("dst.SeedProducts: %w", err)
	}
	return nil
}
