package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/cartctx-demo/internal/catalog"
	"github.com/nikolayk812/cartctx-demo/internal/config"
	"github.com/nikolayk812/cartctx-demo/internal/logger"
	"github.com/nikolayk812/cartctx-demo/internal/repository"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands. Defaults come from the environment.
type RootOptions struct {
	Env       string
	LogLevel  string
	LogSource bool
	DSN       string
	Currency  string

	Logger *slog.Logger
}

func NewRootCommand() *cobra.Command {
	cfg := config.Load()
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "shop",
		Short:         "A tiny shop with a shared cart",
		Long:          "Browse a static product catalog and manage a cart whose state is shared by every view.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.Logger = logger.New(cmd.ErrOrStderr(), logger.Options{
				Service:   "shop",
				Env:       opts.Env,
				Level:     opts.LogLevel,
				AddSource: opts.LogSource,
			})
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Env, "env", cfg.AppEnv, "application environment")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", cfg.LogLevel, "log level (debug|info|warn|error)")
	cmd.PersistentFlags().BoolVar(&opts.LogSource, "log-source", false, "include source file and line in log entries")
	cmd.PersistentFlags().StringVar(&opts.DSN, "dsn", cfg.CatalogDSN, "Postgres connection string for the catalog; empty uses the built-in dataset")
	cmd.PersistentFlags().StringVar(&opts.Currency, "currency", cfg.Currency, "cart currency (ISO 4217)")

	cmd.AddCommand(NewBrowseCommand(opts))
	cmd.AddCommand(NewProductsCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))

	return cmd
}

// openCatalog loads the catalog once from Postgres when a DSN is set,
// otherwise from the built-in dataset.
func openCatalog(ctx context.Context, opts *RootOptions) (*catalog.Catalog, error) {
	if opts.DSN == "" {
		c, err := catalog.Default()
		if err != nil {
			return nil, fmt.Errorf("catalog.Default: %w", err)
		}
		return c, nil
	}

	pool, err := pgxpool.New(ctx, opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	defer pool.Close()

	c, err := catalog.Load(ctx, repository.NewCatalog(pool))
	if err != nil {
		return nil, fmt.Errorf("catalog.Load: %w", err)
	}

	opts.logger().Info("catalog loaded from postgres", "products", c.Len())

	return c, nil
}

func (o *RootOptions) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}
