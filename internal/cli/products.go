package cli

import (
	"github.com/nikolayk812/cartctx-demo/internal/domain"
	"github.com/nikolayk812/cartctx-demo/internal/view"
	"github.com/spf13/cobra"
)

func NewProductsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "products",
		Short: "List the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openCatalog(cmd.Context(), opts)
			if err != nil {
				return err
			}

			return view.RenderCatalog(cmd.OutOrStdout(), c.Products(), domain.Cart{})
		},
	}
}
