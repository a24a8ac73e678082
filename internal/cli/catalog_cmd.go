package cli

import (
	"fmt"

	"github.com/legalaid/caseprogress/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newCatalogCmd(app *App) *cobra.Command {
	var category categoryFlag

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Show required and optional services per category",
		RunE: func(cmd *cobra.Command, args []string) error {
			if category.value == "" {
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCatalog(app.Catalog))
				return nil
			}
			out, err := formatter.FormatCatalogEntry(app.Catalog, category.value)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().Var(&category, "category", "Show weights for one category")

	return cmd
}
