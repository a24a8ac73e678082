package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/legalaid/caseprogress/internal/cli/formatter"
	"github.com/legalaid/caseprogress/internal/domain"
	"github.com/spf13/cobra"
)

func newCaseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "case",
		Short: "Manage legal cases",
	}

	cmd.AddCommand(
		newCaseNewCmd(app),
		newCaseListCmd(app),
		newCaseShowCmd(app),
		newCaseCloseCmd(app),
		newCaseReopenCmd(app),
		newCaseRemoveCmd(app),
		newCaseImportCmd(app),
	)

	return cmd
}

func newCaseNewCmd(app *App) *cobra.Command {
	var title, client, opened string
	var category categoryFlag

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Open a new case",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (title == "" || category.value == "") && app.interactive() {
				if category.value == "" {
					category.value = domain.CategoryFamily
				}
				if err := caseForm(&title, &client, &category.value).Run(); err != nil {
					return err
				}
			}
			if strings.TrimSpace(title) == "" {
				return fmt.Errorf("--title is required")
			}
			if category.value == "" {
				return fmt.Errorf("--category is required (one of %s)", joinCategories())
			}

			c := &domain.LegalCase{
				Title:      strings.TrimSpace(title),
				ClientName: strings.TrimSpace(client),
				Category:   category.value,
			}
			if opened != "" {
				at, err := parseTimeFlag("opened", opened)
				if err != nil {
					return err
				}
				c.OpenedAt = at
			}

			if err := app.Cases.Create(cmd.Context(), c); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created case %s [%s]\n", c.Title, c.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Case title")
	cmd.Flags().StringVar(&client, "client", "", "Client name")
	cmd.Flags().Var(&category, "category", "Case category ("+joinCategories()+")")
	cmd.Flags().StringVar(&opened, "opened", "", "Date the case was opened (default now)")

	return cmd
}

func newCaseListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cases",
		RunE: func(cmd *cobra.Command, args []string) error {
			cases, err := app.Cases.List(cmd.Context(), all)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCaseList(cases, time.Now()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include closed cases")

	return cmd
}

func newCaseShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show CASE",
		Short: "Show a case and its service log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := app.resolveCase(ctx, args[0])
			if err != nil {
				return err
			}
			records, err := app.Records.ListByCase(ctx, c.ID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCaseDetail(c, records))
			return nil
		},
	}
}

func newCaseCloseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "close CASE",
		Short: "Close a case; closed cases accept no new records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := app.resolveCase(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Cases.Close(ctx, c.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Closed case %s [%s]\n", c.Title, c.DisplayID())
			return nil
		},
	}
}

func newCaseReopenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reopen CASE",
		Short: "Reopen a closed case",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := app.resolveCase(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Cases.Reopen(ctx, c.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reopened case %s [%s]\n", c.Title, c.DisplayID())
			return nil
		},
	}
}

func newCaseRemoveCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "rm CASE",
		Short: "Delete a case and all of its service records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := app.resolveCase(ctx, args[0])
			if err != nil {
				return err
			}
			if !force {
				if !app.interactive() {
					return fmt.Errorf("refusing to delete %q without --force", c.Title)
				}
				confirmed := false
				if err := confirmForm(fmt.Sprintf("Delete %q and all of its records?", c.Title), &confirmed).Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}
			if err := app.Cases.Delete(ctx, c.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted case %s [%s]\n", c.Title, c.DisplayID())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation")

	return cmd
}

func newCaseImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import a case and its service history from a JSON or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Import.ImportCase(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported case %s [%s]: %d records, %d dependencies\n",
				res.Case.Title, res.Case.DisplayID(), res.RecordCount, res.DependencyCount)
			return nil
		},
	}
}
