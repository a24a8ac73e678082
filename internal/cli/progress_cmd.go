package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/legalaid/caseprogress/internal/app"
	"github.com/legalaid/caseprogress/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newProgressCmd(app *App) *cobra.Command {
	var asJSON bool
	var at string

	cmd := &cobra.Command{
		Use:   "progress CASE",
		Short: "Show weighted completion of a case's required services",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := loadProgress(cmd, app, args[0], at)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), view)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCaseProgress(view))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full progress view as JSON")
	cmd.Flags().StringVar(&at, "at", "", "Report generation time (default now)")

	return cmd
}

// loadProgress resolves ref to a case and fetches its progress view.
func loadProgress(cmd *cobra.Command, a *App, ref, at string) (*app.CaseProgressView, error) {
	ctx := cmd.Context()
	c, err := a.resolveCase(ctx, ref)
	if err != nil {
		return nil, err
	}
	req := app.NewProgressRequest(c.ID)
	if at != "" {
		t, err := parseTimeFlag("at", at)
		if err != nil {
			return nil, err
		}
		req.Now = &t
	}
	return a.Progress.GetCaseProgress(ctx, req)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
