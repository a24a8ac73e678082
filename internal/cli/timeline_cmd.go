package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/legalaid/caseprogress/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newTimelineCmd(app *App) *cobra.Command {
	var asJSON, browse bool

	cmd := &cobra.Command{
		Use:   "timeline CASE",
		Short: "Show a case's critical path, parallel branches and merge points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := loadProgress(cmd, app, args[0], "")
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), view.Timeline)
			}

			content := formatter.FormatTimeline(view.Timeline)
			if !browse {
				fmt.Fprint(cmd.OutOrStdout(), content)
				return nil
			}
			if !app.interactive() {
				return fmt.Errorf("--browse needs an interactive terminal")
			}
			m := newTimelineBrowser(view.CaseTitle, content)
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithOutput(cmd.OutOrStdout())).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the timeline as JSON")
	cmd.Flags().BoolVar(&browse, "browse", false, "Open the timeline in a scrollable viewer")

	return cmd
}
