package cli

import (
	"context"

	"github.com/legalaid/caseprogress/internal/catalog"
	"github.com/legalaid/caseprogress/internal/domain"
	"github.com/legalaid/caseprogress/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Cases    service.CaseService
	Records  service.RecordService
	Progress service.ProgressService
	Import   service.ImportService
	Catalog  *catalog.Catalog

	// IsInteractive reports whether stdin is a terminal. Commands only open
	// forms when it returns true; nil means non-interactive.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// resolveCase looks a case up by full ID or unique prefix.
func (a *App) resolveCase(ctx context.Context, ref string) (*domain.LegalCase, error) {
	return a.Cases.Resolve(ctx, ref)
}

// NewRootCmd creates the top-level "caseprogress" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "caseprogress",
		Short:         "Track legal-aid case progress and service timelines",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newCaseCmd(app),
		newRecordCmd(app),
		newProgressCmd(app),
		newTimelineCmd(app),
		newCatalogCmd(app),
	)

	return root
}
