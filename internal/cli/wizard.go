package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/legalaid/caseprogress/internal/cli/formatter"
	"github.com/legalaid/caseprogress/internal/domain"
)

// huhTheme returns a custom huh theme using the Gruvbox palette.
func huhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func categoryOptions() []huh.Option[domain.CaseCategory] {
	opts := make([]huh.Option[domain.CaseCategory], 0, len(domain.AllCategories))
	for _, c := range domain.AllCategories {
		name := string(c)
		opts = append(opts, huh.NewOption(name[:1]+strings.ToLower(name[1:]), c))
	}
	return opts
}

func serviceTypeOptions() []huh.Option[domain.ServiceType] {
	opts := make([]huh.Option[domain.ServiceType], 0, len(domain.AllServiceTypes))
	for _, st := range domain.AllServiceTypes {
		opts = append(opts, huh.NewOption(st.Label(), st))
	}
	return opts
}

func recordStatusOptions() []huh.Option[domain.RecordStatus] {
	return []huh.Option[domain.RecordStatus]{
		huh.NewOption("Completed", domain.RecordCompleted),
		huh.NewOption("In progress", domain.RecordInProgress),
		huh.NewOption("Pending", domain.RecordPending),
	}
}

// caseForm collects the fields of a new case that were not given as flags.
func caseForm(title, client *string, category *domain.CaseCategory) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Case title").
				Placeholder("Smith custody").
				Value(title).
				Validate(validateRequired("title")),
			huh.NewInput().
				Title("Client name (optional)").
				Value(client),
			huh.NewSelect[domain.CaseCategory]().
				Title("Category").
				Options(categoryOptions()...).
				Value(category),
		),
	).WithTheme(huhTheme()).WithShowHelp(false)
}

// recordForm collects the service type, status and times of a new record.
func recordForm(st *domain.ServiceType, status *domain.RecordStatus, start, end, notes *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[domain.ServiceType]().
				Title("Service").
				Options(serviceTypeOptions()...).
				Value(st),
			huh.NewSelect[domain.RecordStatus]().
				Title("Status").
				Options(recordStatusOptions()...).
				Value(status),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Start (YYYY-MM-DD HH:MM, blank for now)").
				Placeholder("2025-06-30 09:30").
				Value(start).
				Validate(validateOptionalTime),
			huh.NewInput().
				Title("End (blank if still open)").
				Value(end).
				Validate(validateOptionalTime),
			huh.NewText().
				Title("Notes").
				Value(notes),
		),
	).WithTheme(huhTheme()).WithShowHelp(false)
}

// confirmForm creates a huh form for a yes/no confirmation.
func confirmForm(title string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(huhTheme()).WithShowHelp(false)
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}
