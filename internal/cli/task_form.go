package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/acarreno/roadmap/internal/cli/formatter"
	"github.com/acarreno/roadmap/internal/domain"
)

// taskFormDraft backs the create/edit form fields. Dates are edited as
// YYYY-MM-DD strings and parsed on submit.
type taskFormDraft struct {
	title       string
	description string
	start       string
	end         string
	assignee    string
	color       string
}

func roadmapHuhTheme() *huh.Theme {
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
	t.Focused.ErrorIndicator = lipgloss.NewStyle().Foreground(formatter.ColorRed)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func validateRequiredTitle(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("title is required")
	}
	return nil
}

func validateDate(s string) error {
	if _, err := time.Parse("2006-01-02", strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

// newTaskForm builds the create/edit form. Date ordering is validated on
// the end-date field so the error appears next to the field being edited.
func newTaskForm(users []domain.User, d *taskFormDraft) *huh.Form {
	options := make([]huh.Option[string], 0, len(users))
	for _, u := range users {
		options = append(options, huh.NewOption(u.Name, u.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&d.title).
				Validate(validateRequiredTitle),
			huh.NewText().
				Title("Description").
				Lines(3).
				Value(&d.description),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Start Date").
				Placeholder("2025-03-03").
				Value(&d.start).
				Validate(validateDate),
			huh.NewInput().
				Title("End Date").
				Placeholder("2025-03-09").
				Value(&d.end).
				Validate(func(s string) error {
					if err := validateDate(s); err != nil {
						return err
					}
					start, err := time.Parse("2006-01-02", strings.TrimSpace(d.start))
					if err != nil {
						return nil
					}
					end, _ := time.Parse("2006-01-02", strings.TrimSpace(s))
					if end.Before(start) {
						return fmt.Errorf("end date precedes start date")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Assignee").
				Options(options...).
				Value(&d.assignee),
			huh.NewInput().
				Title("Color (optional)").
				Placeholder("#83a598").
				Value(&d.color),
		),
	).WithTheme(roadmapHuhTheme()).WithShowHelp(false)
}
