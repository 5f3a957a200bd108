package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/logbook/internal/cli/formatter"
	"github.com/alexanderramin/logbook/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// logbookHuhTheme returns a custom huh theme using the Gruvbox palette.
func logbookHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
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

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// updateFields holds form-bound values for the daily update form.
type updateFields struct {
	userID     string
	status     string
	stack      string
	task       string
	challenges string
	plans      string
}

func fieldsFromDraft(d domain.WorkUpdateDraft) *updateFields {
	return &updateFields{
		userID:     d.UserID,
		status:     string(d.Status),
		stack:      d.Stack,
		task:       d.Task,
		challenges: d.Progress,
		plans:      d.Blockers,
	}
}

// pairs returns the field updates in the order they must be applied:
// status first, so choosing leave clears the details before they are read.
func (f *updateFields) pairs() [][2]string {
	p := [][2]string{
		{domain.FieldUserID, f.userID},
		{domain.FieldStatus, f.status},
	}
	if f.status == string(domain.StatusLeave) {
		return p
	}
	return append(p,
		[2]string{domain.FieldStack, f.stack},
		[2]string{domain.FieldTask, f.task},
		[2]string{domain.FieldProgress, f.challenges},
		[2]string{domain.FieldBlockers, f.plans},
	)
}

// statusOptions lists the statuses in form order.
func statusOptions() []huh.Option[string] {
	return []huh.Option[string]{
		huh.NewOption(domain.StatusWorking.Label(), string(domain.StatusWorking)),
		huh.NewOption(domain.StatusWFH.Label(), string(domain.StatusWFH)),
		huh.NewOption(domain.StatusLeave.Label(), string(domain.StatusLeave)),
	}
}

// stackOptions puts a blank placeholder first so an untouched select is
// reported as missing rather than silently picking the first category.
func stackOptions(opts []string, current string) []huh.Option[string] {
	out := []huh.Option[string]{huh.NewOption("Select your task stack", "")}
	found := current == ""
	for _, o := range opts {
		out = append(out, huh.NewOption(o, o))
		if o == current {
			found = true
		}
	}
	if !found {
		out = append(out, huh.NewOption(current, current))
	}
	return out
}

// newUpdateForm builds the daily update form bound to f. The work-detail
// group is hidden while the status is leave.
func newUpdateForm(f *updateFields, stacks []string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("User ID").
				Placeholder("e.g. intern123").
				Value(&f.userID),
			huh.NewSelect[string]().
				Title("Today's status").
				Options(statusOptions()...).
				Value(&f.status),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Task stack").
				Options(stackOptions(stacks, f.stack)...).
				Value(&f.stack),
			huh.NewText().
				Title("What did you work on today?").
				Placeholder("Describe your tasks").
				Value(&f.task),
			huh.NewText().
				Title("Challenges (optional)").
				Value(&f.challenges),
			huh.NewText().
				Title("Plans for tomorrow (optional)").
				Value(&f.plans),
		).WithHideFunc(func() bool {
			return f.status == string(domain.StatusLeave)
		}),
	).WithTheme(logbookHuhTheme()).WithShowHelp(false)
}

// newRangeForm builds the weekly report date-range form.
func newRangeForm(start, end *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Start date (YYYY-MM-DD)").
				Placeholder("2025-06-01").
				Value(start).
				Validate(validateOptionalDate),
			huh.NewInput().
				Title("End date (YYYY-MM-DD)").
				Placeholder("2025-06-07").
				Value(end).
				Validate(validateOptionalDate),
		),
	).WithTheme(logbookHuhTheme()).WithShowHelp(false)
}

// validateOptionalDate accepts empty or a YYYY-MM-DD date string. Missing
// dates are reported by the requester with its own message.
func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse(domain.DateLayout, s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}
