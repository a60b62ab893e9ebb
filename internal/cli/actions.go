package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/okrtree/internal/cli/formatter"
	"github.com/alexanderramin/okrtree/internal/remote"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-playground/validator/v10"
)

// errorText formats an error for the notice line, collapsing backend error
// categories into short user-facing messages.
func errorText(err error) string {
	mark := formatter.StyleRed.Render("✗")

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		f := verrs[0]
		return fmt.Sprintf("%s Invalid %s (%s)", mark, f.Field(), f.Tag())
	}

	switch {
	case remote.IsUnauthorized(err):
		return mark + " Session expired. Run `okrtree login` to sign in again."
	case remote.IsNotFound(err):
		return mark + " Not found. It may have been deleted; refresh with r."
	default:
		return mark + " " + err.Error()
	}
}

// wizardCompleteError returns a wizardCompleteMsg that shows a formatted error.
func wizardCompleteError(err error) tea.Msg {
	return wizardCompleteMsg{nextCmd: noticeCmd(errorText(err))}
}

// wizardCompleteNotice returns a wizardCompleteMsg that shows a message string.
func wizardCompleteNotice(text string) tea.Msg {
	return wizardCompleteMsg{nextCmd: noticeCmd(text)}
}

// successNotice formats a green check notice.
func successNotice(format string, args ...any) string {
	return formatter.StyleGreen.Render("✔") + " " + fmt.Sprintf(format, args...)
}

// execConfirmDelete pushes a confirmation wizard and runs deleteFn if
// confirmed. On success it emits successMsg via the returned constructor so
// the owning view can react (reload, reselect).
func execConfirmDelete(state *SharedState, prompt string, deleteFn func(ctx context.Context) error, onDeleted func() tea.Msg) tea.Cmd {
	var confirmed bool
	form := wizardConfirm(prompt, &confirmed)
	return pushView(newWizardView(state, "Confirm Delete", form, func() tea.Cmd {
		if !confirmed {
			return func() tea.Msg { return wizardCompleteNotice(formatter.Dim("Cancelled.")) }
		}
		return func() tea.Msg {
			if err := deleteFn(context.Background()); err != nil {
				return wizardCompleteError(err)
			}
			return onDeleted()
		}
	}))
}
