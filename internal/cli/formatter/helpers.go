package formatter

import (
	"strings"
	"time"

	"github.com/alexanderramin/okrtree/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// DueDateStyled renders a YYYY-MM-DD due date with urgency coloring:
// red when overdue or due within 2 days, yellow within a week.
func DueDateStyled(due string) string {
	return dueDateStyledFrom(due, time.Now())
}

func dueDateStyledFrom(due string, now time.Time) string {
	t, err := time.Parse("2006-01-02", due)
	if err != nil {
		return StyleDim.Render(due)
	}

	days := int(t.Sub(now).Hours() / 24)
	text := t.Format("Jan 2, 2006")

	switch {
	case days < 0:
		return StyleRed.Render(text + " (overdue)")
	case days <= 2:
		return StyleRed.Render(text)
	case days <= 7:
		return StyleYellow.Render(text)
	default:
		return StyleFg.Render(text)
	}
}

// StatusPill returns a colored status indicator for a task status.
func StatusPill(status domain.TaskStatus) string {
	switch status {
	case domain.TaskPending:
		return StyleBlue.Render("○ Pending")
	case domain.TaskInProgress:
		return StyleYellow.Render("● In Progress")
	case domain.TaskCompleted:
		return StyleGreen.Render("✔ Completed")
	default:
		return StyleDim.Render(string(status))
	}
}

// AssigneeNames resolves assignee IDs to display names, joined with commas.
func AssigneeNames(ids []string, users domain.UsersMap) string {
	if len(ids) == 0 {
		return StyleDim.Render("unassigned")
	}
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, users.NameFor(id))
	}
	return strings.Join(names, ", ")
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}
