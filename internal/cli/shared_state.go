package cli

import (
	"github.com/alexanderramin/okrtree/internal/domain"
	"github.com/alexanderramin/okrtree/internal/remote"
	"github.com/alexanderramin/okrtree/internal/session"
)

// App holds the backend client and session store used by CLI commands.
type App struct {
	Remote   *remote.Client
	Sessions *session.Store

	// CurrentUser is the snapshot user restored at startup, nil when
	// signed out.
	CurrentUser *domain.User

	// IsInteractive is true when stdout is a TTY.
	IsInteractive bool
}

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Signed-in user context.
	CurrentUser *domain.User

	// Employee ID to display name map, hydrated once at startup
	// and refreshed on demand.
	Users domain.UsersMap

	// Terminal dimensions
	Width  int
	Height int
}

// UserName returns the signed-in user's display name, or the empty string.
func (s *SharedState) UserName() string {
	if s.CurrentUser == nil {
		return ""
	}
	return s.CurrentUser.Name
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator) and
// status bar (3 lines: separator + notice + hints).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 5
	if h < 1 {
		return 1
	}
	return h
}
