package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/okrtree/internal/cli/formatter"
	"github.com/alexanderramin/okrtree/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// myTasksLoadedMsg carries tasks assigned to the signed-in user.
type myTasksLoadedMsg struct {
	tasks []domain.Task
	err   error
}

// myTasksView lists every task assigned to the signed-in user across all
// objective trees.
type myTasksView struct {
	state   *SharedState
	tasks   []domain.Task
	loading bool
	err     error
}

func newMyTasksView(state *SharedState) *myTasksView {
	return &myTasksView{state: state, loading: true}
}

func (v *myTasksView) ID() ViewID    { return ViewMyTasks }
func (v *myTasksView) Title() string { return "My Tasks" }

func (v *myTasksView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (v *myTasksView) Init() tea.Cmd {
	return v.load()
}

func (v *myTasksView) load() tea.Cmd {
	if v.state.CurrentUser == nil {
		return func() tea.Msg {
			return myTasksLoadedMsg{err: fmt.Errorf("not signed in")}
		}
	}
	client := v.state.App.Remote
	empID := v.state.CurrentUser.EmpID
	return func() tea.Msg {
		tasks, err := client.UserTasks(context.Background(), empID)
		return myTasksLoadedMsg{tasks: tasks, err: err}
	}
}

func (v *myTasksView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case myTasksLoadedMsg:
		v.loading = false
		v.tasks = msg.tasks
		v.err = msg.err
		return v, nil

	case refreshViewMsg:
		v.loading = true
		return v, v.load()

	case tea.KeyMsg:
		if msg.String() == "r" {
			v.loading = true
			return v, v.load()
		}
	}
	return v, nil
}

func (v *myTasksView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading your tasks...")
	}
	if v.err != nil {
		return "\n  " + errorText(v.err)
	}
	if len(v.tasks) == 0 {
		return "\n  " + formatter.Dim("Nothing assigned to you.")
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, t := range v.tasks {
		b.WriteString(fmt.Sprintf("  %s %s  %s  %s\n",
			formatter.StatusPill(t.Status),
			t.Title,
			formatter.RenderProgress(t.ProgressPercentage, 6),
			formatter.DueDateStyled(t.DueDate),
		))
	}
	return b.String()
}
