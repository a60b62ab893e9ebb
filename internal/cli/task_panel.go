package cli

import (
	"context"

	"github.com/alexanderramin/okrtree/internal/domain"
	"github.com/alexanderramin/okrtree/internal/remote"
	tea "github.com/charmbracelet/bubbletea"
)

// tasksLoadedMsg carries the task list fetched for one objective's panel.
type tasksLoadedMsg struct {
	objectiveID string
	gen         int
	tasks       []domain.Task
	err         error
}

// taskCreatedMsg announces a task created under one objective. Only the
// panel registered for that objective reacts; panels for other objectives
// must not change.
type taskCreatedMsg struct {
	objectiveID string
	task        *domain.Task
}

// taskSavedMsg announces an updated task to the owning panel.
type taskSavedMsg struct {
	objectiveID string
	task        *domain.Task
}

// taskDeletedMsg announces a deleted task to the owning panel.
type taskDeletedMsg struct {
	objectiveID string
	taskID      string
}

// taskProgressMsg announces a confirmed progress value for one task. Only
// the progress field is merged; everything else keeps its panel state.
type taskProgressMsg struct {
	objectiveID string
	taskID      string
	progress    int
}

// taskPanel holds the expanded task sublist of a single objective.
// Panels are created on expand and discarded on collapse; a discarded
// panel ignores nothing because it is simply no longer registered.
type taskPanel struct {
	objectiveID string
	tasks       []domain.Task
	gen         int
	loading     bool
	err         error
}

func newTaskPanel(objectiveID string) *taskPanel {
	return &taskPanel{objectiveID: objectiveID, loading: true}
}

// load returns a command that fetches the panel's tasks. Each call bumps
// the generation counter; responses from older fetches are discarded.
func (p *taskPanel) load(client *remote.Client) tea.Cmd {
	p.gen++
	p.loading = true
	gen := p.gen
	objectiveID := p.objectiveID
	return func() tea.Msg {
		tasks, err := client.TasksByObjective(context.Background(), objectiveID)
		return tasksLoadedMsg{objectiveID: objectiveID, gen: gen, tasks: tasks, err: err}
	}
}

// apply folds a task message into the panel state. Messages scoped to a
// different objective, and stale load responses, are ignored.
func (p *taskPanel) apply(msg tea.Msg) {
	switch msg := msg.(type) {
	case tasksLoadedMsg:
		if msg.objectiveID != p.objectiveID || msg.gen != p.gen {
			return
		}
		p.loading = false
		if msg.err != nil {
			p.err = msg.err
			return
		}
		p.err = nil
		p.tasks = msg.tasks

	case taskCreatedMsg:
		if msg.objectiveID != p.objectiveID || msg.task == nil {
			return
		}
		// Append without refetching; the list keeps its insertion order.
		p.tasks = append(p.tasks, *msg.task)

	case taskSavedMsg:
		if msg.objectiveID != p.objectiveID || msg.task == nil {
			return
		}
		for i, t := range p.tasks {
			if t.ID == msg.task.ID {
				p.tasks[i] = *msg.task
				return
			}
		}

	case taskDeletedMsg:
		if msg.objectiveID != p.objectiveID {
			return
		}
		for i, t := range p.tasks {
			if t.ID == msg.taskID {
				p.tasks = append(p.tasks[:i], p.tasks[i+1:]...)
				return
			}
		}

	case taskProgressMsg:
		if msg.objectiveID != p.objectiveID {
			return
		}
		for i := range p.tasks {
			if p.tasks[i].ID == msg.taskID {
				p.tasks[i].ProgressPercentage = msg.progress
				return
			}
		}
	}
}
