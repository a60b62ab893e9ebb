package cli

import (
	"context"
	"sort"
	"strconv"

	"github.com/alexanderramin/okrtree/internal/domain"
	"github.com/alexanderramin/okrtree/internal/remote"
	"github.com/alexanderramin/okrtree/internal/shape"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// newRootObjectiveFormView creates a wizard for a brand new objective tree.
func newRootObjectiveFormView(state *SharedState) View {
	var (
		title       string
		description string
		level       = domain.LevelCompany
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Objective Title").
				Value(&title).
				Validate(validateRequired("title")),
			huh.NewInput().
				Title("Description").
				Value(&description).
				Validate(validateRequired("description")),
			huh.NewSelect[domain.Level]().
				Title("Level").
				Options(levelOptions()...).
				Value(&level),
		),
	).WithTheme(okrtreeHuhTheme()).WithShowHelp(false)

	client := state.App.Remote
	done := func() tea.Cmd {
		return func() tea.Msg {
			in := remote.ObjectiveInput{
				Title:       title,
				Description: description,
				Level:       level,
			}
			if err := in.Validate(); err != nil {
				return noticeMsg{text: errorText(err)}
			}
			created, err := client.CreateRootObjective(context.Background(), in)
			if err != nil {
				return noticeMsg{text: errorText(err)}
			}
			return tea.BatchMsg{
				func() tea.Msg { return rootCreatedMsg{} },
				noticeCmd(successNotice("Created tree %q", created.Title)),
			}
		}
	}

	return newWizardView(state, "New Tree", form, done)
}

// newSubObjectiveFormView creates a wizard for a child objective under parent.
// The backend derives the child's tree depth from the parent.
func newSubObjectiveFormView(state *SharedState, parent *shape.Node, rootID string) View {
	var (
		title       string
		description string
		level       = childLevel(parent.Level)
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Sub-Objective Title").
				Description("Under: "+parent.Title).
				Value(&title).
				Validate(validateRequired("title")),
			huh.NewInput().
				Title("Description").
				Value(&description).
				Validate(validateRequired("description")),
			huh.NewSelect[domain.Level]().
				Title("Level").
				Options(levelOptions()...).
				Value(&level),
		),
	).WithTheme(okrtreeHuhTheme()).WithShowHelp(false)

	client := state.App.Remote
	parentID := parent.ID
	done := func() tea.Cmd {
		return func() tea.Msg {
			in := remote.ObjectiveInput{
				Title:       title,
				Description: description,
				Level:       level,
				TreeLevel:   parent.TreeLevel + 1,
			}
			if err := in.Validate(); err != nil {
				return noticeMsg{text: errorText(err)}
			}
			created, err := client.CreateSubObjective(context.Background(), parentID, in)
			if err != nil {
				return noticeMsg{text: errorText(err)}
			}
			return tea.BatchMsg{
				func() tea.Msg { return subCreatedMsg{} },
				noticeCmd(successNotice("Created %q", created.Title)),
			}
		}
	}

	return newWizardView(state, "New Sub-Objective", form, done)
}

// newEditObjectiveFormView creates a wizard pre-filled from a freshly
// fetched objective. Hydration happens exactly once, before the wizard is
// pushed; an open form is never re-synced against later tree data.
func newEditObjectiveFormView(state *SharedState, obj *domain.Objective) View {
	title := obj.Title
	description := obj.Description
	level := obj.Level
	progress := strconv.Itoa(obj.ProgressPercentage)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Objective Title").
				Value(&title).
				Validate(validateRequired("title")),
			huh.NewInput().
				Title("Description").
				Value(&description).
				Validate(validateRequired("description")),
			huh.NewSelect[domain.Level]().
				Title("Level").
				Options(levelOptions()...).
				Value(&level),
			huh.NewInput().
				Title("Progress (0-100)").
				Value(&progress).
				Validate(validateProgress),
		),
	).WithTheme(okrtreeHuhTheme()).WithShowHelp(false)

	client := state.App.Remote
	id := obj.ID
	treeLevel := obj.TreeLevel
	parentID := obj.ParentID
	oldProgress := obj.ProgressPercentage
	done := func() tea.Cmd {
		return func() tea.Msg {
			in := remote.ObjectiveInput{
				Title:              title,
				Description:        description,
				Level:              level,
				TreeLevel:          treeLevel,
				ParentID:           parentID,
				ProgressPercentage: parseProgress(progress, oldProgress),
			}
			if err := in.Validate(); err != nil {
				return noticeMsg{text: errorText(err)}
			}
			if _, err := client.UpdateObjective(context.Background(), id, in); err != nil {
				return noticeMsg{text: errorText(err)}
			}
			return tea.BatchMsg{
				func() tea.Msg { return objectiveSavedMsg{} },
				noticeCmd(successNotice("Saved %q", title)),
			}
		}
	}

	return newWizardView(state, "Edit Objective", form, done)
}

// newTaskProgressFormView creates a single-field wizard for a quick progress
// update on one task. Whatever number is entered is clamped to [0,100]; the
// other task fields are resent unchanged.
func newTaskProgressFormView(state *SharedState, objectiveID string, task *domain.Task) View {
	progress := strconv.Itoa(task.ProgressPercentage)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Progress (0-100)").
				Description(task.Title).
				Value(&progress).
				Validate(validateProgress),
		),
	).WithTheme(okrtreeHuhTheme()).WithShowHelp(false)

	client := state.App.Remote
	in := remote.TaskInput{
		Title:       task.Title,
		Description: task.Description,
		DueDate:     task.DueDate,
		Status:      task.Status,
		AssignedTo:  append([]string(nil), task.AssignedTo...),
	}
	taskID := task.ID
	oldProgress := task.ProgressPercentage
	done := func() tea.Cmd {
		return func() tea.Msg {
			in.ProgressPercentage = parseProgress(progress, oldProgress)
			if err := in.Validate(); err != nil {
				return noticeMsg{text: errorText(err)}
			}
			saved, err := client.UpdateTask(context.Background(), taskID, in)
			if err != nil {
				return noticeMsg{text: errorText(err)}
			}
			return tea.BatchMsg{
				func() tea.Msg {
					return taskProgressMsg{
						objectiveID: objectiveID,
						taskID:      taskID,
						progress:    saved.ProgressPercentage,
					}
				},
				noticeCmd(successNotice("Progress %d%% on %q", saved.ProgressPercentage, saved.Title)),
			}
		}
	}

	return newWizardView(state, "Update Progress", form, done)
}

// newTaskFormView creates a wizard to add a task under an objective, or to
// edit an existing one when task is non-nil.
func newTaskFormView(state *SharedState, objectiveID string, task *domain.Task) View {
	editing := task != nil

	var (
		title       string
		description string
		dueDate     string
		status      = domain.TaskPending
		progress    = "0"
		assignees   []string
	)
	if editing {
		title = task.Title
		description = task.Description
		dueDate = task.DueDate
		status = task.Status
		progress = strconv.Itoa(task.ProgressPercentage)
		assignees = append(assignees, task.AssignedTo...)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Task Title").
				Value(&title).
				Validate(validateRequired("title")),
			huh.NewInput().
				Title("Description").
				Value(&description).
				Validate(validateRequired("description")),
			huh.NewInput().
				Title("Due Date (YYYY-MM-DD)").
				Value(&dueDate).
				Validate(validateDate),
			huh.NewSelect[domain.TaskStatus]().
				Title("Status").
				Options(statusOptions()...).
				Value(&status),
			huh.NewInput().
				Title("Progress (0-100)").
				Value(&progress).
				Validate(validateProgress),
			huh.NewMultiSelect[string]().
				Title("Assignees").
				Options(assigneeOptions(state.Users)...).
				Value(&assignees),
		),
	).WithTheme(okrtreeHuhTheme()).WithShowHelp(false)

	client := state.App.Remote
	wizardTitle := "New Task"
	if editing {
		wizardTitle = "Edit Task"
	}
	var taskID string
	if editing {
		taskID = task.ID
	}

	done := func() tea.Cmd {
		return func() tea.Msg {
			in := remote.TaskInput{
				Title:              title,
				Description:        description,
				DueDate:            dueDate,
				Status:             status,
				ProgressPercentage: parseProgress(progress, 0),
				AssignedTo:         assignees,
			}
			if err := in.Validate(); err != nil {
				return noticeMsg{text: errorText(err)}
			}

			ctx := context.Background()
			if editing {
				saved, err := client.UpdateTask(ctx, taskID, in)
				if err != nil {
					return noticeMsg{text: errorText(err)}
				}
				return tea.BatchMsg{
					func() tea.Msg { return taskSavedMsg{objectiveID: objectiveID, task: saved} },
					noticeCmd(successNotice("Saved task %q", saved.Title)),
				}
			}

			created, err := client.CreateTask(ctx, objectiveID, in)
			if err != nil {
				return noticeMsg{text: errorText(err)}
			}
			return tea.BatchMsg{
				func() tea.Msg { return taskCreatedMsg{objectiveID: objectiveID, task: created} },
				noticeCmd(successNotice("Created task %q", created.Title)),
			}
		}
	}

	return newWizardView(state, wizardTitle, form, done)
}

// childLevel suggests the level one step below a parent's.
func childLevel(parent domain.Level) domain.Level {
	switch parent {
	case domain.LevelCompany:
		return domain.LevelDepartment
	case domain.LevelDepartment:
		return domain.LevelTeams
	default:
		return domain.LevelIndividuals
	}
}

// assigneeOptions builds multi-select options from the employee name map,
// sorted by employee ID for a stable order.
func assigneeOptions(users domain.UsersMap) []huh.Option[string] {
	ids := make([]string, 0, len(users))
	for id := range users {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	opts := make([]huh.Option[string], 0, len(ids))
	for _, id := range ids {
		opts = append(opts, huh.NewOption(users[id]+" ("+id+")", id))
	}
	return opts
}
