package testutil

import (
	"github.com/alexanderramin/okrtree/internal/domain"
)

// Objective options
type ObjectiveOption func(*domain.Objective)

func WithLevel(l domain.Level) ObjectiveOption {
	return func(o *domain.Objective) {
		o.Level = l
	}
}

func WithParent(parentID string, treeLevel int) ObjectiveOption {
	return func(o *domain.Objective) {
		o.ParentID = &parentID
		o.TreeLevel = treeLevel
	}
}

func WithProgress(pct int) ObjectiveOption {
	return func(o *domain.Objective) {
		o.ProgressPercentage = pct
	}
}

func WithChildren(children ...*domain.Objective) ObjectiveOption {
	return func(o *domain.Objective) {
		o.Children = children
	}
}

// NewObjective builds an in-memory objective for shaping and view tests.
func NewObjective(id, title string, opts ...ObjectiveOption) *domain.Objective {
	o := &domain.Objective{
		ID:          id,
		Title:       title,
		Description: title + " description",
		Level:       domain.LevelCompany,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Task options
type TaskOption func(*domain.Task)

func WithStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) {
		t.Status = s
	}
}

func WithAssignees(ids ...string) TaskOption {
	return func(t *domain.Task) {
		t.AssignedTo = ids
	}
}

func WithTaskProgress(pct int) TaskOption {
	return func(t *domain.Task) {
		t.ProgressPercentage = pct
	}
}

// NewTask builds an in-memory task attached to the given objective.
func NewTask(id, objectiveID, title string, opts ...TaskOption) *domain.Task {
	t := &domain.Task{
		ID:          id,
		Title:       title,
		Description: title + " description",
		DueDate:     "2025-03-01",
		Status:      domain.TaskPending,
		ObjectiveID: objectiveID,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}
