package remote

import (
	"context"
	"net/http"
	"net/url"

	"github.com/alexanderramin/okrtree/internal/domain"
)

// CreateTask creates a task under the given objective. Duplicate assignee
// IDs are suppressed and progress is clamped to [0,100] before the request
// is sent.
func (c *Client) CreateTask(ctx context.Context, objectiveID string, in TaskInput) (*domain.Task, error) {
	in.AssignedTo = domain.DedupeAssignees(in.AssignedTo)
	in.ProgressPercentage = domain.ClampProgress(in.ProgressPercentage)
	var out domain.Task
	if err := c.do(ctx, "tasks.create", http.MethodPost, "/tasks/"+url.PathEscape(objectiveID), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TasksByObjective lists every task attached to the given objective.
func (c *Client) TasksByObjective(ctx context.Context, objectiveID string) ([]domain.Task, error) {
	var out []domain.Task
	if err := c.do(ctx, "tasks.list", http.MethodGet, "/tasks/objective/"+url.PathEscape(objectiveID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateTask replaces the editable fields of a task. Progress is clamped
// to [0,100] before the request is sent; the store never sees an
// out-of-range value.
func (c *Client) UpdateTask(ctx context.Context, taskID string, in TaskInput) (*domain.Task, error) {
	in.AssignedTo = domain.DedupeAssignees(in.AssignedTo)
	in.ProgressPercentage = domain.ClampProgress(in.ProgressPercentage)
	var out domain.Task
	if err := c.do(ctx, "tasks.update", http.MethodPut, "/tasks/"+url.PathEscape(taskID), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteTask removes a single task.
func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	return c.do(ctx, "tasks.delete", http.MethodDelete, "/tasks/"+url.PathEscape(taskID), nil, nil)
}
