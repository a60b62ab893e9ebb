package remote

import (
	"context"
	"net/http"
	"net/url"

	"github.com/alexanderramin/okrtree/internal/domain"
)

// CreateRootObjective creates a new tree root. TreeLevel and ParentID are
// forced to root values regardless of what the caller supplied, so a client
// cannot fabricate a non-root disguised as a root.
func (c *Client) CreateRootObjective(ctx context.Context, in ObjectiveInput) (*domain.Objective, error) {
	in.TreeLevel = 0
	in.ParentID = nil
	in.ProgressPercentage = domain.ClampProgress(in.ProgressPercentage)
	var out domain.Objective
	if err := c.do(ctx, "objectives.create", http.MethodPost, "/objectives", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateSubObjective creates an objective under parentID.
func (c *Client) CreateSubObjective(ctx context.Context, parentID string, in ObjectiveInput) (*domain.Objective, error) {
	in.ProgressPercentage = domain.ClampProgress(in.ProgressPercentage)
	var out domain.Objective
	path := "/objectives?parentId=" + url.QueryEscape(parentID)
	if err := c.do(ctx, "objectives.createSub", http.MethodPost, path, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RootObjectives returns summaries of every tree root.
func (c *Client) RootObjectives(ctx context.Context) ([]*domain.Objective, error) {
	var out []*domain.Objective
	if err := c.do(ctx, "objectives.roots", http.MethodGet, "/objectives/trees", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ObjectiveTree returns the full subtree rooted at rootID, children
// recursively populated.
func (c *Client) ObjectiveTree(ctx context.Context, rootID string) (*domain.Objective, error) {
	var out domain.Objective
	if err := c.do(ctx, "objectives.tree", http.MethodGet, "/objectives/tree/"+url.PathEscape(rootID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Objective returns a single objective without its subtree.
func (c *Client) Objective(ctx context.Context, id string) (*domain.Objective, error) {
	var out domain.Objective
	if err := c.do(ctx, "objectives.get", http.MethodGet, "/objectives/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateObjective replaces the editable fields of an objective. Progress is
// clamped to [0,100] before the request is sent.
func (c *Client) UpdateObjective(ctx context.Context, id string, in ObjectiveInput) (*domain.Objective, error) {
	in.ProgressPercentage = domain.ClampProgress(in.ProgressPercentage)
	var out domain.Objective
	if err := c.do(ctx, "objectives.update", http.MethodPut, "/objectives/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteObjective removes an objective. The store cascades the delete to
// the entire subtree and every attached task; this client only triggers it.
func (c *Client) DeleteObjective(ctx context.Context, id string) error {
	return c.do(ctx, "objectives.delete", http.MethodDelete, "/objectives/"+url.PathEscape(id), nil, nil)
}
