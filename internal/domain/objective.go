package domain

// Objective is a node in the OKR hierarchy as served by the remote store.
// Children are populated recursively on tree fetches and empty on summary
// fetches. JSON tags match the upstream API schema.
type Objective struct {
	ID                 string       `json:"id"`
	Title              string       `json:"title"`
	Description        string       `json:"description"`
	Level              Level        `json:"level"`
	TreeLevel          int          `json:"treeLevel"`
	ParentID           *string      `json:"parentId"`
	ProgressPercentage int          `json:"progressPercentage"`
	Children           []*Objective `json:"children,omitempty"`
}

// IsRoot reports whether the objective is a tree root.
func (o *Objective) IsRoot() bool {
	return o.ParentID == nil
}

// ShortTitle returns the title truncated for narrow displays.
func (o *Objective) ShortTitle(max int) string {
	if max > 3 && len(o.Title) > max {
		return o.Title[:max-3] + "..."
	}
	return o.Title
}
