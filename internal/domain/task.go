package domain

// Task is a unit of work attached to exactly one objective.
// DueDate is a calendar date in YYYY-MM-DD form, as the API serves it.
type Task struct {
	ID                 string     `json:"id"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	DueDate            string     `json:"dueDate"`
	Status             TaskStatus `json:"status"`
	ProgressPercentage int        `json:"progressPercentage"`
	AssignedTo         []string   `json:"assignedTo"`
	ObjectiveID        string     `json:"objectiveId"`
}

// ClampProgress clamps a progress value to the valid [0,100] range.
func ClampProgress(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// DedupeAssignees drops duplicate employee IDs, preserving first-seen order.
func DedupeAssignees(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
