package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/okrtree/internal/domain"
	"github.com/alexanderramin/okrtree/internal/shape"
	"github.com/stretchr/testify/assert"
)

func TestDueDateStyledFrom(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		due  string
		want string
	}{
		{"overdue is flagged", "2026-02-01", "overdue"},
		{"far future plain", "2026-06-01", "Jun 1, 2026"},
		{"unparseable passes through", "sometime", "sometime"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dueDateStyledFrom(tt.due, now)
			assert.Contains(t, got, tt.want)
		})
	}
}

func TestAssigneeNames(t *testing.T) {
	users := domain.UsersMap{"E01": "Ada Lovelace", "E02": "Grace Hopper"}

	got := AssigneeNames([]string{"E01", "E02", "E99"}, users)
	assert.Contains(t, got, "Ada Lovelace")
	assert.Contains(t, got, "Grace Hopper")
	// Unknown IDs fall back to the raw ID.
	assert.Contains(t, got, "E99")

	assert.Contains(t, AssigneeNames(nil, users), "unassigned")
}

func TestFlattenTree(t *testing.T) {
	root := &shape.Node{
		Title: "Grow revenue",
		Level: domain.LevelCompany,
		Children: []*shape.Node{
			{Title: "EMEA expansion", Level: domain.LevelDepartment},
			{Title: "APAC expansion", Level: domain.LevelDepartment, Children: []*shape.Node{
				{Title: "Tokyo launch", Level: domain.LevelTeams},
			}},
		},
	}

	items := FlattenTree(root)
	assert.Len(t, items, 4)
	assert.Equal(t, "Grow revenue", items[0].Title)
	assert.Equal(t, 0, items[0].Depth)
	assert.Equal(t, "EMEA expansion", items[1].Title)
	assert.False(t, items[1].IsLast)
	assert.Equal(t, "Tokyo launch", items[3].Title)
	assert.Equal(t, 2, items[3].Depth)
	assert.True(t, items[3].IsLast)

	assert.Empty(t, FlattenTree(nil))
}

func TestRenderTree(t *testing.T) {
	items := FlattenTree(&shape.Node{
		Title: "Root",
		Level: domain.LevelCompany,
		Children: []*shape.Node{
			{Title: "Child", Level: domain.LevelTeams, ProgressPercentage: 40},
		},
	})

	out := RenderTree(items)
	assert.Contains(t, out, "Root")
	assert.Contains(t, out, treeCorner)
	assert.Contains(t, out, "40%")

	assert.Empty(t, RenderTree(nil))
}
