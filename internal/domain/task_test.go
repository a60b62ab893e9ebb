package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampProgress(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{"below range", -10, 0},
		{"lower bound", 0, 0},
		{"in range", 45, 45},
		{"upper bound", 100, 100},
		{"above range", 150, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampProgress(tt.in))
		})
	}
}

func TestDedupeAssignees(t *testing.T) {
	got := DedupeAssignees([]string{"E01", "E02", "E01", "", "E03", "E02"})
	assert.Equal(t, []string{"E01", "E02", "E03"}, got)
}

func TestLevelLabel(t *testing.T) {
	assert.Equal(t, "Company Level", LevelCompany.Label())
	assert.Equal(t, "Team Level", LevelTeams.Label())
	assert.Equal(t, "Unknown Level", Level("BOGUS").Label())
}

func TestUsersMapNameFor(t *testing.T) {
	m := UsersMap{"E01": "Ada Lovelace"}
	assert.Equal(t, "Ada Lovelace", m.NameFor("E01"))
	assert.Equal(t, "E99", m.NameFor("E99"))
}

func TestObjectiveIsRoot(t *testing.T) {
	parent := "5"
	assert.True(t, (&Objective{ID: "1"}).IsRoot())
	assert.False(t, (&Objective{ID: "2", ParentID: &parent}).IsRoot())
}
