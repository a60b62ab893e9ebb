package remote_test

import (
	"testing"

	"github.com/alexanderramin/okrtree/internal/domain"
	"github.com/alexanderramin/okrtree/internal/remote"
	"github.com/stretchr/testify/assert"
)

func TestObjectiveInputValidate(t *testing.T) {
	valid := remote.ObjectiveInput{
		Title:       "Grow Revenue",
		Description: "Increase ARR by 20%",
		Level:       domain.LevelCompany,
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*remote.ObjectiveInput)
	}{
		{"missing title", func(in *remote.ObjectiveInput) { in.Title = "" }},
		{"missing description", func(in *remote.ObjectiveInput) { in.Description = "" }},
		{"bogus level", func(in *remote.ObjectiveInput) { in.Level = "BOARD" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			assert.Error(t, in.Validate())
		})
	}
}

func TestTaskInputValidate(t *testing.T) {
	valid := remote.TaskInput{
		Title:       "Hire regional lead",
		Description: "Open the req",
		DueDate:     "2025-03-01",
		Status:      domain.TaskPending,
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*remote.TaskInput)
	}{
		{"missing title", func(in *remote.TaskInput) { in.Title = "" }},
		{"malformed due date", func(in *remote.TaskInput) { in.DueDate = "01/03/2025" }},
		{"bogus status", func(in *remote.TaskInput) { in.Status = "BLOCKED" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			assert.Error(t, in.Validate())
		})
	}
}

func TestInputValidateClampsProgress(t *testing.T) {
	obj := remote.ObjectiveInput{
		Title:              "Grow Revenue",
		Description:        "d",
		Level:              domain.LevelCompany,
		ProgressPercentage: 150,
	}
	assert.NoError(t, obj.Validate())
	assert.Equal(t, 100, obj.ProgressPercentage)

	task := remote.TaskInput{
		Title:              "T",
		Description:        "d",
		DueDate:            "2025-03-01",
		Status:             domain.TaskPending,
		ProgressPercentage: -10,
	}
	assert.NoError(t, task.Validate())
	assert.Equal(t, 0, task.ProgressPercentage)
}

func TestTaskInputValidateDedupesAssignees(t *testing.T) {
	in := remote.TaskInput{
		Title:       "T",
		Description: "d",
		DueDate:     "2025-03-01",
		Status:      domain.TaskPending,
		AssignedTo:  []string{"E01", "E01", "E02"},
	}
	assert.NoError(t, in.Validate())
	assert.Equal(t, []string{"E01", "E02"}, in.AssignedTo)
}

func TestRegisterInputValidate(t *testing.T) {
	valid := remote.RegisterInput{
		EmpID:    "E01",
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "s3cret-pass",
	}
	assert.NoError(t, valid.Validate())

	short := valid
	short.Password = "short"
	assert.Error(t, short.Validate())

	badMail := valid
	badMail.Email = "not-an-email"
	assert.Error(t, badMail.Validate())
}
