package remote

import (
	"github.com/alexanderramin/okrtree/internal/domain"
	"github.com/go-playground/validator/v10"
)

// validate checks input structs at the dialog boundary, before any request
// is issued. Validation failures therefore never reach the tree controller.
var validate = validator.New(validator.WithRequiredStructEnabled())

// ObjectiveInput carries the caller-editable fields of an objective.
type ObjectiveInput struct {
	Title              string       `json:"title" validate:"required"`
	Description        string       `json:"description" validate:"required"`
	Level              domain.Level `json:"level" validate:"required,oneof=COMPANY DEPARTMENT TEAMS INDIVIDUALS"`
	TreeLevel          int          `json:"treeLevel" validate:"min=0"`
	ParentID           *string      `json:"parentId"`
	ProgressPercentage int          `json:"progressPercentage"`
}

// Validate reports the first invalid field, if any. Out-of-range progress
// is clamped to [0,100] rather than rejected.
func (in *ObjectiveInput) Validate() error {
	in.ProgressPercentage = domain.ClampProgress(in.ProgressPercentage)
	return validate.Struct(in)
}

// TaskInput carries the caller-editable fields of a task.
type TaskInput struct {
	Title              string            `json:"title" validate:"required"`
	Description        string            `json:"description" validate:"required"`
	DueDate            string            `json:"dueDate" validate:"required,datetime=2006-01-02"`
	Status             domain.TaskStatus `json:"status" validate:"required,oneof=PENDING IN_PROGRESS COMPLETED"`
	AssignedTo         []string          `json:"assignedTo"`
	ProgressPercentage int               `json:"progressPercentage"`
}

// Validate reports the first invalid field, if any. Duplicate assignees are
// suppressed before validation so selection-order quirks never fail a form,
// and out-of-range progress is clamped to [0,100] rather than rejected.
func (in *TaskInput) Validate() error {
	in.AssignedTo = domain.DedupeAssignees(in.AssignedTo)
	in.ProgressPercentage = domain.ClampProgress(in.ProgressPercentage)
	return validate.Struct(in)
}

// RegisterInput carries the fields for a new user account.
type RegisterInput struct {
	EmpID    string `json:"empId" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Validate reports the first invalid field, if any.
func (in *RegisterInput) Validate() error {
	return validate.Struct(in)
}

// UserUpdateInput carries the user fields editable after registration.
type UserUpdateInput struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// Validate reports the first invalid field, if any.
func (in *UserUpdateInput) Validate() error {
	return validate.Struct(in)
}
