package domain

// User is a remote user profile. EmpID is the primary identifier.
type User struct {
	EmpID string `json:"empId"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// UsersMap maps employee IDs to display names.
type UsersMap map[string]string

// NameFor resolves an employee ID to a display name, falling back to the
// raw ID when no mapping exists.
func (m UsersMap) NameFor(empID string) string {
	if name, ok := m[empID]; ok && name != "" {
		return name
	}
	return empID
}
