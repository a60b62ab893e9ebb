package domain

type Level string

const (
	LevelCompany     Level = "COMPANY"
	LevelDepartment  Level = "DEPARTMENT"
	LevelTeams       Level = "TEAMS"
	LevelIndividuals Level = "INDIVIDUALS"
)

// ValidLevels is the canonical set of accepted objective level strings.
var ValidLevels = map[string]bool{
	"COMPANY": true, "DEPARTMENT": true, "TEAMS": true, "INDIVIDUALS": true,
}

// Label returns the display label for a level badge.
func (l Level) Label() string {
	switch l {
	case LevelCompany:
		return "Company Level"
	case LevelDepartment:
		return "Department Level"
	case LevelTeams:
		return "Team Level"
	case LevelIndividuals:
		return "Individual Level"
	default:
		return "Unknown Level"
	}
}

type TaskStatus string

const (
	TaskPending    TaskStatus = "PENDING"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskCompleted  TaskStatus = "COMPLETED"
)

// ValidTaskStatuses is the canonical set of accepted task status strings.
var ValidTaskStatuses = map[string]bool{
	"PENDING": true, "IN_PROGRESS": true, "COMPLETED": true,
}
