package domain

// Status is the worker's availability for the day.
type Status string

const (
	StatusWorking Status = "working"
	StatusWFH     Status = "wfh"
	StatusLeave   Status = "leave"
)

// ValidStatuses lists the accepted status values.
var ValidStatuses = map[Status]bool{
	StatusWorking: true,
	StatusWFH:     true,
	StatusLeave:   true,
}

// Label returns the human-facing name of the status.
func (s Status) Label() string {
	switch s {
	case StatusWorking:
		return "Working"
	case StatusWFH:
		return "Work from home"
	case StatusLeave:
		return "On leave"
	default:
		return string(s)
	}
}

// ParseStatus accepts the wire value or a few common spellings.
func ParseStatus(s string) (Status, bool) {
	switch s {
	case "working", "work":
		return StatusWorking, true
	case "wfh", "work_from_home", "work-from-home", "remote":
		return StatusWFH, true
	case "leave", "on_leave", "off":
		return StatusLeave, true
	}
	return "", false
}

// DefaultStackOptions is the task-category list offered by the form.
var DefaultStackOptions = []string{
	"Frontend Development",
	"Backend Development",
	"Full Stack Development",
	"Mobile Development",
	"DevOps",
	"Data Science",
	"UI/UX Design",
	"Quality Assurance",
	"Other",
}

// Field names accepted by WorkUpdateDraft.Set.
const (
	FieldUserID   = "user_id"
	FieldStatus   = "status"
	FieldStack    = "stack"
	FieldTask     = "task"
	FieldProgress = "progress"
	FieldBlockers = "blockers"
)
