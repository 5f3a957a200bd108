package domain

import (
	"fmt"
	"strings"
	"time"
)

// WorkUpdateDraft holds the daily-update form fields.
type WorkUpdateDraft struct {
	UserID   string
	Status   Status
	Stack    string
	Task     string
	Progress string // "challenges"
	Blockers string // "plans"
}

// NewWorkUpdateDraft returns an empty draft with status working.
func NewWorkUpdateDraft(userID string) WorkUpdateDraft {
	return WorkUpdateDraft{UserID: userID, Status: StatusWorking}
}

// Set updates one field by name. Switching status to leave clears the
// work-detail fields in the same step.
func (d *WorkUpdateDraft) Set(name, value string) error {
	switch name {
	case FieldUserID:
		d.UserID = value
	case FieldStatus:
		st, ok := ParseStatus(value)
		if !ok {
			return fmt.Errorf("%w: %q", ErrInvalidStatus, value)
		}
		d.Status = st
		if st == StatusLeave {
			d.clearDetails()
		}
	case FieldStack:
		d.Stack = value
	case FieldTask:
		d.Task = value
	case FieldProgress:
		d.Progress = value
	case FieldBlockers:
		d.Blockers = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return nil
}

// Get returns a field's current value by name.
func (d WorkUpdateDraft) Get(name string) (string, error) {
	switch name {
	case FieldUserID:
		return d.UserID, nil
	case FieldStatus:
		return string(d.Status), nil
	case FieldStack:
		return d.Stack, nil
	case FieldTask:
		return d.Task, nil
	case FieldProgress:
		return d.Progress, nil
	case FieldBlockers:
		return d.Blockers, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}

func (d *WorkUpdateDraft) clearDetails() {
	d.Stack = ""
	d.Task = ""
	d.Progress = ""
	d.Blockers = ""
}

// DetailsVisible reports whether stack/task/challenges/plans apply.
func (d WorkUpdateDraft) DetailsVisible() bool {
	return d.Status != StatusLeave
}

// Validate returns the first failing rule: user id, then task, then stack.
func (d WorkUpdateDraft) Validate() error {
	if strings.TrimSpace(d.UserID) == "" {
		return invalid(FieldUserID, MsgUserIDRequired)
	}
	if d.Status == StatusLeave {
		return nil
	}
	if strings.TrimSpace(d.Task) == "" {
		return invalid(FieldTask, MsgTaskRequired)
	}
	if strings.TrimSpace(d.Stack) == "" {
		return invalid(FieldStack, MsgStackRequired)
	}
	return nil
}

// Reset empties the draft, keeping the user id.
func (d *WorkUpdateDraft) Reset() {
	*d = NewWorkUpdateDraft(d.UserID)
}

// WorkUpdatePayload is the JSON body of POST /api/work-updates.
type WorkUpdatePayload struct {
	UserID      string `json:"user_id"`
	Status      Status `json:"status"`
	Stack       string `json:"stack"`
	Task        string `json:"task"`
	Progress    string `json:"progress"`
	Blockers    string `json:"blockers"`
	Date        string `json:"date"`
	UpdateDate  string `json:"update_date"`
	SubmittedAt string `json:"submittedAt"`
}

// Payload snapshots the draft, stamped with the local date and the
// submission time. Leave submissions never carry work details.
func (d WorkUpdateDraft) Payload(now time.Time) WorkUpdatePayload {
	p := WorkUpdatePayload{
		UserID:      strings.TrimSpace(d.UserID),
		Status:      d.Status,
		Stack:       d.Stack,
		Task:        d.Task,
		Progress:    d.Progress,
		Blockers:    d.Blockers,
		Date:        now.Format(DateLayout),
		UpdateDate:  now.Format(DateLayout),
		SubmittedAt: now.UTC().Format(time.RFC3339),
	}
	if d.Status == StatusLeave {
		p.Stack, p.Task, p.Progress, p.Blockers = "", "", "", ""
	}
	return p
}

// DateLayout is the calendar-date format used on the wire.
const DateLayout = "2006-01-02"
