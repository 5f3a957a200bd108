package domain

import "errors"

// ValidationError is a client-side rule violation. It is shown inline and
// never reaches the network.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

var (
	// ErrUnknownField is returned by WorkUpdateDraft.Set for an unrecognised field name.
	ErrUnknownField = errors.New("unknown field")

	// ErrInvalidStatus is returned when a status value is not one of the known statuses.
	ErrInvalidStatus = errors.New("invalid status")
)

// Messages surfaced to the user. Kept here so the TUI and the commands agree.
const (
	MsgUserIDRequired    = "User ID is required"
	MsgTaskRequired      = "Task description is required when working"
	MsgStackRequired     = "Please select your task stack"
	MsgAnswerAll         = "Please answer all questions before submitting."
	MsgBothDatesRequired = "Please select both start and end dates"
	MsgStartAfterEnd     = "Start date must be before end date"
	MsgReportNeedsUser   = "User ID is required to generate a report"
)
