package cli

import "github.com/alexanderramin/logbook/internal/service"

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Form owns the draft, including the user id every view reads.
	Form *service.FormController

	// Followup is the open follow-up wizard, nil when none is running.
	Followup *service.FollowupWizard

	Report *service.ReportRequester

	// Terminal dimensions
	Width  int
	Height int
}

func newSharedState(app *App) *SharedState {
	return &SharedState{
		App:    app,
		Form:   service.NewFormController(app.Gateway, app.UserID, app.Observer),
		Report: service.NewReportRequester(app.Gateway, app.Observer),
	}
}

// UserID returns the shared user identifier.
func (s *SharedState) UserID() string {
	return s.Form.UserID()
}

// Busy reports whether any action is waiting for the backend.
func (s *SharedState) Busy() bool {
	if s.Form.Submitting() || s.Report.Loading() {
		return true
	}
	return s.Followup != nil && s.Followup.Submitting()
}

// Close drops every response still in flight. Called when the program quits.
func (s *SharedState) Close() {
	s.Form.Close()
	s.Report.Close()
	if s.Followup != nil && !s.Followup.Closed() {
		s.Followup.Close()
	}
	s.Followup = nil
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator) and
// status bar (2 lines: separator + hints).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 4
	if h < 1 {
		return 1
	}
	return h
}

// ContentWidth returns the usable width, with a floor for tiny terminals.
func (s *SharedState) ContentWidth() int {
	if s.Width < 40 {
		return 80
	}
	return s.Width
}
