package cli

import (
	"context"

	"github.com/alexanderramin/logbook/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

// Navigation messages used by views to request view transitions.
// The appModel handles these in its Update method.

// pushViewMsg pushes a new view onto the navigation stack.
type pushViewMsg struct {
	view View
}

// popViewMsg pops the current view off the navigation stack,
// returning to the previous view.
type popViewMsg struct{}

// refreshViewMsg asks every view on the stack to re-read controller state.
type refreshViewMsg struct{}

// pushView returns a tea.Cmd that pushes a view onto the stack.
func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

// popView returns a tea.Cmd that pops the current view.
func popView() tea.Cmd {
	return func() tea.Msg { return popViewMsg{} }
}

func refreshViews() tea.Cmd {
	return func() tea.Msg { return refreshViewMsg{} }
}

// Backend results. Views start a request and the appModel folds the
// result into the owning controller, so a response that arrives after its
// view was closed still releases the controller's in-flight guard.

type submitResultMsg struct {
	res service.SubmitResult
}

type followupResultMsg struct {
	wizard *service.FollowupWizard
	res    service.CompleteResult
}

type reportResultMsg struct {
	res service.ReportResult
}

func submitCmd(form *service.FormController, req *service.SubmitRequest) tea.Cmd {
	return func() tea.Msg {
		return submitResultMsg{res: form.Send(context.Background(), req)}
	}
}

func completeFollowupCmd(w *service.FollowupWizard, req *service.CompleteRequest) tea.Cmd {
	return func() tea.Msg {
		return followupResultMsg{wizard: w, res: w.Send(context.Background(), req)}
	}
}

func generateReportCmd(r *service.ReportRequester, req *service.ReportRequest) tea.Cmd {
	return func() tea.Msg {
		return reportResultMsg{res: r.Send(context.Background(), req)}
	}
}
