package cli

import (
	"strings"

	"github.com/alexanderramin/logbook/internal/cli/formatter"
	"github.com/alexanderramin/logbook/internal/service"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var reportKey = key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "weekly report"))

// appModel is the root bubbletea Model for the TUI.
// It manages a view stack and applies backend results to the controllers.
type appModel struct {
	state     *SharedState
	viewStack []View
	spinner   spinner.Model
	quitting  bool

	// quitOnEmpty ends the program when the last view is popped. Used when
	// the TUI only hosts a follow-up started from the submit command.
	quitOnEmpty bool
}

func newAppModel(app *App) appModel {
	state := newSharedState(app)
	m := appModel{
		state:   state,
		spinner: newSpinner(),
	}
	// Start with the daily update form as the home view.
	m.viewStack = []View{newLogFormView(state)}
	return m
}

// newFollowupAppModel hosts a single follow-up wizard opened outside the TUI.
func newFollowupAppModel(app *App, form *service.FormController, w *service.FollowupWizard) appModel {
	state := &SharedState{
		App:      app,
		Form:     form,
		Followup: w,
		Report:   service.NewReportRequester(app.Gateway, app.Observer),
	}
	return appModel{
		state:       state,
		spinner:     newSpinner(),
		viewStack:   []View{newFollowupView(state, w)},
		quitOnEmpty: true,
	}
}

func newSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = formatter.StylePurple
	return s
}

// activeView returns the top view on the stack, or nil.
func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

// setActiveView replaces the top of the view stack.
// If the stack is empty, this is a no-op.
func (m *appModel) setActiveView(v View) {
	if len(m.viewStack) > 0 {
		m.viewStack[len(m.viewStack)-1] = v
	}
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m appModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if v := m.activeView(); v != nil {
		cmds = append(cmds, v.Init())
	}
	return tea.Batch(cmds...)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		return m.broadcast(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pushViewMsg:
		m.viewStack = append(m.viewStack, msg.view)
		return m, msg.view.Init()

	case popViewMsg:
		return m.pop()

	case refreshViewMsg:
		return m.broadcast(msg)

	case submitResultMsg:
		out := m.state.Form.Apply(msg.res)
		if out.Stale {
			return m, nil
		}
		m.state.App.logger().WithField("message", out.Message.Text).Debug("work update applied")
		if out.Followup != nil {
			m.state.Followup = out.Followup
			return m, tea.Batch(refreshViews(), pushView(newFollowupView(m.state, out.Followup)))
		}
		return m, refreshViews()

	case followupResultMsg:
		out := msg.wizard.Apply(msg.res)
		if out.Stale {
			return m, nil
		}
		if out.Done {
			if m.state.Followup == msg.wizard {
				m.state.Followup = nil
			}
			if v := m.activeView(); v != nil && v.ID() == ViewFollowup {
				return m, tea.Batch(popView(), refreshViews())
			}
		}
		return m, refreshViews()

	case reportResultMsg:
		if out := m.state.Report.Apply(msg.res); out.Stale {
			return m, nil
		}
		return m, refreshViews()
	}

	// Forward to active view
	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global quit
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}

	if key.Matches(msg, reportKey) {
		if v := m.activeView(); v != nil && v.ID() == ViewUpdateForm {
			return m, m.openReport()
		}
	}

	// Views own every other key, including esc.
	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	return m, nil
}

// openReport pushes the report view, or shows the gate message on the form
// when no user id has been entered.
func (m *appModel) openReport() tea.Cmd {
	if f, ok := m.activeView().(*logFormView); ok {
		f.syncDraft()
	}
	if err := m.state.Report.Open(m.state.UserID()); err != nil {
		m.state.Form.SetMessage(service.Message{Kind: service.MessageError, Text: err.Error()})
		return refreshViews()
	}
	return pushView(newReportView(m.state))
}

func (m appModel) pop() (tea.Model, tea.Cmd) {
	if len(m.viewStack) > 1 {
		m.viewStack = m.viewStack[:len(m.viewStack)-1]
		return m, refreshViews()
	}
	if m.quitOnEmpty {
		return m.quit()
	}
	return m, nil
}

func (m appModel) quit() (tea.Model, tea.Cmd) {
	m.state.Close()
	m.quitting = true
	return m, tea.Quit
}

// broadcast sends msg to ALL views in the stack so underlying views
// re-read controller state changed by views above them.
func (m appModel) broadcast(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	for i, v := range m.viewStack {
		updated, cmd := v.Update(msg)
		m.viewStack[i] = updated.(View)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	var sections []string

	sections = append(sections, m.renderHeader())
	if v := m.activeView(); v != nil {
		sections = append(sections, v.View())
	}
	sections = append(sections, m.renderStatusBar())

	result := strings.Join(sections, "\n")

	// Pad to terminal height to prevent stale line artifacts from
	// bubbletea's line-diff renderer in alt-screen mode.
	if m.state.Height > 0 {
		lines := strings.Count(result, "\n") + 1
		if lines < m.state.Height {
			result += strings.Repeat("\n", m.state.Height-lines)
		}
	}

	return result
}

// ── rendering helpers ────────────────────────────────────────────────────────

func (m *appModel) renderHeader() string {
	title := formatter.StylePurple.Render("logbook")

	// Breadcrumb from view stack
	var crumbs []string
	for _, v := range m.viewStack {
		if t := v.Title(); t != "" {
			crumbs = append(crumbs, t)
		}
	}
	breadcrumb := ""
	if len(crumbs) > 0 {
		breadcrumb = " " + formatter.Dim("›") + " " + formatter.Dim(strings.Join(crumbs, " › "))
	}

	header := title + breadcrumb

	if id := m.state.UserID(); id != "" {
		header += "  " + formatter.Dim("[") + formatter.StyleGreen.Render(id) + formatter.Dim("]")
	}
	header += "  " + formatter.StatusPill(m.state.Form.Draft().Status)
	if m.state.Busy() {
		header += "  " + m.spinner.View()
	}

	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return header + "\n" + sep
}

func (m *appModel) renderStatusBar() string {
	var hints []string
	if v := m.activeView(); v != nil {
		for _, b := range v.ShortHelp() {
			hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
		}
		if v.ID() == ViewUpdateForm {
			hints = append(hints, formatter.Dim(reportKey.Help().Key+": "+reportKey.Help().Desc))
		}
	}
	hints = append(hints, formatter.Dim("ctrl+c: quit"))

	bar := strings.Join(hints, "  ")
	sepStyle := lipgloss.NewStyle().Foreground(formatter.ColorDim)
	sep := sepStyle.Render(strings.Repeat("─", max(m.state.Width, 20)))
	return sep + "\n" + bar
}

// renderBanner renders a controller message the way every view shows it.
func renderBanner(msg service.Message) string {
	switch msg.Kind {
	case service.MessageSuccess:
		return formatter.StyleGreen.Render("✔ " + msg.Text)
	case service.MessageError:
		return formatter.StyleRed.Render("✖ " + msg.Text)
	case service.MessageInfo:
		return formatter.StyleBlue.Render("ℹ " + msg.Text)
	}
	return msg.Text
}
