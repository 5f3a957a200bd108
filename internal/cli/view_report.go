package cli

import (
	"errors"
	"strings"

	"github.com/alexanderramin/logbook/internal/cli/formatter"
	"github.com/alexanderramin/logbook/internal/service"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

type reportPhase int

const (
	reportPhaseRange reportPhase = iota
	reportPhaseLoading
	reportPhaseResult
)

type reportKeyMap struct {
	NewRange key.Binding
	Close    key.Binding
	Scroll   key.Binding
}

var reportKeys = reportKeyMap{
	NewRange: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "new range")),
	Close:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	Scroll:   key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "scroll")),
}

// reportView collects a date range, shows progress while the report is
// generated and then displays the result in a scrollable viewport.
type reportView struct {
	state *SharedState
	phase reportPhase

	start string
	end   string
	form  *huh.Form

	content viewport.Model
}

func newReportView(state *SharedState) *reportView {
	v := &reportView{state: state}
	v.content = viewport.New(state.ContentWidth(), v.viewportHeight())
	v.resetRange()
	return v
}

// resetRange shows the range form prefilled from the requester's query.
func (v *reportView) resetRange() {
	q := v.state.Report.Query()
	v.start, v.end = q.StartDate, q.EndDate
	v.form = newRangeForm(&v.start, &v.end)
	v.phase = reportPhaseRange
}

func (v *reportView) viewportHeight() int {
	// Banner and hint lines sit above and below the viewport.
	h := v.state.ContentHeight() - 3
	if h < 5 {
		return 5
	}
	return h
}

func (v *reportView) Init() tea.Cmd {
	if v.phase == reportPhaseRange {
		return v.form.Init()
	}
	return nil
}

// sync moves to the phase matching the requester's state.
func (v *reportView) sync() tea.Cmd {
	r := v.state.Report
	if v.phase != reportPhaseLoading || r.Loading() {
		return nil
	}
	if r.Result() != nil {
		v.phase = reportPhaseResult
		v.renderResult()
		return nil
	}
	// A failed request goes back to the range with the error banner.
	v.resetRange()
	return v.form.Init()
}

func (v *reportView) renderResult() {
	out := formatter.FormatWeeklyReport(v.state.Report.Result(), v.state.ContentWidth(), v.state.App.now())
	v.content.SetContent(out)
	v.content.GotoTop()
}

func (v *reportView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshViewMsg:
		return v, v.sync()

	case tea.WindowSizeMsg:
		v.content.Width = v.state.ContentWidth()
		v.content.Height = v.viewportHeight()
		if v.phase == reportPhaseResult {
			v.renderResult()
		}
		return v, nil

	case tea.KeyMsg:
		if key.Matches(msg, reportKeys.Close) {
			v.state.Report.Close()
			return v, popView()
		}
		switch v.phase {
		case reportPhaseLoading:
			return v, nil
		case reportPhaseResult:
			if key.Matches(msg, reportKeys.NewRange) {
				v.resetRange()
				return v, v.form.Init()
			}
			var cmd tea.Cmd
			v.content, cmd = v.content.Update(msg)
			return v, cmd
		}
	}

	if v.phase != reportPhaseRange {
		return v, nil
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}
	if v.form.State == huh.StateCompleted {
		return v, tea.Batch(cmd, v.generate())
	}
	return v, cmd
}

// generate validates the range through the requester and starts the request.
func (v *reportView) generate() tea.Cmd {
	r := v.state.Report
	r.SetRange(v.start, v.end)
	req, err := r.BeginGenerate()
	if errors.Is(err, service.ErrBusy) {
		return nil
	}
	if err != nil {
		v.resetRange()
		return v.form.Init()
	}
	v.phase = reportPhaseLoading
	return generateReportCmd(r, req)
}

func (v *reportView) View() string {
	var b strings.Builder
	if msg := v.state.Report.Message(); !msg.IsZero() {
		b.WriteString(renderBanner(msg))
		b.WriteString("\n\n")
	}

	switch v.phase {
	case reportPhaseLoading:
		b.WriteString(formatter.Dim("Generating weekly report..."))
		b.WriteString("\n")
	case reportPhaseResult:
		b.WriteString(v.content.View())
		b.WriteString("\n")
	default:
		b.WriteString(formatter.Dim("Report for " + v.state.Report.Query().UserID))
		b.WriteString("\n\n")
		b.WriteString(v.form.View())
	}
	return b.String()
}

func (v *reportView) ID() ViewID    { return ViewReport }
func (v *reportView) Title() string { return "Weekly report" }
func (v *reportView) ShortHelp() []key.Binding {
	switch v.phase {
	case reportPhaseResult:
		return []key.Binding{reportKeys.Scroll, reportKeys.NewRange, reportKeys.Close}
	case reportPhaseLoading:
		return []key.Binding{reportKeys.Close}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "generate")),
		reportKeys.Close,
	}
}
