package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/logbook/internal/cli/formatter"
	"github.com/alexanderramin/logbook/internal/service"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

const followupProgressWidth = 20

type followupKeyMap struct {
	Next     key.Binding
	Previous key.Binding
	Submit   key.Binding
	Cancel   key.Binding
}

var followupKeys = followupKeyMap{
	Next:     key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "next")),
	Previous: key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "previous")),
	Submit:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "submit")),
	Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "discard")),
}

// followupView shows one follow-up question at a time with a textarea for
// the answer. Navigation and submission go through the FollowupWizard.
type followupView struct {
	state  *SharedState
	wizard *service.FollowupWizard
	input  textarea.Model
}

func newFollowupView(state *SharedState, w *service.FollowupWizard) *followupView {
	ta := textarea.New()
	ta.Placeholder = "Type your answer here..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(5)
	v := &followupView{state: state, wizard: w, input: ta}
	v.resize()
	v.load()
	return v
}

// load puts the current question's stored answer into the textarea.
func (v *followupView) load() {
	v.input.SetValue(v.wizard.Answer())
	v.input.CursorEnd()
}

func (v *followupView) resize() {
	w := v.state.ContentWidth() - 4
	if w > 100 {
		w = 100
	}
	v.input.SetWidth(w)
}

func (v *followupView) Init() tea.Cmd {
	return v.input.Focus()
}

func (v *followupView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.resize()
		return v, nil

	case refreshViewMsg:
		if !v.wizard.Closed() {
			v.load()
		}
		return v, nil

	case tea.KeyMsg:
		if v.wizard.Submitting() {
			return v, nil
		}
		switch {
		case key.Matches(msg, followupKeys.Cancel):
			v.wizard.Close()
			if v.state.Followup == v.wizard {
				v.state.Followup = nil
			}
			return v, popView()

		case key.Matches(msg, followupKeys.Next):
			if v.wizard.Next() == nil {
				v.load()
			}
			return v, nil

		case key.Matches(msg, followupKeys.Previous):
			if v.wizard.Previous() == nil {
				v.load()
			}
			return v, nil

		case key.Matches(msg, followupKeys.Submit):
			return v, v.submit()
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	v.wizard.SetAnswer(v.input.Value())
	return v, cmd
}

func (v *followupView) submit() tea.Cmd {
	if !v.wizard.IsLast() {
		return nil
	}
	req, err := v.wizard.BeginSubmit()
	if err != nil {
		// Validation failures are already on the wizard's banner.
		return nil
	}
	return completeFollowupCmd(v.wizard, req)
}

func (v *followupView) View() string {
	var b strings.Builder

	if msg := v.state.Form.Message(); msg.Kind == service.MessageInfo {
		b.WriteString(renderBanner(msg))
		b.WriteString("\n\n")
	}

	b.WriteString(formatter.RenderStep(v.wizard.Index(), v.wizard.Len(), followupProgressWidth))
	b.WriteString("\n\n")
	b.WriteString(formatter.Bold(v.wizard.Question()))
	b.WriteString("\n\n")
	b.WriteString(v.input.View())
	b.WriteString("\n\n")

	if msg := v.wizard.Message(); !msg.IsZero() {
		b.WriteString(renderBanner(msg))
		b.WriteString("\n\n")
	}

	b.WriteString(v.renderControls())
	b.WriteString("\n")
	return b.String()
}

// renderControls shows each control, dimmed when it is disabled.
func (v *followupView) renderControls() string {
	control := func(enabled bool, label string) string {
		if enabled {
			return formatter.StyleHeader.Render(label)
		}
		return formatter.Dim(label)
	}
	parts := []string{control(v.wizard.CanPrevious() && !v.wizard.Submitting(), "‹ Previous")}
	if v.wizard.IsLast() {
		label := "Submit"
		if v.wizard.Submitting() {
			label = "Submitting..."
		}
		parts = append(parts, control(v.wizard.CanSubmit(), label))
	} else {
		parts = append(parts, control(v.wizard.CanNext(), "Next ›"))
	}
	return strings.Join(parts, "   ") + formatter.Dim(fmt.Sprintf("   (%d answered)", v.answered()))
}

func (v *followupView) answered() int {
	n := 0
	for _, a := range v.wizard.Answers() {
		if strings.TrimSpace(a) != "" {
			n++
		}
	}
	return n
}

func (v *followupView) ID() ViewID    { return ViewFollowup }
func (v *followupView) Title() string { return "Follow-up" }
func (v *followupView) ShortHelp() []key.Binding {
	if v.wizard.IsLast() {
		return []key.Binding{followupKeys.Previous, followupKeys.Submit, followupKeys.Cancel}
	}
	return []key.Binding{followupKeys.Previous, followupKeys.Next, followupKeys.Cancel}
}
