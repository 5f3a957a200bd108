package cli

import (
	"errors"
	"strings"

	"github.com/alexanderramin/logbook/internal/cli/formatter"
	"github.com/alexanderramin/logbook/internal/service"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// logFormView is the daily update form. It binds a huh form to local
// values, hands them to the FormController on completion and rebuilds the
// form from the controller's draft whenever the controller changes.
type logFormView struct {
	state  *SharedState
	fields *updateFields
	form   *huh.Form
}

func newLogFormView(state *SharedState) *logFormView {
	v := &logFormView{state: state}
	v.rebuild()
	return v
}

func (v *logFormView) rebuild() {
	v.fields = fieldsFromDraft(v.state.Form.Draft())
	v.form = newUpdateForm(v.fields, v.state.App.StackOptions)
}

// syncDraft copies the form values into the controller.
func (v *logFormView) syncDraft() {
	for _, p := range v.fields.pairs() {
		// Only an unknown status can fail here and the select offers none.
		_ = v.state.Form.UpdateField(p[0], p[1])
	}
}

func (v *logFormView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *logFormView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(refreshViewMsg); ok {
		if v.state.Form.Submitting() {
			return v, nil
		}
		v.rebuild()
		return v, v.form.Init()
	}
	if v.state.Form.Submitting() {
		if _, ok := msg.(tea.KeyMsg); ok {
			return v, nil
		}
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}

	if v.form.State == huh.StateCompleted {
		return v, tea.Batch(cmd, v.submit())
	}
	return v, cmd
}

// submit validates through the controller and starts the request.
func (v *logFormView) submit() tea.Cmd {
	v.syncDraft()
	req, err := v.state.Form.BeginSubmit()
	if errors.Is(err, service.ErrBusy) {
		return nil
	}
	if err != nil {
		// The controller set the banner; show the form again with the values kept.
		v.rebuild()
		return v.form.Init()
	}
	return submitCmd(v.state.Form, req)
}

func (v *logFormView) View() string {
	var b strings.Builder
	if msg := v.state.Form.Message(); !msg.IsZero() {
		b.WriteString(renderBanner(msg))
		b.WriteString("\n\n")
	}
	if v.state.Form.Submitting() {
		b.WriteString(formatter.Dim("Submitting work update..."))
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(v.form.View())
	return b.String()
}

func (v *logFormView) ID() ViewID    { return ViewUpdateForm }
func (v *logFormView) Title() string { return "Daily update" }
func (v *logFormView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
		key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "back")),
	}
}
