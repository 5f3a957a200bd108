package cli

import (
	"testing"

	"github.com/alexanderramin/logbook/internal/domain"
	"github.com/alexanderramin/logbook/internal/teatest"
	"github.com/stretchr/testify/require"
)

// TestDriver wraps teatest.Driver with logbook-specific inspection methods.
// It provides access to appModel internals (view stack, shared state)
// that the generic driver can't see.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver creates a TestDriver from a test App.
// It constructs the appModel, sets terminal size, and drains Init().
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()

	m := newAppModel(app)
	d := teatest.New(t, m, teatest.WithSize(120, 40))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

// ── High-level helpers ───────────────────────────────────────────────────────

// FillDraft writes fields into the form controller and rebuilds the form
// view from it, the same path the view takes after a controller change.
func (d *TestDriver) FillDraft(fields map[string]string) {
	d.T.Helper()
	form := d.State().Form
	if st, ok := fields[domain.FieldStatus]; ok {
		require.NoError(d.T, form.UpdateField(domain.FieldStatus, st))
	}
	for name, value := range fields {
		if name == domain.FieldStatus {
			continue
		}
		require.NoError(d.T, form.UpdateField(name, value))
	}
	d.Send(refreshViewMsg{})
}

// SubmitForm walks the form with Enter until it completes. The detail
// group only counts when it is visible.
func (d *TestDriver) SubmitForm() {
	d.T.Helper()
	presses := 2
	if d.State().Form.Draft().DetailsVisible() {
		presses += 4
	}
	for i := 0; i < presses; i++ {
		d.PressEnter()
	}
}

// ── logbook-specific inspection ──────────────────────────────────────────────

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

// ViewStackLen returns the number of views on the stack.
func (d *TestDriver) ViewStackLen() int {
	return len(d.appModel().viewStack)
}

// ViewStackIDs returns the ViewIDs of all views on the stack, bottom to top.
func (d *TestDriver) ViewStackIDs() []ViewID {
	m := d.appModel()
	ids := make([]ViewID, len(m.viewStack))
	for i, v := range m.viewStack {
		ids[i] = v.ID()
	}
	return ids
}

// State returns the shared state for inspection.
func (d *TestDriver) State() *SharedState {
	return d.appModel().state
}

// IsQuitting returns whether the app has signaled a quit.
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}
