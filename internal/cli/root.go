package cli

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/alexanderramin/logbook/internal/api"
	"github.com/alexanderramin/logbook/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// HealthChecker reports backend availability.
type HealthChecker interface {
	Health(ctx context.Context) (*api.HealthResponse, error)
}

// App holds the collaborators used by CLI commands and the TUI.
type App struct {
	Gateway  service.Gateway
	Health   HealthChecker
	Observer service.UseCaseObserver
	Log      logrus.FieldLogger

	BaseURL      string
	UserID       string // default user id from configuration
	StackOptions []string

	// IsInteractive reports whether stdin is a terminal. Nil means false.
	IsInteractive func() bool

	// Now is the clock used for display. Nil means time.Now.
	Now func() time.Time

	// ProgramOptions are appended to the bubbletea program options.
	ProgramOptions []tea.ProgramOption
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) logger() logrus.FieldLogger {
	if a.Log != nil {
		return a.Log
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// userOrDefault returns the flag value when set, else the configured default.
func (a *App) userOrDefault(flag string) string {
	if v := strings.TrimSpace(flag); v != "" {
		return v
	}
	return strings.TrimSpace(a.UserID)
}

// spinnerOut returns where progress spinners draw, or nil when the
// session is not interactive.
func (a *App) spinnerOut(cmd *cobra.Command) io.Writer {
	if !a.interactive() {
		return nil
	}
	return cmd.ErrOrStderr()
}

// NewRootCmd creates the top-level "logbook" command and registers all
// subcommands against the provided App. Without a subcommand it opens the
// TUI on a terminal and prints help otherwise.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "logbook",
		Short:         "Daily activity log client",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newTUICmd(app),
		newSubmitCmd(app),
		newReportCmd(app),
		newHealthCmd(app),
	)

	return root
}

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive daily update form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(app)
		},
	}
}

func runTUI(app *App) error {
	opts := append([]tea.ProgramOption{tea.WithAltScreen()}, app.ProgramOptions...)
	_, err := tea.NewProgram(newAppModel(app), opts...).Run()
	return err
}
