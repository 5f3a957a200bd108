package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/alexanderramin/logbook/internal/cli/formatter"
	"github.com/alexanderramin/logbook/internal/domain"
	"github.com/alexanderramin/logbook/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newSubmitCmd(app *App) *cobra.Command {
	var (
		userID     string
		status     string
		stack      string
		task       string
		challenges string
		plans      string
		answers    []string
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit today's work update",
		Long: `Submit today's work update without opening the form.

When the server asks for follow-up questions, pass one --answer per question
in order. On a terminal the follow-up questions open interactively instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form := service.NewFormController(app.Gateway, app.userOrDefault(userID), app.Observer)
			fields := [][2]string{
				{domain.FieldStatus, status},
				{domain.FieldStack, stack},
				{domain.FieldTask, task},
				{domain.FieldProgress, challenges},
				{domain.FieldBlockers, plans},
			}
			if st, ok := domain.ParseStatus(status); ok && st == domain.StatusLeave {
				fields = fields[:1]
			}
			for _, f := range fields {
				if err := form.UpdateField(f[0], f[1]); err != nil {
					return fmt.Errorf("--%s: %w", f[0], err)
				}
			}

			stop := formatter.StartSpinner(app.spinnerOut(cmd), "Submitting work update...")
			out, err := form.Submit(context.Background())
			stop()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, plainBanner(out.Message))
			if out.Message.Kind == service.MessageError {
				return errors.New(out.Message.Text)
			}
			if out.Followup == nil {
				return nil
			}
			return runFollowup(cmd, app, form, out.Followup, answers)
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User ID (defaults to the configured user)")
	cmd.Flags().StringVar(&status, "status", string(domain.StatusWorking), "Status: working, wfh or leave")
	cmd.Flags().StringVar(&stack, "stack", "", "Task stack, e.g. \"Backend Development\"")
	cmd.Flags().StringVar(&task, "task", "", "What you worked on today")
	cmd.Flags().StringVar(&challenges, "challenges", "", "Challenges faced (optional)")
	cmd.Flags().StringVar(&plans, "plans", "", "Plans for tomorrow (optional)")
	cmd.Flags().StringArrayVar(&answers, "answer", nil, "Follow-up answer, repeat once per question")

	return cmd
}

// runFollowup answers the follow-up from flags, or interactively on a
// terminal, and prints the form's final message.
func runFollowup(cmd *cobra.Command, app *App, form *service.FormController, wiz *service.FollowupWizard, answers []string) error {
	out := cmd.OutOrStdout()
	printQuestions(out, wiz)

	switch {
	case len(answers) > 0:
		if len(answers) != wiz.Len() {
			wiz.Close()
			return fmt.Errorf("expected %d answers, got %d", wiz.Len(), len(answers))
		}
		for i, a := range answers {
			wiz.SetAnswer(a)
			if i < len(answers)-1 {
				if err := wiz.Next(); err != nil {
					wiz.Close()
					return fmt.Errorf("answer %d: %s", i+1, domain.MsgAnswerAll)
				}
			}
		}
		stop := formatter.StartSpinner(app.spinnerOut(cmd), "Submitting follow-up answers...")
		res, err := wiz.Submit(context.Background())
		stop()
		if err != nil {
			wiz.Close()
			return err
		}
		if !res.Done {
			wiz.Close()
			return errors.New(res.Message.Text)
		}

	case app.interactive():
		opts := append([]tea.ProgramOption{tea.WithAltScreen()}, app.ProgramOptions...)
		if _, err := tea.NewProgram(newFollowupAppModel(app, form, wiz), opts...).Run(); err != nil {
			return err
		}
		if !wiz.Done() {
			return errors.New("follow-up discarded; the work update was not saved")
		}

	default:
		wiz.Close()
		return errors.New("follow-up required: pass one --answer per question")
	}

	fmt.Fprintln(out, plainBanner(form.Message()))
	return nil
}

func printQuestions(w io.Writer, wiz *service.FollowupWizard) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, formatter.Header("Follow-up questions"))
	for i, q := range wiz.Questions() {
		fmt.Fprintf(w, "  %d. %s\n", i+1, q)
	}
	fmt.Fprintln(w)
}

// plainBanner renders a controller message for line-oriented output.
func plainBanner(msg service.Message) string {
	switch msg.Kind {
	case service.MessageSuccess:
		return formatter.StyleGreen.Render("✔ ") + msg.Text
	case service.MessageError:
		return formatter.StyleRed.Render("✖ ") + msg.Text
	case service.MessageInfo:
		return formatter.StyleBlue.Render("ℹ ") + msg.Text
	}
	return msg.Text
}
