package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/logbook/internal/cli/formatter"
	"github.com/alexanderramin/logbook/internal/domain"
	"github.com/alexanderramin/logbook/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// reportWidth is the wrap width for reports printed outside the TUI.
const reportWidth = 80

func newReportCmd(app *App) *cobra.Command {
	var (
		userID       string
		from         string
		to           string
		defaultRange bool
		raw          bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a weekly report",
		Long: `Generate a weekly report for a date range.

Without --from and --to the range is the last seven days. --default-range
leaves the range to the server.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := service.NewReportRequester(app.Gateway, app.Observer)
			if err := r.Open(app.userOrDefault(userID)); err != nil {
				return err
			}
			defer r.Close()

			var req *service.ReportRequest
			var err error
			if defaultRange {
				req, err = r.BeginDefaultRange()
			} else {
				q := rangeFromFlags(cmd.Flags(), r.Query(), from, to)
				r.SetRange(q.StartDate, q.EndDate)
				req, err = r.BeginGenerate()
			}
			if err != nil {
				return err
			}

			stop := formatter.StartSpinner(app.spinnerOut(cmd), "Generating weekly report...")
			out := r.Apply(r.Send(context.Background(), req))
			stop()
			if out.Report == nil {
				return errors.New(out.Message.Text)
			}

			if raw {
				fmt.Fprintln(cmd.OutOrStdout(), out.Report.Report)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatWeeklyReport(out.Report, reportWidth, app.now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User ID (defaults to the configured user)")
	cmd.Flags().StringVar(&from, "from", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "End date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&defaultRange, "default-range", false, "Let the server choose the date range")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the report text without formatting")
	cmd.MarkFlagsMutuallyExclusive("default-range", "from")
	cmd.MarkFlagsMutuallyExclusive("default-range", "to")

	return cmd
}

// rangeFromFlags overrides the default range with the dates given on the
// command line. An explicitly empty flag clears that end of the range.
func rangeFromFlags(flags *pflag.FlagSet, q domain.WeeklyReportQuery, from, to string) domain.WeeklyReportQuery {
	if flags.Changed("from") {
		q.StartDate = from
	}
	if flags.Changed("to") {
		q.EndDate = to
	}
	return q
}
