package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/logbook/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newHealthCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the backend is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := app.Health.Health(context.Background())
			if err != nil {
				return fmt.Errorf("backend unreachable at %s: %w", app.BaseURL, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatHealth(app.BaseURL, h, app.now()))
			return nil
		},
	}
}
