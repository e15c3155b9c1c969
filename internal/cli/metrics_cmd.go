package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ebracha/plank/internal/cli/formatter"
)

func newMetricsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "metrics <board>",
		Short: "Show a board's metrics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			board, err := resolveBoard(ctx, app, args[0])
			if err != nil {
				return err
			}
			m, err := app.Metrics.Get(ctx, board.ID, time.Now())
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatMetrics(m))
			return nil
		},
	}
}
