package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ameliedv/moodflow/internal/cli/formatter"
)

func newShowCmd(app *App) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "show [date]",
		Short: "Show the stored schedule for a date",
		Long:  "Show reads the saved schedule for a date (default today) straight from the store, without a model call.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := time.Now().Format("2006-01-02")
			if len(args) == 1 {
				parsed, err := time.Parse("2006-01-02", args[0])
				if err != nil {
					return fmt.Errorf("invalid date %q, want YYYY-MM-DD", args[0])
				}
				date = parsed.Format("2006-01-02")
			}

			rec, err := app.Planner.Lookup(cmd.Context(), userID, date)
			if err != nil {
				return err
			}
			if rec == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "No schedule found for %s.\n", formatter.HumanDate(date))
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRecord(rec))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User the schedule belongs to")

	return cmd
}
