package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/yellow-box/pkg/core/calendar"
	"github.com/jakechorley/yellow-box/pkg/core/model"
	"github.com/jakechorley/yellow-box/pkg/core/services"
)

// MonthlyCmd creates the monthly command: three people per two-week block, starting on the
// first Monday of a month, with one block per three people
func MonthlyCmd(app *AppContext) *cobra.Command {
	flags := &scheduleFlags{}
	var year int

	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Assign three people per two-week block from the first Monday of a month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.now()
			month := now.Month()
			if flags.start != "" {
				parsed, err := calendar.ParseMonth(flags.start)
				if err != nil {
					return err
				}
				month = parsed
			}

			if !cmd.Flags().Changed("year") {
				year = calendar.DefaultYearForMonth(month, now)
			}
			if year < 1 || year > 9999 {
				return fmt.Errorf("%w: year %d out of range", model.ErrInvalidInput, year)
			}

			fallback, err := flags.fallbackPolicy(app)
			if err != nil {
				return err
			}

			return runSchedule(cmd, app, flags, services.ScheduleRequest{
				Policy:   model.PolicyMonthly,
				Month:    month,
				Year:     year,
				Fallback: fallback,
			})
		},
	}

	flags.register(cmd, "Start month (e.g. april), defaults to the current month")
	flags.registerFallback(cmd)
	cmd.Flags().IntVar(&year, "year", 0, "Year (default: this year, or next year if the month has passed)")

	return cmd
}
