package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jakechorley/yellow-box/pkg/core/calendar"
	"github.com/jakechorley/yellow-box/pkg/core/model"
	"github.com/jakechorley/yellow-box/pkg/core/services"
)

// RollingCmd creates the rolling command: one person per two-week block, cycling through
// a shuffled roster
func RollingCmd(app *AppContext) *cobra.Command {
	flags := &scheduleFlags{}
	var weeks int

	cmd := &cobra.Command{
		Use:   "rolling",
		Short: "Assign one person per two-week block, cycling through the roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := startDate(flags.start, app)
			if err != nil {
				return err
			}
			if weeks < 0 {
				return fmt.Errorf("%w: weeks must not be negative, got %d", model.ErrInvalidInput, weeks)
			}

			return runSchedule(cmd, app, flags, services.ScheduleRequest{
				Policy: model.PolicyRolling,
				Start:  start,
				Weeks:  weeks,
			})
		},
	}

	flags.register(cmd, "Start date (YYYY-MM-DD), defaults to today")
	cmd.Flags().IntVar(&weeks, "weeks", 0, "Number of weeks to schedule (default: two per person)")

	return cmd
}

// startDate parses the start flag, defaulting to today
func startDate(value string, app *AppContext) (time.Time, error) {
	if value == "" {
		return calendar.Date(app.now()), nil
	}
	return calendar.ParseDate(value)
}
