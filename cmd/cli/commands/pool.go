package commands

import (
	"github.com/spf13/cobra"

	"github.com/jakechorley/yellow-box/pkg/core/model"
	"github.com/jakechorley/yellow-box/pkg/core/services"
)

// PoolCmd creates the pool command: three people per two-week block until the end of the
// start date's year
func PoolCmd(app *AppContext) *cobra.Command {
	flags := &scheduleFlags{}

	cmd := &cobra.Command{
		Use:   "pool",
		Short: "Assign three people per two-week block for the rest of the year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := startDate(flags.start, app)
			if err != nil {
				return err
			}
			fallback, err := flags.fallbackPolicy(app)
			if err != nil {
				return err
			}

			return runSchedule(cmd, app, flags, services.ScheduleRequest{
				Policy:   model.PolicyPool,
				Start:    start,
				Year:     start.Year(),
				Fallback: fallback,
			})
		},
	}

	flags.register(cmd, "Start date (YYYY-MM-DD), defaults to today")
	flags.registerFallback(cmd)

	return cmd
}
