package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/yellow-box/pkg/clients/rosterfile"
	"github.com/jakechorley/yellow-box/pkg/clients/xlsxclient"
	"github.com/jakechorley/yellow-box/pkg/core/model"
	"github.com/jakechorley/yellow-box/pkg/core/services"
)

// scheduleFlags are the flags shared by every policy command
type scheduleFlags struct {
	names    string
	start    string
	out      string
	seed     string
	fallback string
	dryRun   bool
}

func (f *scheduleFlags) register(cmd *cobra.Command, startUsage string) {
	cmd.Flags().StringVar(&f.names, "names", "", "Path to file with names, one 'LastName, FirstName' per line (required)")
	cmd.Flags().StringVar(&f.start, "start", "", startUsage)
	cmd.Flags().StringVar(&f.out, "out", "schedule.xlsx", "Output Excel filename (overrides config)")
	cmd.Flags().StringVar(&f.seed, "seed", "", "Seed for random decisions")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Print the schedule without writing a file")
	cmd.MarkFlagRequired("names")
}

func (f *scheduleFlags) registerFallback(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.fallback, "fallback", "",
		fmt.Sprintf("How to form a group once the roster runs out (%v)", model.FallbackPolicies))
}

// output returns the output path, preferring an explicit flag over the config file
func (f *scheduleFlags) output(cmd *cobra.Command, app *AppContext) string {
	if cmd.Flags().Changed("out") || app.Cfg == nil {
		return f.out
	}
	return app.Cfg.Output
}

// fallbackPolicy resolves the fallback from the flag, then the config file.
// Empty means the policy default.
func (f *scheduleFlags) fallbackPolicy(app *AppContext) (model.FallbackPolicy, error) {
	name := f.fallback
	if name == "" && app.Cfg != nil {
		name = app.Cfg.Fallback
	}
	if name == "" {
		return "", nil
	}
	return model.ParseFallbackPolicy(name)
}

// runSchedule loads the roster, generates the schedule, prints it and, unless this is a
// dry run, writes it to the output spreadsheet
func runSchedule(cmd *cobra.Command, app *AppContext, flags *scheduleFlags, req services.ScheduleRequest) error {
	roster, err := rosterfile.Load(flags.names, app.Logger)
	if err != nil {
		return err
	}

	rng, seed := services.NewRand(flags.seed)
	app.Logger.Info("Using random seed", zap.Uint64("seed", seed))

	output := flags.output(cmd, app)
	req.Roster = roster
	req.Rand = rng
	req.Output = output
	if app.Cfg != nil {
		req.Blackouts = app.Cfg.Blackouts
	}

	result, err := services.GenerateSchedule(req, app.Logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printSchedule(out, result)
	fmt.Fprintf(out, "Seed: %d (pass --seed %d to reproduce)\n", seed, seed)

	if flags.dryRun {
		fmt.Fprintf(out, "\nDry run: %s not written\n", result.OutputPath)
		return nil
	}

	sheetName := ""
	if app.Cfg != nil {
		sheetName = app.Cfg.SheetName
	}
	exporter := xlsxclient.NewClient(sheetName, rng, app.Logger)
	exported, err := services.PublishSchedule(exporter, result, output, app.Logger)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\n✓ Schedule written to %s (%d rows)\n", exported.Path, exported.RowCount)
	if exported.BackupPath != "" {
		fmt.Fprintf(out, "  Previous schedule moved to %s\n", exported.BackupPath)
	}
	return nil
}

// printSchedule writes the schedule as an aligned table
func printSchedule(w io.Writer, result *services.ScheduleResult) {
	header := xlsxclient.Header(result.Policy)
	rows := make([][]string, 0, len(result.Rows)+1)
	rows = append(rows, header)
	for _, row := range result.Rows {
		cells := xlsxclient.RowCells(result.Policy, row)
		line := make([]string, len(cells))
		for i, c := range cells {
			line[i] = fmt.Sprint(c)
		}
		rows = append(rows, line)
	}

	widths := make([]int, len(header))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell))
		}
	}

	fmt.Fprintf(w, "\n%s rota starting %s\n\n", result.Policy, result.Start.Format("Mon 02 Jan 2006"))
	for _, row := range rows {
		padded := make([]string, len(row))
		for i, cell := range row {
			padded[i] = fmt.Sprintf("%-*s", widths[i], cell)
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(padded, "  "), " "))
	}

	if len(result.FallbackBlocks) > 0 {
		fmt.Fprintf(w, "\n⚠️  %d block(s) filled from people already on duty\n", len(result.FallbackBlocks))
	}
	if len(result.Unassigned) > 0 {
		names := make([]string, len(result.Unassigned))
		for i, p := range result.Unassigned {
			names[i] = p.FullName()
		}
		fmt.Fprintf(w, "⚠️  Not on this rota: %s\n", strings.Join(names, ", "))
	}
	fmt.Fprintln(w)
}
