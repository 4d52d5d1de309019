package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/yellow-box/cmd/cli/commands"
	"github.com/jakechorley/yellow-box/internal/config"
	"github.com/jakechorley/yellow-box/pkg/utils/logging"
)

var (
	env        string
	configPath string
	logsDir    string
	verbose    bool
	app        = &commands.AppContext{}
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rota",
		Short: "Yellow Box rota - assign people to duty blocks",
		Long: `A CLI tool that assigns a roster of people to two-week duty blocks, skipping the
Christmas weeks, and exports the result as an Excel spreadsheet.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "rota", "Environment name, used to prefix log files")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: ./rota_config.yaml, then ~/rota_config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logsDir, "logs-dir", "", "Also write JSON debug logs to this directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to the console")

	rootCmd.AddCommand(commands.RollingCmd(app))
	rootCmd.AddCommand(commands.PoolCmd(app))
	rootCmd.AddCommand(commands.MonthlyCmd(app))

	rootCmd.SetArgs(commands.NormalizeArgs(rootCmd, os.Args[1:]))
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger and config
func initApp() error {
	var err error

	app.Logger, err = logging.InitLogger(logging.Options{
		Env:     env,
		LogsDir: logsDir,
		Verbose: verbose,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Debug("Loading configuration", zap.String("path", configPath))
	app.Cfg, err = config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully",
		zap.String("output", app.Cfg.Output),
		zap.Int("blackout_rules", len(app.Cfg.Blackouts)))

	return nil
}
