package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// NormalizeArgs rewrites single-dash long flags such as -names into --names so the
// historical command line keeps working. Shorthand flags and everything after "--" are
// left alone.
func NormalizeArgs(root *cobra.Command, args []string) []string {
	longFlags := collectLongFlags(root)

	normalized := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			return append(normalized, args[i:]...)
		}

		if len(arg) > 2 && arg[0] == '-' && arg[1] != '-' {
			name, _, _ := strings.Cut(arg[1:], "=")
			if longFlags[name] {
				arg = "-" + arg
			}
		}
		normalized = append(normalized, arg)
	}
	return normalized
}

// collectLongFlags returns every long flag name defined on cmd or any of its subcommands
func collectLongFlags(cmd *cobra.Command) map[string]bool {
	names := make(map[string]bool)
	add := func(f *pflag.Flag) {
		if len(f.Name) > 1 {
			names[f.Name] = true
		}
	}

	cmd.Flags().VisitAll(add)
	cmd.PersistentFlags().VisitAll(add)
	for _, sub := range cmd.Commands() {
		for name := range collectLongFlags(sub) {
			names[name] = true
		}
	}
	return names
}
