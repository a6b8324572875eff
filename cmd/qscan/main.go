/*
qscan is a console utility scanning text with patterns.

	qscan scan (-p <pattern> | -f <file>) [--whole] [<input file>...]
	qscan check [--go [--package <name>] [--var <name>]] <file>...

Patterns are written in the language described in langdef package, pattern files
may also contain grammar descriptions in YAML (.yaml, .yml), TOML (.toml), or JSON (.json) format.

scan command reads input files (or standard input) line by line and prints captured values
of every matching line, --whole flag makes it scan the whole input as a single text.

check command validates pattern files and prints them in normalized form or, with --go flag,
generates Go source files containing grammar descriptions.

Settings may be put to qscan.yaml file or QSCAN_* environment variables.
Exit code is 0 on success, 1 if some input did not match, and 2 on usage or pattern errors.
*/
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type contextKey string

const settingsKey contextKey = "settings"

func WrapSettings(ctx context.Context, s *Settings) context.Context {
	return context.WithValue(ctx, settingsKey, s)
}

func UnwrapSettings(ctx context.Context) *Settings {
	return ctx.Value(settingsKey).(*Settings)
}

var errNoMatch = errors.New("some input did not match")

// ExitCode returns process exit code for an error returned by a command.
func ExitCode(e error) int {
	switch {
	case e == nil:
		return 0
	case errors.Is(e, errNoMatch):
		return 1
	default:
		return 2
	}
}

func CmdQscan() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "qscan",
		Short:         "Scan structured text with patterns",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			s, e := SettingsFromCmd(cmd)
			if e != nil {
				return e
			}
			ConfigureLogger(s)
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(WrapSettings(ctx, s))
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	AddSettingsArgs(cmd)

	cmd.AddCommand(CmdScan())
	cmd.AddCommand(CmdCheck())
	return cmd
}

func main() {
	rootCmd := CmdQscan()
	e := rootCmd.Execute()
	if e != nil && !errors.Is(e, errNoMatch) {
		fmt.Fprintln(os.Stderr, e.Error())
	}
	os.Exit(ExitCode(e))
}
