package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/ava12/quickscan/grammar"
	"github.com/ava12/quickscan/rule"
)

// CheckFile loads and compiles a pattern file.
func CheckFile(name string) (*grammar.Grammar, error) {
	g, e := LoadGrammar(name)
	if e == nil {
		_, e = rule.Compile(g, nil)
	}
	return g, e
}

func goFileName(name string) string {
	return name[:len(name)-len(filepath.Ext(name))] + ".go"
}

func CmdCheck() *cobra.Command {
	var (
		generateGo bool
		opts       GoOptions
	)
	cmd := &cobra.Command{
		Use:   "check <pattern file>...",
		Short: "Validate pattern files and print them in normalized form",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := UnwrapSettings(cmd.Context())
			if opts.OutFile != "" && len(args) > 1 {
				return errors.New("--out requires a single pattern file")
			}

			var errs error
			for _, name := range args {
				g, e := CheckFile(name)
				if e != nil {
					for _, fe := range multierr.Errors(e) {
						errs = multierr.Append(errs, errors.Wrapf(fe, "%s", name))
					}
					continue
				}

				if !generateGo {
					e = WriteValue(cmd.OutOrStdout(), settings.Output, g)
				} else {
					o := opts
					if o.OutFile == "" {
						o.OutFile = goFileName(name)
					}
					var src []byte
					src, e = MakeGo(g, o)
					if e == nil {
						e = os.WriteFile(o.OutFile, src, 0o666)
					}
					if e == nil {
						logrus.WithField("file", o.OutFile).Info("Go source written")
					}
				}
				if e != nil {
					return errors.Wrapf(e, "%s", name)
				}
			}

			if errs != nil {
				list := multierr.Errors(errs)
				for _, e := range list {
					fmt.Fprintln(cmd.ErrOrStderr(), e.Error())
				}
				return errors.Errorf("%d errors found", len(list))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&generateGo, "go", false, "Generate Go source files instead of printing grammars.")
	cmd.Flags().StringVar(&opts.OutFile, "out", "", "Go output file name, default is the name of pattern file with .go suffix.")
	cmd.Flags().StringVar(&opts.Package, "package", "", "Go package name, default is directory name of output file.")
	cmd.Flags().StringVar(&opts.Var, "var", "", "Go variable name, default is output file name.")
	return cmd
}
