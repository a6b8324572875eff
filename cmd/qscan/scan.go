package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ava12/quickscan"
	"github.com/ava12/quickscan/grammar"
	"github.com/ava12/quickscan/langdef"
	"github.com/ava12/quickscan/rule"
	"github.com/ava12/quickscan/source"
)

const stdinName = "stdin"

// CompileSet loads pattern from text or file (exactly one must be non-empty) and compiles it
// applying policy settings.
func CompileSet(s *Settings, pattern, file string) (*rule.Set[*rule.Captures], error) {
	var (
		g *grammar.Grammar
		e error
	)
	switch {
	case pattern != "" && file != "":
		return nil, errors.New("--pattern and --file are mutually exclusive")
	case pattern != "":
		g, e = langdef.ParseString("pattern", pattern)
	case file != "":
		g, e = LoadGrammar(file)
	default:
		return nil, errors.New("either --pattern or --file is required")
	}
	if e != nil {
		return nil, e
	}

	g.Policy = s.Policy(g.Policy)
	set, e := rule.Compile(g, nil)
	if e != nil {
		return nil, errors.Wrapf(e, "cannot compile %s", g.Name)
	}
	return set.WithLogger(logrus.StandardLogger()), nil
}

type scanJob struct {
	set    *rule.Set[*rule.Captures]
	out    RecordWriter
	errOut io.Writer
	failed int
	total  int
}

func (sc *scanJob) report(name, text string, line int, se *quickscan.ScanError) {
	src := source.New(name, text)
	l, col := src.LineCol(se.Offset)
	if line > 0 {
		l = line
	}
	fmt.Fprintf(sc.errOut, "%s:%d:%d: %s\n%s\n", name, l, col, se.Error(), src.Caret(se.Offset))
}

func (sc *scanJob) scanWhole(name string, r io.Reader) error {
	data, e := io.ReadAll(r)
	if e != nil {
		return errors.Wrapf(e, "cannot read %s", name)
	}

	sc.total++
	text := string(data)
	caps, e := sc.set.Scan(text)
	if e != nil {
		sc.failed++
		sc.report(name, text, 0, quickscan.AsScanError(e))
		return nil
	}
	return sc.out.Write(caps)
}

func (sc *scanJob) scanLines(name string, r io.Reader) error {
	e := rule.ScanLines(r, sc.set, func(line int, caps *rule.Captures, e error) error {
		sc.total++
		var le *rule.LineError
		if errors.As(e, &le) {
			sc.failed++
			sc.report(name, le.Text, le.Line, le.Err)
			return nil
		}
		if e != nil {
			return e
		}
		return sc.out.Write(caps)
	})
	return errors.Wrapf(e, "cannot scan %s", name)
}

func CmdScan() *cobra.Command {
	var (
		pattern, file string
		whole         bool
	)
	cmd := &cobra.Command{
		Use:   "scan [<input file>...]",
		Short: "Scan input files or standard input and print captured values",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := UnwrapSettings(cmd.Context())
			set, e := CompileSet(settings, pattern, file)
			if e != nil {
				return e
			}

			sc := &scanJob{
				set:    set,
				out:    NewRecordWriter(settings.Output, cmd.OutOrStdout()),
				errOut: cmd.ErrOrStderr(),
			}
			scan := sc.scanLines
			if whole {
				scan = sc.scanWhole
			}

			if len(args) == 0 {
				e = scan(stdinName, cmd.InOrStdin())
			}
			for _, name := range args {
				if e != nil {
					break
				}
				var f *os.File
				f, e = os.Open(name)
				if e != nil {
					e = errors.Wrapf(e, "cannot open input")
					break
				}
				e = scan(name, f)
				f.Close()
			}
			if fe := sc.out.Flush(); e == nil {
				e = fe
			}
			if e != nil {
				return e
			}

			logrus.WithFields(logrus.Fields{
				"total":  sc.total,
				"failed": sc.failed,
			}).Info("scan finished")
			if sc.failed > 0 {
				return errNoMatch
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&pattern, "pattern", "p", "", "Pattern text.")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Pattern file: .yaml, .yml, .toml, .json, or pattern language source.")
	cmd.Flags().BoolVar(&whole, "whole", false, "Scan the whole input as a single text.")
	return cmd
}
