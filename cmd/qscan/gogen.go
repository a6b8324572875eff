package main

import (
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/ava12/quickscan/grammar"
)

var identRe = regexp.MustCompile("^[A-Za-z_][A-Za-z_0-9]*$")

// GoOptions control Go source generation, empty names are derived from the output file name.
type GoOptions struct {
	OutFile, Package, Var string
}

func (o GoOptions) names() (string, string, error) {
	pkg, name := o.Package, o.Var
	if pkg == "" {
		dir, e := filepath.Abs(o.OutFile)
		if e != nil {
			return "", "", e
		}
		pkg = filepath.Base(filepath.Dir(dir))
	}
	if name == "" {
		base := filepath.Base(o.OutFile)
		name = strings.TrimSuffix(base, filepath.Ext(base))
		if !identRe.MatchString(name) {
			name = "Grammar"
		}
	}

	if !identRe.MatchString(pkg) {
		return "", "", errors.Errorf("invalid package name: %s", pkg)
	}
	if !identRe.MatchString(name) {
		return "", "", errors.Errorf("invalid variable name: %s", name)
	}
	return pkg, name, nil
}

// MakeGo generates Go source declaring a *grammar.Grammar variable.
func MakeGo(g *grammar.Grammar, o GoOptions) ([]byte, error) {
	pkg, name, e := o.names()
	if e != nil {
		return nil, e
	}

	var buffer bytes.Buffer
	buffer.WriteString("// Code generated with qscan.\n\n" +
		"package " + pkg + "\n\n" +
		"import \"github.com/ava12/quickscan/grammar\"\n\n" +
		"var " + name + " = &grammar.Grammar{\n")

	if g.Name != "" {
		buffer.WriteString(fmt.Sprintf("\tName: %q,\n", g.Name))
	}
	if g.Policy != (grammar.Policy{}) {
		buffer.WriteString(fmt.Sprintf("\tPolicy: grammar.Policy{Compare: %q, Space: %q, Words: %q},\n",
			g.Policy.Compare, g.Policy.Space, g.Policy.Words))
	}

	buffer.WriteString("\tRules: []grammar.Rule{\n")
	for _, r := range g.Rules {
		buffer.WriteString("\t\t{")
		if r.Label != "" {
			buffer.WriteString(fmt.Sprintf("Label: %q, ", r.Label))
		}
		buffer.WriteString("Terms: []grammar.Term{\n")
		for _, t := range r.Terms {
			buffer.WriteString("\t\t\t" + goTerm(t) + ",\n")
		}
		buffer.WriteString("\t\t}},\n")
	}
	buffer.WriteString("\t},\n}\n")
	return buffer.Bytes(), nil
}

func goTerms(ts []grammar.Term) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = goTerm(t)
	}
	return strings.Join(parts, ", ")
}

func goTerm(t grammar.Term) string {
	switch t.Type {
	case grammar.LiteralTerm:
		return "grammar.Lit(" + strconv.Quote(t.Text) + ")"
	case grammar.CaptureTerm:
		return "grammar.Capture(" + strconv.Quote(t.Name) + ", " + goScanner(t.Scanner) + ")"
	case grammar.TailTerm:
		return "grammar.Tail(" + strconv.Quote(t.Name) + ")"
	case grammar.AnchorTerm:
		return "grammar.Anchor(" + strconv.Quote(t.Name) + ")"
	case grammar.RepeatTerm:
		hi := -1
		if t.Max != nil {
			hi = *t.Max
		}
		res := fmt.Sprintf("grammar.Repeat(%d, %d", t.Min, hi)
		if len(t.Inner) > 0 {
			res += ", " + goTerms(t.Inner)
		}
		res += ")"
		if len(t.Sep) > 0 {
			res += ".SepBy(" + goTerms(t.Sep) + ")"
		}
		if t.Container != "" || t.Text != "" {
			res += ".Collect(" + strconv.Quote(t.Container) + ", " + strconv.Quote(t.Text) + ")"
		}
		return res
	default:
		return fmt.Sprintf("grammar.Term{Type: %q, Text: %q, Name: %q}", t.Type, t.Text, t.Name)
	}
}

func goScanner(sr *grammar.ScannerRef) string {
	if sr == nil {
		return "nil"
	}

	res := "grammar.Scanner(" + strconv.Quote(sr.Name)
	for _, a := range sr.Args {
		switch {
		case a.Int != nil:
			res += fmt.Sprintf(", grammar.IntArg(%d)", *a.Int)
		case a.Str != nil:
			res += ", grammar.StrArg(" + strconv.Quote(*a.Str) + ")"
		default:
			res += ", grammar.ScannerArg(" + goScanner(a.Scanner) + ")"
		}
	}
	return res + ")"
}
