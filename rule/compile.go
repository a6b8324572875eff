package rule

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/ava12/quickscan"
	"github.com/ava12/quickscan/grammar"
	"github.com/ava12/quickscan/policy"
	"github.com/ava12/quickscan/scanner"
)

// Compile error codes:
const (
	UnknownScannerError = quickscan.CompileErrors + iota
	BadScannerError
	BadArgError
	BadBoundError
	UnknownContainerError
	MisplacedTermError
	EmptyRuleError
	UnknownTermError
	BadPolicyError
	BlankLiteralError
)

type compiler struct {
	reg   *scanner.Registry
	space policy.Space
	errs  error
}

type location struct {
	rule, where string
}

func (l location) String() string {
	if l.where == "" {
		return "rule " + l.rule
	}
	return "rule " + l.rule + ", " + l.where
}

func (l location) nested(format string, params ...any) location {
	where := fmt.Sprintf(format, params...)
	if l.where != "" {
		where = l.where + ", " + where
	}
	return location{l.rule, where}
}

func (c *compiler) fail(loc location, code int, msg string, params ...any) {
	msg = loc.String() + ": " + fmt.Sprintf(msg, params...)
	c.errs = multierr.Append(c.errs, quickscan.FormatError(code, msg))
}

// Compile builds a rule set returning captured values from grammar description.
// reg resolves scanner names, nil means scanner.DefaultRegistry().
//
// All problems found are reported together, use multierr.Errors to split the returned error
// into *quickscan.Error values.
func Compile(g *grammar.Grammar, reg *scanner.Registry) (*Set[*Captures], error) {
	if reg == nil {
		reg = scanner.DefaultRegistry()
	}
	c := &compiler{reg: reg, space: policy.Default.Space}
	res := NewSet[*Captures]().Named(g.Name)

	if g.Policy != (grammar.Policy{}) {
		p, e := policy.Parse(g.Policy.Compare, g.Policy.Space, g.Policy.Words)
		if e != nil {
			c.errs = multierr.Append(c.errs, quickscan.FormatError(BadPolicyError, "%s", e.Error()))
		} else {
			res.WithPolicy(p)
			c.space = p.Normalize().Space
		}
	}

	for i, gr := range g.Rules {
		loc := location{rule: fmt.Sprintf("#%d", i+1)}
		if gr.Label != "" {
			loc.rule += " (" + gr.Label + ")"
		}
		r := c.rule(gr, loc)
		if r != nil {
			res.Add(r.Labeled(gr.Label))
		}
	}

	if c.errs != nil {
		return nil, c.errs
	}
	return res, nil
}

func (c *compiler) rule(gr grammar.Rule, loc location) *Rule[*Captures] {
	if len(gr.Terms) == 0 {
		c.fail(loc, EmptyRuleError, "no terms")
		return nil
	}

	placed := true
	for i, t := range gr.Terms[:len(gr.Terms)-1] {
		if isTerminalType(t.Type) {
			c.fail(loc.nested("term #%d", i+1), MisplacedTermError, "%s must be the last term of a rule", t.Type)
			placed = false
		}
	}

	p, ok := c.terms(gr.Terms, loc)
	if !ok || !placed {
		return nil
	}
	return Record(p)
}

func isTerminalType(tt grammar.TermType) bool {
	return tt == grammar.TailTerm || tt == grammar.AnchorTerm
}

func (c *compiler) terms(gts []grammar.Term, loc location) (Pattern, bool) {
	ok := true
	res := make(Pattern, 0, len(gts))
	for i, gt := range gts {
		t := c.term(gt, loc.nested("term #%d", i+1))
		if t == nil {
			ok = false
		} else {
			res = append(res, t)
		}
	}
	return res, ok
}

func (c *compiler) term(gt grammar.Term, loc location) Term {
	switch gt.Type {
	case grammar.LiteralTerm:
		if gt.Text != "" && c.space.SkipLeading(gt.Text) == len(gt.Text) {
			c.fail(loc, BlankLiteralError, "literal %q has no words to match under %v whitespace policy", gt.Text, c.space)
			return nil
		}
		return Lit(gt.Text)

	case grammar.CaptureTerm:
		ref := gt.Scanner
		if ref == nil {
			ref = grammar.Scanner(grammar.DefaultScanner)
		}
		sc := c.buildScanner(ref, loc)
		if sc == nil {
			return nil
		}
		return LetDesc(gt.Name, ref.String(), sc)

	case grammar.RepeatTerm:
		return c.repeat(gt, loc)

	case grammar.TailTerm:
		return Tail(gt.Name)

	case grammar.AnchorTerm:
		return Anchor(gt.Name)

	default:
		c.fail(loc, UnknownTermError, "unknown term type %q", gt.Type)
		return nil
	}
}

func (c *compiler) buildScanner(ref *grammar.ScannerRef, loc location) scanner.Scanner[any] {
	if !c.reg.Has(ref.Name) {
		c.fail(loc, UnknownScannerError, "unknown scanner %q", ref.Name)
		return nil
	}

	ok := true
	args := make([]scanner.Arg, len(ref.Args))
	for i, ga := range ref.Args {
		arg, valid := c.arg(ga, loc.nested("%s argument #%d", ref.Name, i+1))
		args[i] = arg
		ok = ok && valid
	}
	if !ok {
		return nil
	}

	sc, e := c.reg.Build(ref.Name, args)
	if e != nil {
		c.fail(loc, BadScannerError, "%s", e.Error())
		return nil
	}
	return sc
}

func (c *compiler) arg(ga grammar.Arg, loc location) (scanner.Arg, bool) {
	n := 0
	if ga.Int != nil {
		n++
	}
	if ga.Str != nil {
		n++
	}
	if ga.Scanner != nil {
		n++
	}
	if n != 1 {
		c.fail(loc, BadArgError, "exactly one of int, str, or scanner must be set, got %d", n)
		return scanner.Arg{}, false
	}

	switch {
	case ga.Int != nil:
		return scanner.Arg{Kind: scanner.IntArg, Int: *ga.Int}, true
	case ga.Str != nil:
		return scanner.Arg{Kind: scanner.StringArg, Str: *ga.Str}, true
	default:
		sc := c.buildScanner(ga.Scanner, loc)
		return scanner.Arg{Kind: scanner.ScannerArg, Scanner: sc}, sc != nil
	}
}

func (c *compiler) repeat(gt grammar.Term, loc location) Term {
	ok := true
	b := Bound{Min: gt.Min, Max: Unbounded}
	if gt.Max != nil {
		b.Max = *gt.Max
	}
	if !b.Valid() || (gt.Max != nil && *gt.Max < 0) {
		c.fail(loc, BadBoundError, "invalid repetition bound %s", grammar.FormatBound(gt.Min, gt.Max))
		ok = false
	}

	if len(gt.Inner) == 0 {
		c.fail(loc, EmptyRuleError, "empty repetition")
		ok = false
	}
	ok = c.checkInner(gt.Inner, loc, "repetition") && ok
	ok = c.checkInner(gt.Sep, loc, "separator") && ok

	nc, valid := c.container(gt, loc)
	ok = ok && valid

	inner, valid := c.terms(gt.Inner, loc.nested("repetition"))
	ok = ok && valid
	sep, valid := c.terms(gt.Sep, loc.nested("separator"))
	ok = ok && valid
	if !ok {
		return nil
	}

	res := Repeat(b, inner...)
	if len(sep) > 0 {
		res.SepBy(sep...)
	}
	if nc != nil {
		res.Collect(nc)
	}
	return res
}

func (c *compiler) checkInner(gts []grammar.Term, loc location, where string) bool {
	ok := true
	for _, gt := range gts {
		if isTerminalType(gt.Type) {
			c.fail(loc, MisplacedTermError, "%s is not allowed in %s", gt.Type, where)
			ok = false
		}
	}
	return ok
}

func (c *compiler) container(gt grammar.Term, loc location) (NewContainer, bool) {
	switch gt.Container {
	case "":
		return nil, true
	case grammar.ListContainer:
		return SliceOf, true
	case grammar.SetContainer:
		return SetOf[any](), true
	case grammar.MapContainer:
		return MapOf[any, any](), true
	case grammar.SortedContainer:
		return SortedMapOf[string, any](), true
	case grammar.JoinContainer:
		sep := gt.Text
		if sep == "" {
			sep = " "
		}
		return Join(sep), true
	case grammar.CountContainer:
		return Count, true
	default:
		c.fail(loc, UnknownContainerError, "unknown container %q", gt.Container)
		return nil, false
	}
}
