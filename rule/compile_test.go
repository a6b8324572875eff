package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/btree"
	"go.uber.org/multierr"

	"github.com/ava12/quickscan"
	"github.com/ava12/quickscan/grammar"
	"github.com/ava12/quickscan/internal/test"
	"github.com/ava12/quickscan/langdef"
	"github.com/ava12/quickscan/scanner"
)

func compile(t *testing.T, pattern string) *Set[*Captures] {
	t.Helper()
	g, e := langdef.ParseString("test", pattern)
	require.NoError(t, e)
	s, e := Compile(g, nil)
	require.NoError(t, e)
	return s
}

func TestCompile(t *testing.T) {
	s := compile(t, `@pair let key: word, ":", let val: int; let n: int, ..rest`)
	assert.Equal(t, "test", s.Name())
	require.Len(t, s.Rules(), 2)
	assert.Equal(t, "pair", s.Rules()[0].Label())
	assert.Equal(t, "", s.Rules()[1].Label())

	caps, e := s.Scan("a: 5")
	require.NoError(t, e)
	assert.Equal(t, "a", MustGet[string](caps, "key"))
	assert.Equal(t, 5, MustGet[int](caps, "val"))

	caps, e = s.Scan("7 more")
	require.NoError(t, e)
	assert.Equal(t, 7, MustGet[int](caps, "n"))
	assert.Equal(t, " more", MustGet[string](caps, "rest"))

	_, e = s.Scan("a: b")
	test.ExpectScanError(t, quickscan.Syntax, 3, e)
}

func TestCompileDefaultScanner(t *testing.T) {
	s := compile(t, `"name", let x`)
	caps, e := s.Scan("name hello")
	require.NoError(t, e)
	assert.Equal(t, "hello", MustGet[string](caps, "x"))

	_, e = s.Scan("name hello world")
	test.ExpectScanError(t, quickscan.ExpectedEnd, 11, e)
}

func TestCompileContainers(t *testing.T) {
	caps, e := compile(t, `[let n: int],*: list`).Scan("1, 2")
	require.NoError(t, e)
	assert.Equal(t, []any{1, 2}, MustGet[[]any](caps, "n"))

	caps, e = compile(t, `[let n: int],*`).Scan("3")
	require.NoError(t, e)
	assert.Equal(t, []any{3}, MustGet[[]any](caps, "n"))

	caps, e = compile(t, `[let w: word]*: set`).Scan("a b a")
	require.NoError(t, e)
	assert.Equal(t, map[any]struct{}{"a": {}, "b": {}}, MustGet[map[any]struct{}](caps, "w"))

	caps, e = compile(t, `[let kv: kv(word, int)] (";") *: map`).Scan("b: 2; a: 1; b: 3")
	require.NoError(t, e)
	assert.Equal(t, map[any]any{"a": 1, "b": 3}, MustGet[map[any]any](caps, "kv"))

	caps, e = compile(t, `[let kv: kv(int, word)],+: sorted`).Scan("2: b, 1: a")
	require.NoError(t, e)
	m := MustGet[*btree.Map[string, any]](caps, "kv")
	assert.Equal(t, []string{"1", "2"}, m.Keys())
	assert.Equal(t, []any{"a", "b"}, m.Values())

	caps, e = compile(t, `[let w: word]+: join("-")`).Scan("a b c")
	require.NoError(t, e)
	assert.Equal(t, "a-b-c", MustGet[string](caps, "w"))

	caps, e = compile(t, `[let w: word]+: join`).Scan("a b")
	require.NoError(t, e)
	assert.Equal(t, "a b", MustGet[string](caps, "w"))

	caps, e = compile(t, `[let w: word]*: count`).Scan("a b c")
	require.NoError(t, e)
	assert.Equal(t, 3, MustGet[int](caps, "w"))

	_, e = compile(t, `[let x: list(int)]*: set`).Scan("[1] [2]")
	test.ExpectScanError(t, quickscan.Other, 3, e)
}

func TestCompileScannerArgs(t *testing.T) {
	s := compile(t, `let id: exact(3, hex), let rest: upto(";", everything), ";"`)
	caps, e := s.Scan("0ff tail ;")
	require.NoError(t, e)
	assert.Equal(t, int64(255), MustGet[int64](caps, "id"))

	desc := s.Rules()[0].Pattern()[0].String()
	assert.Contains(t, desc, "exact(3, hex)")
}

func TestCompilePolicy(t *testing.T) {
	g, e := langdef.ParseString("", `"Hello", let x: int`)
	require.NoError(t, e)
	s, e := Compile(g, nil)
	require.NoError(t, e)
	_, has := s.Policy()
	assert.False(t, has)
	_, e = s.Scan("hello 1")
	test.ExpectScanError(t, quickscan.LiteralMismatch, 0, e)

	g.Policy.Compare = "ignore-case"
	s, e = Compile(g, nil)
	require.NoError(t, e)
	_, has = s.Policy()
	assert.True(t, has)
	caps, e := s.Scan("hello 1")
	require.NoError(t, e)
	assert.Equal(t, 1, MustGet[int](caps, "x"))
}

func TestCompileBlankLiteral(t *testing.T) {
	g, e := langdef.ParseString("", `"a", " ", "b"`)
	require.NoError(t, e)
	_, e = Compile(g, nil)
	test.ExpectErrorCode(t, BlankLiteralError, e)
	assert.ErrorContains(t, e, `rule #1, term #2: literal " " has no words to match`)

	g.Policy.Space = "exact"
	s, e := Compile(g, nil)
	require.NoError(t, e)
	_, e = s.Scan("a b")
	assert.NoError(t, e)
	_, e = s.Scan("a  b")
	test.ExpectScanError(t, quickscan.LiteralMismatch, 2, e)
}

func TestCompileRegistry(t *testing.T) {
	reg := scanner.NewRegistry()
	scanner.Register(reg, "yes", scanner.Bool)
	g := &grammar.Grammar{Rules: []grammar.Rule{{Terms: []grammar.Term{
		grammar.Capture("b", grammar.Scanner("yes")),
	}}}}

	s, e := Compile(g, reg)
	require.NoError(t, e)
	caps, e := s.Scan("true")
	require.NoError(t, e)
	assert.Equal(t, true, MustGet[bool](caps, "b"))

	g.Rules[0].Terms[0].Scanner = nil
	_, e = Compile(g, reg)
	test.ExpectErrorCode(t, UnknownScannerError, e)
}

func rules(terms ...grammar.Term) *grammar.Grammar {
	return &grammar.Grammar{Rules: []grammar.Rule{{Terms: terms}}}
}

func TestCompileErrors(t *testing.T) {
	lit := grammar.Lit("x")
	bad := grammar.Repeat(0, -1, lit)
	bad.Container = "bag"

	samples := []struct {
		code int
		g    *grammar.Grammar
	}{
		{UnknownScannerError, rules(grammar.Capture("x", grammar.Scanner("nope")))},
		{UnknownScannerError, rules(grammar.Capture("x", grammar.Scanner("max", grammar.IntArg(3), grammar.ScannerArg(grammar.Scanner("nope")))))},
		{BadScannerError, rules(grammar.Capture("x", grammar.Scanner("max", grammar.StrArg("3"))))},
		{BadScannerError, rules(grammar.Capture("x", grammar.Scanner("re", grammar.StrArg("("))))},
		{BadArgError, rules(grammar.Capture("x", &grammar.ScannerRef{Name: "max", Args: []grammar.Arg{{}}}))},
		{BadBoundError, rules(grammar.Repeat(3, 1, lit))},
		{BadBoundError, rules(grammar.Repeat(-1, 1, lit))},
		{UnknownContainerError, rules(bad)},
		{MisplacedTermError, rules(grammar.Tail("x"), lit)},
		{MisplacedTermError, rules(grammar.Repeat(0, 1, grammar.Anchor("x")))},
		{MisplacedTermError, rules(grammar.Term{Type: grammar.RepeatTerm, Inner: []grammar.Term{lit}, Sep: []grammar.Term{grammar.Tail("x")}})},
		{EmptyRuleError, rules()},
		{EmptyRuleError, rules(grammar.Repeat(0, 1))},
		{UnknownTermError, rules(grammar.Term{Type: "weird"})},
		{BadPolicyError, &grammar.Grammar{Policy: grammar.Policy{Compare: "nope"}, Rules: []grammar.Rule{{Terms: []grammar.Term{lit}}}}},
		{BlankLiteralError, rules(lit, grammar.Lit(" "), grammar.Lit("b"))},
		{BlankLiteralError, rules(grammar.Repeat(0, -1, lit).SepBy(grammar.Lit("\t\n")))},
		{BlankLiteralError, &grammar.Grammar{Policy: grammar.Policy{Space: "ignore-non-line"}, Rules: []grammar.Rule{{Terms: []grammar.Term{lit, grammar.Lit(" \t")}}}}},
	}

	for i, s := range samples {
		res, e := Compile(s.g, nil)
		assert.Nil(t, res, "sample #%d", i)
		test.ExpectErrorCode(t, s.code, e)
	}
}

func TestCompileErrorList(t *testing.T) {
	g := &grammar.Grammar{Rules: []grammar.Rule{
		{Label: "kv", Terms: []grammar.Term{grammar.Capture("x", grammar.Scanner("nope"))}},
		{Terms: []grammar.Term{grammar.Lit("ok")}},
		{Terms: []grammar.Term{grammar.Lit("a"), grammar.Repeat(2, 1, grammar.Tail("t"))}},
	}}

	_, e := Compile(g, nil)
	errs := multierr.Errors(e)
	require.Len(t, errs, 3)

	expected := []struct {
		code int
		msg  string
	}{
		{UnknownScannerError, `rule #1 (kv), term #1: unknown scanner "nope"`},
		{BadBoundError, `rule #3, term #2: invalid repetition bound {2,1}`},
		{MisplacedTermError, `rule #3, term #2: tail is not allowed in repetition`},
	}
	for i, exp := range expected {
		qe, is := errs[i].(*quickscan.Error)
		require.True(t, is, "error #%d is %T", i, errs[i])
		assert.Equal(t, exp.code, qe.Code)
		assert.Equal(t, exp.msg, qe.Message)
	}
}
