package scanner

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ava12/quickscan"
)

type okSample[T any] struct {
	text     string
	expected T
	n        int
}

func checkOk[T any](t *testing.T, sc Scanner[T], samples []okSample[T]) {
	t.Helper()
	for _, s := range samples {
		v, n, e := sc.Scan(s.text)
		require.NoError(t, e, "input %q", s.text)
		assert.Equal(t, s.expected, v, "input %q", s.text)
		assert.Equal(t, s.n, n, "input %q", s.text)
		assert.LessOrEqual(t, n, len(s.text))
	}
}

func checkKind[T any](t *testing.T, sc Scanner[T], kind quickscan.ErrorKind, texts ...string) {
	t.Helper()
	for _, text := range texts {
		_, _, e := sc.Scan(text)
		var se *quickscan.ScanError
		require.True(t, errors.As(e, &se), "input %q: expecting scan error, got %v", text, e)
		assert.Equal(t, kind, se.Kind, "input %q", text)
	}
}

func TestInt(t *testing.T) {
	checkOk(t, Int[int32](), []okSample[int32]{
		{"0", 0, 1},
		{"42 x", 42, 2},
		{"-312", -312, 4},
		{"+7", 7, 2},
		{"1_234", 1, 1},
		{"0123", 123, 4},
	})
	checkKind(t, Int[int32](), quickscan.Syntax, "", "-", "+", "x", " 1", "_1")
	checkKind(t, Int[int8](), quickscan.Other, "128", "-129")
	checkOk(t, Int[int8](), []okSample[int8]{{"-128", -128, 4}})

	checkOk(t, Int[uint16](), []okSample[uint16]{{"65535", 65535, 5}})
	checkKind(t, Int[uint16](), quickscan.Syntax, "-1")
	checkKind(t, Int[uint16](), quickscan.Other, "65536")
}

func TestRadix(t *testing.T) {
	checkOk(t, Hex[uint32](), []okSample[uint32]{
		{"BadCafé", 0xbadcaf, 6},
		{"ff", 0xff, 2},
	})
	checkOk(t, Octal[int](), []okSample[int]{{"5678", 0o567, 3}})
	checkOk(t, Binary[uint8](), []okSample[uint8]{{"1012", 5, 3}})
	checkKind(t, Hex[int](), quickscan.Syntax, "", "xyz", "-1")
	checkKind(t, Hex[int8](), quickscan.Other, "ff")
}

func TestFloat(t *testing.T) {
	checkOk(t, FloatOf[float64](), []okSample[float64]{
		{"0", 0, 1},
		{"1.5e3x", 1500, 5},
		{"-.25", -0.25, 4},
		{"3.", 3, 2},
		{"1e+21", 1e21, 5},
		{"5e-324", 5e-324, 6},
	})
	checkKind(t, FloatOf[float64](), quickscan.Syntax, "", "-", "+", "x", " 0", ".")

	v, n, e := FloatOf[float64]().Scan("-inf")
	require.NoError(t, e)
	assert.Equal(t, 4, n)
	assert.True(t, math.IsInf(v, -1))

	v, n, e = FloatOf[float64]().Scan("NaN")
	require.NoError(t, e)
	assert.Equal(t, 3, n)
	assert.True(t, math.IsNaN(v))

	f32, _, e := FloatOf[float32]().Scan("0.1")
	require.NoError(t, e)
	assert.Equal(t, float32(0.1), f32)
}

func TestBoolRune(t *testing.T) {
	checkOk(t, Bool, []okSample[bool]{{"true", true, 4}, {"false!", false, 5}})
	checkKind(t, Bool, quickscan.Syntax, "", "y", "yes", " true", "True", "falsey")

	checkOk(t, Rune, []okSample[rune]{{"\u00e9!", '\u00e9', 2}, {" ", ' ', 1}})
	checkKind(t, Rune, quickscan.Syntax, "")
}

func TestWords(t *testing.T) {
	checkOk(t, Word, []okSample[string]{
		{"hello, world", "hello", 5},
		{"a_b2 c", "a_b2", 4},
		{"\u00fcn\u00efc\u00f6d\u00e9-x", "\u00fcn\u00efc\u00f6d\u00e9", 11},
	})
	checkKind(t, Word, quickscan.Syntax, "", " x", "-x")

	checkOk(t, Wordish, []okSample[string]{
		{"hello, world", "hello", 5},
		{", world", ",", 1},
	})
	checkKind(t, Wordish, quickscan.Syntax, "", " x")

	checkOk(t, Ident, []okSample[string]{
		{"_x1 = 2", "_x1", 3},
		{"caf\u00e9()", "caf\u00e9", 5},
	})
	checkKind(t, Ident, quickscan.Syntax, "1x", "", "-")

	checkOk(t, NonSpace, []okSample[string]{
		{"abc def", "abc", 3},
		{"abc\u00a0def", "abc", 3},
		{"abc\u200bdef", "abc\u200bdef", 9},
		{"abc\u3000def", "abc", 3},
	})

	checkOk(t, Number, []okSample[string]{
		{"0123456789x", "0123456789", 10},
		{"\U000104a9\uff10\ua620\u19d1 x", "\U000104a9\uff10\ua620\u19d1", 13},
	})
	checkKind(t, Number, quickscan.Syntax, "x1", "")
}

func TestLines(t *testing.T) {
	checkOk(t, Line, []okSample[string]{
		{"", "", 0},
		{"abc", "abc", 3},
		{"abc\ndef", "abc", 4},
		{"abc\r\ndef", "abc", 5},
		{"abc\rdef", "abc", 4},
		{"\n", "", 1},
	})

	checkOk(t, Space, []okSample[string]{{" \t\nx", " \t\n", 3}})
	checkKind(t, Space, quickscan.Syntax, "x", "")
	checkOk(t, HorSpace, []okSample[string]{{" \t\nx", " \t", 2}})
	checkOk(t, Newline, []okSample[string]{{"\r\n\n", "\r\n", 2}, {"\n\r", "\n", 1}})
	checkKind(t, Newline, quickscan.Syntax, " \n")

	assert.False(t, StripsLeading(Space))
	assert.False(t, StripsLeading(Newline))
	assert.True(t, StripsLeading(Line))
	assert.True(t, StripsLeading(Erase(Word)))
	assert.False(t, StripsLeading(Erase(HorSpace)))

	checkOk(t, Everything, []okSample[string]{{"", "", 0}, {"a b ", "a b ", 4}})
}

func TestQuotedString(t *testing.T) {
	checkOk(t, QuotedString, []okSample[string]{
		{`"dummy" xyz`, "dummy", 7},
		{`"ab\"cd" xyz`, `ab"cd`, 8},
		{`"ab\x41cd" xyz`, "abAcd", 10},
		{`"\u00e9\n"`, "\u00e9\n", 10},
		{"`raw\\n`", `raw\n`, 7},
	})
	checkKind(t, QuotedString, quickscan.Syntax, "", "dummy xyz", "'dummy' xyz", `"unterminated`, `"bad \q"`)
}
