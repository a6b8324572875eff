package scanner

import (
	"errors"
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ava12/quickscan"
	"github.com/ava12/quickscan/cursor"
)

func TestWidthScanners(t *testing.T) {
	c := cursor.New("0123456789")
	a, c, e := Apply(c, ExactWidth(3, Int[int]()))
	require.NoError(t, e)
	b, c, e := Apply(c, MaxWidth(2, Hex[int]()))
	require.NoError(t, e)
	o, c, e := Apply(c, MinWidth(2, Octal[int]()))
	require.NoError(t, e)
	rest, c, e := Apply(c, Everything)
	require.NoError(t, e)

	assert.Equal(t, 12, a)
	assert.Equal(t, 0x34, b)
	assert.Equal(t, 0o567, o)
	assert.Equal(t, "89", rest)
	assert.True(t, c.IsEmpty())
}

func TestExactWidth(t *testing.T) {
	sc := ExactWidth(2, Word)
	checkOk(t, sc, []okSample[string]{{"ab", "ab", 2}, {"abc", "ab", 2}})
	checkKind(t, sc, quickscan.Syntax, "", "a", "a b", "a\u00e9")
	assert.False(t, StripsLeading(ExactWidth(2, Space)))
}

func TestMaxWidth(t *testing.T) {
	sc := MaxWidth(2, Word)
	checkOk(t, sc, []okSample[string]{
		{"a", "a", 1},
		{"ab", "ab", 2},
		{"abc", "ab", 2},
		{"a\u00e9", "a", 1},
	})
	checkKind(t, sc, quickscan.Syntax, "", " a")
}

func TestMinWidth(t *testing.T) {
	sc := MinWidth(2, Word)
	checkOk(t, sc, []okSample[string]{{"ab", "ab", 2}, {"abc", "abc", 3}})
	checkKind(t, sc, quickscan.Syntax, "", "a", "a b")
}

func TestRegexp(t *testing.T) {
	sc := RegexpString(regexp.MustCompile("[a-z][0-9]"))
	checkOk(t, sc, []okSample[string]{
		{"a0", "a0", 2},
		{"a0c", "a0", 2},
		{" a0", "a0", 3},
	})
	checkKind(t, sc, quickscan.Syntax, "", "a", "a 0")

	group := Regexp(regexp.MustCompile(`x=(\d+)`), Int[int]())
	checkOk(t, group, []okSample[int]{{"x=42;", 42, 4}})

	named := Regexp(regexp.MustCompile(`(\w)=(?P<scan>\d+)`), Int[int]())
	checkOk(t, named, []okSample[int]{{"y=7 z", 7, 3}})

	_, _, e := Regexp(regexp.MustCompile(`x=(\w+)`), Int[int]()).Scan("  x=abc")
	var se *quickscan.ScanError
	require.True(t, errors.As(e, &se))
	assert.Equal(t, 4, se.Offset)
}

func TestUpTo(t *testing.T) {
	sc := UpTo(";", Everything)
	checkOk(t, sc, []okSample[string]{{"ab;cd", "ab", 2}, {"abcd", "abcd", 4}})
}

func TestMap(t *testing.T) {
	sc := Map(Word, func(s string) (int, error) {
		return strconv.Atoi(s)
	})
	checkOk(t, sc, []okSample[int]{{"12 x", 12, 2}})
	checkKind(t, sc, quickscan.Other, "x12")
	checkKind(t, sc, quickscan.Syntax, "-")
}
