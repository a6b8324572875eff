package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.True(t, r.Has("i32"))
	assert.False(t, r.Has("i128"))
	assert.Contains(t, r.Names(), "bytesize")

	sc, e := r.Build("i32", nil)
	require.NoError(t, e)
	v, n, e := sc.Scan("-5 x")
	require.NoError(t, e)
	assert.Equal(t, int32(-5), v)
	assert.Equal(t, 2, n)

	inner, e := r.Build("hex", nil)
	require.NoError(t, e)
	sc, e = r.Build("max", []Arg{{Kind: IntArg, Int: 2}, {Kind: ScannerArg, Scanner: inner}})
	require.NoError(t, e)
	v, n, e = sc.Scan("fff")
	require.NoError(t, e)
	assert.Equal(t, int64(0xff), v)
	assert.Equal(t, 2, n)

	sc, e = r.Build("re", []Arg{{Kind: StringArg, Str: `#(\w+)`}})
	require.NoError(t, e)
	v, _, e = sc.Scan("#tag rest")
	require.NoError(t, e)
	assert.Equal(t, "tag", v)

	word, _ := r.Build("word", nil)
	sc, e = r.Build("kv", []Arg{{Kind: ScannerArg, Scanner: word}, {Kind: ScannerArg, Scanner: inner}})
	require.NoError(t, e)
	v, _, e = sc.Scan("mask: 1f")
	require.NoError(t, e)
	assert.Equal(t, Pair[any, any]{"mask", int64(0x1f)}, v)

	_, e = r.Build("nope", nil)
	assert.ErrorContains(t, e, `unknown scanner "nope"`)
	_, e = r.Build("i32", []Arg{{Kind: IntArg}})
	assert.ErrorContains(t, e, "scanner i32: expecting no arguments, got 1")
	_, e = r.Build("exact", []Arg{{Kind: StringArg}, {Kind: ScannerArg, Scanner: inner}})
	assert.ErrorContains(t, e, "argument #1 must be integer, got string")
	_, e = r.Build("re", []Arg{{Kind: StringArg, Str: "("}})
	assert.Error(t, e)
}

func TestConsumedPrefix(t *testing.T) {
	r := DefaultRegistry()
	var scanners []Scanner[any]
	var names []string
	for _, name := range r.Names() {
		if sc, e := r.Build(name, nil); e == nil {
			scanners = append(scanners, sc)
			names = append(names, name)
		}
	}
	require.NotEmpty(t, scanners)

	alphabet := []rune("0123456789abcdefxXoO.-+:_ \t\n\"[](),\u00e9\u3000")
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.StringOf(rapid.SampledFrom(alphabet)).Draw(t, "text")
		for i, sc := range scanners {
			_, n, e := sc.Scan(text)
			if e == nil && (n < 0 || n > len(text)) {
				t.Fatalf("scanner %s consumed %d bytes of %q", names[i], n, text)
			}
		}
	})
}
