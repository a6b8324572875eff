package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ava12/quickscan/grammar"
	"github.com/ava12/quickscan/internal/test"
	"github.com/ava12/quickscan/langdef"
)

var kvSources = map[string]string{
	"kv.qs": `let k: word, "=", let v: int`,
	"kv.yaml": `
name: kv
rules:
  - terms:
      - {type: capture, name: k, scanner: {name: word}}
      - {type: literal, text: "="}
      - {type: capture, name: v, scanner: {name: int}}
`,
	"kv.toml": `
name = "kv"

[[rules]]
[[rules.terms]]
type = "capture"
name = "k"
scanner = {name = "word"}

[[rules.terms]]
type = "literal"
text = "="

[[rules.terms]]
type = "capture"
name = "v"
scanner = {name = "int"}
`,
	"kv.json": `{"name": "kv", "rules": [{"terms": [
		{"type": "capture", "name": "k", "scanner": {"name": "word"}},
		{"type": "literal", "text": "="},
		{"type": "capture", "name": "v", "scanner": {"name": "int"}}
	]}]}`,
}

func TestDecodeGrammar(t *testing.T) {
	expected := []grammar.Rule{{Terms: []grammar.Term{
		grammar.Capture("k", grammar.Scanner("word")),
		grammar.Lit("="),
		grammar.Capture("v", grammar.Scanner("int")),
	}}}

	for name, src := range kvSources {
		g, e := DecodeGrammar(name, []byte(src))
		require.NoError(t, e, name)
		assert.Equal(t, expected, g.Rules, name)
		if name == "kv.qs" {
			assert.Equal(t, "kv.qs", g.Name)
		} else {
			assert.Equal(t, "kv", g.Name, name)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	_, e := DecodeGrammar("x.yaml", []byte("rules:\n  - terms: []\n    extra: 1\n"))
	assert.ErrorContains(t, e, "cannot decode x.yaml")

	_, e = DecodeGrammar("x.json", []byte(`{"rules": [], "bogus": true}`))
	assert.ErrorContains(t, e, "cannot decode x.json")

	_, e = DecodeGrammar("x.toml", []byte("rules = 5\n"))
	assert.ErrorContains(t, e, "cannot decode x.toml")

	_, e = DecodeGrammar("x.qs", []byte(`let x: `))
	test.ExpectErrorCode(t, langdef.UnexpectedEofError, e)

	_, e = LoadGrammar("no/such/file.qs")
	assert.ErrorContains(t, e, "cannot read pattern file")
}

func TestMakeGo(t *testing.T) {
	g := &grammar.Grammar{
		Name:   "list",
		Policy: grammar.Policy{Space: "exact"},
		Rules: []grammar.Rule{
			{Label: "items", Terms: []grammar.Term{
				grammar.Repeat(1, -1, grammar.Capture("x", nil)).SepBy(grammar.Lit(";")).Collect(grammar.JoinContainer, "+"),
				grammar.Tail("rest"),
			}},
			{Terms: []grammar.Term{grammar.Capture("s", grammar.Scanner("upto", grammar.StrArg("\""), grammar.ScannerArg(grammar.Scanner("line"))))}},
		},
	}

	src, e := MakeGo(g, GoOptions{OutFile: "list.go", Package: "gen"})
	require.NoError(t, e)
	assert.Equal(t, `// Code generated with qscan.

package gen

import "github.com/ava12/quickscan/grammar"

var list = &grammar.Grammar{
	Name: "list",
	Policy: grammar.Policy{Compare: "", Space: "exact", Words: ""},
	Rules: []grammar.Rule{
		{Label: "items", Terms: []grammar.Term{
			grammar.Repeat(1, -1, grammar.Capture("x", nil)).SepBy(grammar.Lit(";")).Collect("join", "+"),
			grammar.Tail("rest"),
		}},
		{Terms: []grammar.Term{
			grammar.Capture("s", grammar.Scanner("upto", grammar.StrArg("\""), grammar.ScannerArg(grammar.Scanner("line")))),
		}},
	},
}
`, string(src))

	_, e = MakeGo(g, GoOptions{OutFile: "list.go", Package: "bad-name"})
	assert.ErrorContains(t, e, "invalid package name")

	_, e = MakeGo(g, GoOptions{OutFile: "list.go", Package: "gen", Var: "1x"})
	assert.ErrorContains(t, e, "invalid variable name")

	src, e = MakeGo(g, GoOptions{OutFile: "my-list.go", Package: "gen"})
	require.NoError(t, e)
	assert.Contains(t, string(src), "var Grammar = ")
}
