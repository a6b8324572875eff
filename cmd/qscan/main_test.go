package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	out, err string
	code     int
}

func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := CmdQscan()
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	e := cmd.ExecuteContext(context.Background())
	return result{out.String(), errOut.String(), ExitCode(e)}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o666))
	return path
}

const kvPattern = `let k: word, ":", let v: int`

func TestScanLines(t *testing.T) {
	res := run(t, "a: 1\nb: 2\n", "scan", "-p", kvPattern, "-o", "json")
	assert.Equal(t, 0, res.code, res.err)
	assert.Equal(t, "{\"k\":\"a\",\"v\":1}\n{\"k\":\"b\",\"v\":2}\n", res.out)

	res = run(t, "a: 1\n", "scan", "-p", kvPattern)
	assert.Equal(t, 0, res.code, res.err)
	assert.Equal(t, "k=a v=1\n", res.out)

	res = run(t, "a: 1\n", "scan", "-p", kvPattern, "-o", "yaml")
	assert.Equal(t, 0, res.code, res.err)
	assert.Equal(t, "k: a\nv: 1\n", res.out)
}

func TestScanToml(t *testing.T) {
	res := run(t, "a: 1\nb: 2\n", "scan", "-p", kvPattern, "-o", "toml")
	require.Equal(t, 0, res.code, res.err)

	var doc struct {
		Records []struct {
			K string `toml:"k"`
			V int    `toml:"v"`
		} `toml:"records"`
	}
	require.NoError(t, toml.Unmarshal([]byte(res.out), &doc))
	require.Len(t, doc.Records, 2)
	assert.Equal(t, "a", doc.Records[0].K)
	assert.Equal(t, 2, doc.Records[1].V)
}

func TestScanFailure(t *testing.T) {
	res := run(t, "a: 1\nb x\nc: 3\n", "scan", "-p", kvPattern)
	assert.Equal(t, 1, res.code)
	assert.Equal(t, "k=a v=1\nk=c v=3\n", res.out)
	assert.Contains(t, res.err, "stdin:2:")
	assert.Contains(t, res.err, "did not match literal")
	assert.Contains(t, res.err, "b x\n")
	assert.Contains(t, res.err, "^")
}

func TestScanWhole(t *testing.T) {
	res := run(t, "1 2\n3\n", "scan", "--whole", "-p", "[let n: int]+", "-o", "json")
	assert.Equal(t, 0, res.code, res.err)
	assert.Equal(t, "{\"n\":[1,2,3]}\n", res.out)

	res = run(t, "1 2\nx\n", "scan", "--whole", "-p", "[let n: int]+")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.err, "stdin:2:1: ")
}

func TestScanFiles(t *testing.T) {
	input := writeFile(t, "input.txt", "x: 5\n")
	res := run(t, "", "scan", "-p", kvPattern, input)
	assert.Equal(t, 0, res.code, res.err)
	assert.Equal(t, "k=x v=5\n", res.out)

	res = run(t, "", "scan", "-p", kvPattern, filepath.Join(t.TempDir(), "missing.txt"))
	assert.Equal(t, 2, res.code)
}

func TestScanPatternFile(t *testing.T) {
	pat := writeFile(t, "kv.yaml", `
name: kv
rules:
  - terms:
      - {type: capture, name: k, scanner: {name: word}}
      - {type: literal, text: "="}
      - {type: capture, name: v, scanner: {name: int}}
`)
	res := run(t, "size = 10\n", "scan", "-f", pat)
	assert.Equal(t, 0, res.code, res.err)
	assert.Equal(t, "k=size v=10\n", res.out)
}

func TestScanPolicy(t *testing.T) {
	pattern := `"Hello", let x: int`
	res := run(t, "hello 5\n", "scan", "-p", pattern)
	assert.Equal(t, 1, res.code)

	res = run(t, "hello 5\n", "scan", "--compare", "ignore-case", "-p", pattern)
	assert.Equal(t, 0, res.code, res.err)
	assert.Equal(t, "x=5\n", res.out)

	res = run(t, "hello 5\n", "scan", "--compare", "nope", "-p", pattern)
	assert.Equal(t, 2, res.code)
}

func TestUsageErrors(t *testing.T) {
	assert.Equal(t, 2, run(t, "", "scan").code)
	assert.Equal(t, 2, run(t, "", "scan", "-p", "let").code)
	assert.Equal(t, 2, run(t, "", "scan", "-p", "let x: nope").code)
	assert.Equal(t, 2, run(t, "a b", "scan", "-p", `"a", " ", "b"`).code)
	assert.Equal(t, 2, run(t, "", "scan", "-p", kvPattern, "-f", "x.qs").code)
	assert.Equal(t, 2, run(t, "", "scan", "-p", kvPattern, "-o", "xml").code)
	assert.Equal(t, 2, run(t, "", "check").code)
	assert.Equal(t, 2, run(t, "", "bogus").code)
}

func TestConfig(t *testing.T) {
	config := writeFile(t, "qscan.yaml", "output: json\ncompare: ignore-case\n")
	res := run(t, "A: 1\n", "scan", "--config", config, "-p", `"a", ":", let v: int`)
	assert.Equal(t, 0, res.code, res.err)
	assert.Equal(t, "{\"v\":1}\n", res.out)

	res = run(t, "a: 1\n", "scan", "--config", config, "-o", "text", "-p", kvPattern)
	assert.Equal(t, "k=a v=1\n", res.out)

	t.Setenv("QSCAN_OUTPUT", "yaml")
	res = run(t, "a: 1\n", "scan", "-p", kvPattern)
	assert.Equal(t, "k: a\nv: 1\n", res.out)

	res = run(t, "a: 1\n", "scan", "--config", filepath.Join(t.TempDir(), "none.yaml"), "-p", kvPattern)
	assert.Equal(t, 2, res.code)
}

func TestCheck(t *testing.T) {
	good := writeFile(t, "good.qs", `@kv let k: word, ":", let v: int; [let n: int],+: list`)
	res := run(t, "", "check", good)
	assert.Equal(t, 0, res.code, res.err)
	assert.Equal(t, "@kv let k: word, \":\", let v: int;\n[let n: int],+: list\n", res.out)

	res = run(t, "", "check", "-o", "json", good)
	assert.Equal(t, 0, res.code, res.err)
	assert.Contains(t, res.out, `"label": "kv"`)

	unknown := writeFile(t, "unknown.qs", `let x: nope; let y: re("(")`)
	broken := writeFile(t, "broken.qs", `let`)
	res = run(t, "", "check", good, unknown, broken)
	assert.Equal(t, 2, res.code)
	lines := strings.Split(strings.TrimSpace(res.err), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], unknown+": rule #1"), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], unknown+": rule #2"), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], broken+": "), lines[2])
}

func TestCheckGo(t *testing.T) {
	pat := writeFile(t, "kv.qs", `let k: word, [":", let v: max(3, int)]?`)
	out := filepath.Join(filepath.Dir(pat), "kv_grammar.go")
	res := run(t, "", "check", "--go", "--package", "patterns", "--out", out, pat)
	require.Equal(t, 0, res.code, res.err)

	src, e := os.ReadFile(out)
	require.NoError(t, e)
	text := string(src)
	assert.Contains(t, text, "package patterns\n")
	assert.Contains(t, text, "var kv_grammar = &grammar.Grammar{\n")
	assert.Contains(t, text, `grammar.Capture("k", grammar.Scanner("word")),`)
	assert.Contains(t, text, `grammar.Repeat(0, 1, grammar.Lit(":"), grammar.Capture("v", grammar.Scanner("max", grammar.IntArg(3), grammar.ScannerArg(grammar.Scanner("int"))))),`)

	res = run(t, "", "check", "--go", "--out", out, pat, pat)
	assert.Equal(t, 2, res.code)
}
