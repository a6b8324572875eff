package scanner

import (
	"strconv"
	"unicode"

	"github.com/ava12/quickscan/policy"
)

func runScanner(desc string, runLen func(string) int) Scanner[string] {
	return Func[string](func(s string) (string, int, error) {
		n := runLen(s)
		if n == 0 {
			return "", 0, syntax(desc)
		}
		return s[:n], n, nil
	})
}

var (
	// Word scans a maximal run of letters, digits, marks, and connector punctuation.
	Word = runScanner("expected a word", policy.WordLen)

	// Wordish scans a word (see Word) or a single non-space rune.
	Wordish = runScanner("expected a word, number or some other non-space character", policy.Wordish.NextWord)

	// NonSpace scans a maximal run of non-whitespace runes.
	NonSpace = runScanner("expected at least one non-space character", policy.NonSpaceLen)

	// Number scans a maximal run of decimal digits of any script.
	Number = runScanner("expected a number", func(s string) int {
		for i, r := range s {
			if !unicode.IsDigit(r) {
				return i
			}
		}
		return len(s)
	})

	// Ident scans an identifier: a letter or underscore followed by letters, digits, marks, and underscores.
	Ident = runScanner("expected identifier", func(s string) int {
		for i, r := range s {
			if i == 0 && !(r == '_' || unicode.IsLetter(r) || unicode.Is(unicode.Nl, r)) {
				return 0
			}
			if !policy.IsWordRune(r) {
				return i
			}
		}
		return len(s)
	})

	// Space scans a maximal run of whitespace, leading whitespace is not skipped.
	Space = NoStrip(runScanner("expected space", policy.SpaceLen))

	// HorSpace scans a maximal run of whitespace containing no line breaks, leading whitespace is not skipped.
	HorSpace = NoStrip(runScanner("expected horizontal space", policy.HorSpaceLen))

	// Newline scans a single line break ("\r\n" included), leading whitespace is not skipped.
	Newline = NoStrip(runScanner("expected line break", policy.LineBreakLen))
)

// Line scans everything up to and including the nearest line break ("\n", "\r\n", or "\r") or the end of text.
// Returned value does not contain the line break.
var Line Scanner[string] = Func[string](func(s string) (string, int, error) {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\n':
			return s[:i], i + 1, nil
		case '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				return s[:i], i + 2, nil
			}
			return s[:i], i + 1, nil
		}
	}
	return s, len(s), nil
})

// Everything scans the rest of text, possibly empty.
var Everything Scanner[string] = Func[string](func(s string) (string, int, error) {
	return s, len(s), nil
})

// QuotedString scans a double-quoted or back-quoted string using Go syntax,
// the value is unquoted.
var QuotedString Scanner[string] = Func[string](func(s string) (string, int, error) {
	if s == "" || (s[0] != '"' && s[0] != '`') {
		return "", 0, syntax("expected quoted string")
	}

	quoted, e := strconv.QuotedPrefix(s)
	if e != nil {
		return "", 0, syntax("malformed or unterminated quoted string")
	}

	res, e := strconv.Unquote(quoted)
	if e != nil {
		return "", 0, syntax("malformed quoted string")
	}
	return res, len(quoted), nil
})
