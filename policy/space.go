package policy

import (
	"unicode"
	"unicode/utf8"
)

var (
	// IgnoreSpace skips any whitespace, whitespace runs of any length (including none) are equal.
	IgnoreSpace Space = ignoreSpace{}

	// ExactSpace skips nothing, whitespace runs must be equal rune by rune.
	// Pattern may end in the middle of input whitespace run.
	ExactSpace Space = exactSpace{}

	// FuzzySpace skips nothing, any non-empty whitespace run matches any other non-empty run.
	FuzzySpace Space = fuzzySpace{}

	// IgnoreNonLine skips horizontal whitespace only, line breaks must match one for one.
	IgnoreNonLine Space = ignoreNonLine{}
)

// SpaceLen returns the byte length of leading whitespace of s.
func SpaceLen(s string) int {
	for i, r := range s {
		if !unicode.IsSpace(r) {
			return i
		}
	}
	return len(s)
}

// IsLineBreak reports whether r starts a line break.
func IsLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', 0x85, 0x2028, 0x2029:
		return true
	default:
		return false
	}
}

// HorSpaceLen returns the byte length of leading whitespace of s that contains no line breaks.
func HorSpaceLen(s string) int {
	for i, r := range s {
		if IsLineBreak(r) || !unicode.IsSpace(r) {
			return i
		}
	}
	return len(s)
}

// LineBreakLen returns the byte length of the line break at the start of s or 0.
// "\r\n" is a single line break.
func LineBreakLen(s string) int {
	if len(s) >= 2 && s[0] == '\r' && s[1] == '\n' {
		return 2
	}
	r, size := utf8.DecodeRuneInString(s)
	if size > 0 && IsLineBreak(r) {
		return size
	}
	return 0
}

type ignoreSpace struct{}

func (ignoreSpace) SkipLeading(s string) int {
	return SpaceLen(s)
}

func (ignoreSpace) MatchLeading(text, pattern string) (int, int, bool) {
	return SpaceLen(text), SpaceLen(pattern), true
}

func (ignoreSpace) String() string {
	return "ignore"
}

type exactSpace struct{}

func (exactSpace) SkipLeading(string) int {
	return 0
}

func (exactSpace) MatchLeading(text, pattern string) (int, int, bool) {
	i, j := 0, 0
	for {
		rp, np := utf8.DecodeRuneInString(pattern[j:])
		rt, nt := utf8.DecodeRuneInString(text[i:])
		textSpace := nt > 0 && unicode.IsSpace(rt)
		if np == 0 {
			return i, j, true
		}

		if !unicode.IsSpace(rp) {
			return i, j, !textSpace
		}

		if !textSpace || rt != rp {
			return i, j, false
		}

		i += nt
		j += np
	}
}

func (exactSpace) String() string {
	return "exact"
}

type fuzzySpace struct{}

func (fuzzySpace) SkipLeading(string) int {
	return 0
}

func (fuzzySpace) MatchLeading(text, pattern string) (int, int, bool) {
	if pattern == "" {
		return 0, 0, true
	}

	na := SpaceLen(text)
	nb := SpaceLen(pattern)
	if (na == 0) != (nb == 0) {
		return 0, 0, false
	}
	return na, nb, true
}

func (fuzzySpace) String() string {
	return "fuzzy"
}

type ignoreNonLine struct{}

func (ignoreNonLine) SkipLeading(s string) int {
	return HorSpaceLen(s)
}

func (ignoreNonLine) MatchLeading(text, pattern string) (int, int, bool) {
	i, j := 0, 0
	for {
		i += HorSpaceLen(text[i:])
		j += HorSpaceLen(pattern[j:])
		tl := LineBreakLen(text[i:])
		pl := LineBreakLen(pattern[j:])
		if pl == 0 {
			return i, j, tl == 0 || j == len(pattern)
		}

		if tl == 0 {
			return i, j, false
		}

		i += tl
		j += pl
	}
}

func (ignoreNonLine) String() string {
	return "ignore-non-line"
}
