// Package policy defines strategies used by literal matcher and cursor:
// how two words are compared, how whitespace is skipped and matched, and how text is sliced into words.
//
// All policies are stateless and safe for concurrent use.
package policy

import (
	"fmt"
)

// Compare decides whether two words are equal.
type Compare interface {
	Compare(a, b string) bool
}

// Space decides how whitespace is skipped before values and how whitespace runs
// of input text and literal pattern are matched against each other.
type Space interface {
	// SkipLeading returns the number of leading bytes of s to skip.
	SkipLeading(s string) int

	// MatchLeading matches leading whitespace of text against leading whitespace of pattern.
	// Returns numbers of bytes consumed from text and pattern on success.
	// On failure returns false and na contains offset in text where disagreement was found.
	MatchLeading(text, pattern string) (na, nb int, ok bool)
}

// Words slices text into words for literal comparison.
type Words interface {
	// NextWord returns the byte length of the first word of s.
	// Returns 0 if s is empty or starts with whitespace.
	NextWord(s string) int
}

// Policy combines all three strategies.
type Policy struct {
	Compare Compare
	Space   Space
	Words   Words
}

// Default is exact comparison, whitespace ignored, word-ish slicing.
var Default = Policy{Exact, IgnoreSpace, Wordish}

// WithCompare returns a copy of p using c.
func (p Policy) WithCompare(c Compare) Policy {
	p.Compare = c
	return p
}

// WithSpace returns a copy of p using s.
func (p Policy) WithSpace(s Space) Policy {
	p.Space = s
	return p
}

// WithWords returns a copy of p using w.
func (p Policy) WithWords(w Words) Policy {
	p.Words = w
	return p
}

// Normalize replaces nil members with defaults.
func (p Policy) Normalize() Policy {
	if p.Compare == nil {
		p.Compare = Default.Compare
	}
	if p.Space == nil {
		p.Space = Default.Space
	}
	if p.Words == nil {
		p.Words = Default.Words
	}
	return p
}

func (p Policy) String() string {
	p = p.Normalize()
	return fmt.Sprintf("%v/%v/%v", p.Compare, p.Space, p.Words)
}

var (
	compareNames = map[string]Compare{
		"exact":                  Exact,
		"ignore-ascii-case":      IgnoreASCIICase,
		"ignore-case":            IgnoreCase,
		"normalized":             Normalized,
		"ignore-case-normalized": IgnoreCaseNormalized,
	}
	spaceNames = map[string]Space{
		"ignore":          IgnoreSpace,
		"exact":           ExactSpace,
		"fuzzy":           FuzzySpace,
		"ignore-non-line": IgnoreNonLine,
	}
	wordsNames = map[string]Words{
		"wordish":   Wordish,
		"non-space": NonSpace,
	}
)

// ParseCompare returns comparison policy by name, empty name means default.
func ParseCompare(name string) (Compare, error) {
	return lookup(compareNames, "comparison", name, Default.Compare)
}

// ParseSpace returns whitespace policy by name, empty name means default.
func ParseSpace(name string) (Space, error) {
	return lookup(spaceNames, "whitespace", name, Default.Space)
}

// ParseWords returns word slicing policy by name, empty name means default.
func ParseWords(name string) (Words, error) {
	return lookup(wordsNames, "word", name, Default.Words)
}

// Parse builds a policy from three names, any of which may be empty.
func Parse(compare, space, words string) (Policy, error) {
	var (
		p Policy
		e error
	)
	p.Compare, e = ParseCompare(compare)
	if e == nil {
		p.Space, e = ParseSpace(space)
	}
	if e == nil {
		p.Words, e = ParseWords(words)
	}
	return p, e
}

func lookup[T any](names map[string]T, kind, name string, def T) (T, error) {
	if name == "" {
		return def, nil
	}
	res, found := names[name]
	if !found {
		return def, fmt.Errorf("unknown %s policy: %q", kind, name)
	}
	return res, nil
}
