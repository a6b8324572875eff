// Package literal implements matching of literal text against input.
//
// Both input and literal are sliced into words and whitespace runs.
// Words are compared pairwise using comparison policy, whitespace runs are matched
// using whitespace policy. Input is never required to be exhausted.
package literal

import (
	"fmt"

	"github.com/ava12/quickscan/policy"
)

// Match matches lit against the beginning of text.
// Returns the number of consumed bytes of text on success.
// On failure returns false and the offset in text of the first disagreeing word or whitespace run.
//
// Empty lit always matches, consuming only leading whitespace skipped by p.Space.
// Panics if lit is not empty but consists of whitespace skipped by p.Space entirely,
// such a literal has nothing to compare.
func Match(text, lit string, p policy.Policy) (n int, at int, ok bool) {
	p = p.Normalize()
	skip := p.Space.SkipLeading(lit)
	if skip > 0 && skip == len(lit) {
		panic(fmt.Sprintf("literal %q contains no words to match under %v whitespace policy", lit, p.Space))
	}

	lit = lit[skip:]
	pos := p.Space.SkipLeading(text)
	for lit != "" {
		na, nb, matched := p.Space.MatchLeading(text[pos:], lit)
		if !matched {
			return 0, pos + na, false
		}

		pos += na
		lit = lit[nb:]
		if lit == "" {
			break
		}

		lw := p.Words.NextWord(lit)
		if lw == 0 {
			return 0, pos, false
		}

		tw := p.Words.NextWord(text[pos:])
		if tw == 0 || !p.Compare.Compare(text[pos:pos+tw], lit[:lw]) {
			return 0, pos, false
		}

		pos += tw
		lit = lit[lw:]
	}

	return pos, pos, true
}
