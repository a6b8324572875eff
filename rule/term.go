// Package rule implements pattern matching on top of cursor and scanner packages.
//
// A pattern is a sequence of terms: literals, captures, repetitions, and optional
// tail or anchor term ending the pattern. A Rule pairs a pattern with a handler
// turning captured values into a result, a Set tries rules in order and returns
// the result of the first matching one.
package rule

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/ava12/quickscan/cursor"
	"github.com/ava12/quickscan/scanner"
)

// Term is a single pattern element.
// Match consumes a prefix of the cursor text and stores captured values to caps.
// On failure Match returns the original cursor and *quickscan.ScanError, caps may contain garbage.
type Term interface {
	Match(c cursor.Cursor, caps *Captures) (cursor.Cursor, error)
	// Names returns names of values captured by the term, nil for none.
	Names() []string
	fmt.Stringer
}

// terminal terms must be the last ones in a rule pattern.
type terminal interface {
	terminal()
}

func isTerminal(t Term) bool {
	_, is := t.(terminal)
	return is
}

// Pattern is a sequence of terms.
type Pattern []Term

// Seq creates a pattern.
func Seq(terms ...Term) Pattern {
	return Pattern(terms)
}

// Match matches all terms in order.
func (p Pattern) Match(c cursor.Cursor, caps *Captures) (cursor.Cursor, error) {
	var e error
	next := c
	for _, t := range p {
		next, e = t.Match(next, caps)
		if e != nil {
			return c, e
		}
	}
	return next, nil
}

// Names returns capture names of all terms, each name once.
func (p Pattern) Names() []string {
	var res []string
	seen := make(map[string]bool)
	for _, t := range p {
		for _, n := range t.Names() {
			if !seen[n] {
				seen[n] = true
				res = append(res, n)
			}
		}
	}
	return res
}

func (p Pattern) String() string {
	parts := make([]string, len(p))
	for i, t := range p {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}

// open reports whether the pattern ends with a tail or anchor term.
// Panics if such a term is not the last one.
func (p Pattern) open() bool {
	for i, t := range p {
		if isTerminal(t) {
			if i < len(p)-1 {
				panic(fmt.Sprintf("%s must be the last term of a rule", t))
			}
			return true
		}
	}
	return false
}

func (p Pattern) checkInner(where string) {
	for _, t := range p {
		if isTerminal(t) {
			panic(fmt.Sprintf("%s is not allowed in %s", t, where))
		}
	}
}

func names(name string) []string {
	if discarded(name) {
		return nil
	}
	return []string{name}
}

type literalTerm string

func (t literalTerm) Match(c cursor.Cursor, _ *Captures) (cursor.Cursor, error) {
	return c.TryMatchLiteral(string(t))
}

func (literalTerm) Names() []string {
	return nil
}

func (t literalTerm) String() string {
	return strconv.Quote(string(t))
}

// Lit matches literal text using cursor policy.
func Lit(text string) Term {
	return literalTerm(text)
}

type captureTerm[T any] struct {
	name string
	sc   scanner.Scanner[T]
	desc string
}

func (t captureTerm[T]) Match(c cursor.Cursor, caps *Captures) (cursor.Cursor, error) {
	v, next, e := scanner.Apply(c, t.sc)
	if e != nil {
		return c, e
	}
	caps.Put(t.name, v)
	return next, nil
}

func (t captureTerm[T]) Names() []string {
	return names(t.name)
}

func (t captureTerm[T]) String() string {
	if t.desc == "" {
		return "let " + t.name
	}
	return "let " + t.name + ": " + t.desc
}

// Let scans a value using sc and captures it under given name.
func Let[T any](name string, sc scanner.Scanner[T]) Term {
	return captureTerm[T]{name: name, sc: sc, desc: reflect.TypeOf((*T)(nil)).Elem().String()}
}

// LetDesc is the same as Let with explicit scanner description used by String.
func LetDesc[T any](name, desc string, sc scanner.Scanner[T]) Term {
	return captureTerm[T]{name: name, sc: sc, desc: desc}
}

// Value scans a value using default scanner for T, see scanner.For.
func Value[T any](name string) Term {
	return Let(name, scanner.For[T]())
}

type tailTerm string

func (t tailTerm) Match(c cursor.Cursor, caps *Captures) (cursor.Cursor, error) {
	caps.Put(string(t), c.String())
	return c.Advance(len(c.String())), nil
}

func (t tailTerm) Names() []string {
	return names(string(t))
}

func (t tailTerm) String() string {
	return ".." + string(t)
}

func (tailTerm) terminal() {}

// Tail captures the remaining text as is, including leading whitespace.
// Tail must be the last term of a rule, the rule does not check for end of input.
func Tail(name string) Term {
	return tailTerm(name)
}

type anchorTerm string

func (t anchorTerm) Match(c cursor.Cursor, caps *Captures) (cursor.Cursor, error) {
	caps.Put(string(t), c)
	return c, nil
}

func (t anchorTerm) Names() []string {
	return names(string(t))
}

func (t anchorTerm) String() string {
	return "^.." + string(t)
}

func (anchorTerm) terminal() {}

// Anchor captures the cursor itself so that scanning may be continued.
// Anchor must be the last term of a rule, the rule does not check for end of input.
func Anchor(name string) Term {
	return anchorTerm(name)
}
