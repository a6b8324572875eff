package rule

import (
	"fmt"

	"github.com/ava12/quickscan"
	"github.com/ava12/quickscan/cursor"
)

// Unbounded is Bound.Max value meaning no upper limit.
const Unbounded = -1

// Bound limits the number of repetitions.
type Bound struct {
	Min, Max int
}

var (
	Optional   = Bound{0, 1}
	ZeroOrMore = Bound{0, Unbounded}
	OneOrMore  = Bound{1, Unbounded}
)

// Between returns {min, max} bound. Panics if min > max or any of them is negative
// (except max == Unbounded).
func Between(min, max int) Bound {
	b := Bound{min, max}
	b.check()
	return b
}

// AtLeast returns {n, Unbounded} bound.
func AtLeast(n int) Bound {
	return Between(n, Unbounded)
}

// AtMost returns {0, n} bound.
func AtMost(n int) Bound {
	return Between(0, n)
}

// Exactly returns {n, n} bound.
func Exactly(n int) Bound {
	return Between(n, n)
}

// Valid reports whether bound limits are consistent.
func (b Bound) Valid() bool {
	return b.Min >= 0 && (b.Max == Unbounded || b.Max >= b.Min)
}

func (b Bound) check() {
	if !b.Valid() {
		panic(fmt.Sprintf("invalid repetition bound {%d,%d}", b.Min, b.Max))
	}
}

func (b Bound) String() string {
	switch {
	case b == Optional:
		return "?"
	case b == ZeroOrMore:
		return "*"
	case b == OneOrMore:
		return "+"
	case b.Min == b.Max:
		return fmt.Sprintf("{%d}", b.Min)
	case b.Max == Unbounded:
		return fmt.Sprintf("{%d,}", b.Min)
	default:
		return fmt.Sprintf("{%d,%d}", b.Min, b.Max)
	}
}

// RepeatTerm matches inner pattern repeatedly, optionally separated by separator pattern.
// Values captured by inner and separator patterns are collected per name,
// by default into []any.
type RepeatTerm struct {
	bound   Bound
	inner   Pattern
	sep     Pattern
	collect NewContainer
	named   map[string]NewContainer
}

// Repeat creates repetition of inner terms. Panics if the bound is invalid
// or inner terms contain tail or anchor.
//
// Repetition is greedy and never backtracks: it stops at the first iteration
// that fails or when Max iterations are matched. An iteration that consumes no input
// does not stop the repetition, so a pattern able to match empty text repeats
// exactly Max times and never stops if Max is Unbounded.
//
// If a separator matches but following inner pattern does not, the whole repetition fails.
func Repeat(b Bound, inner ...Term) *RepeatTerm {
	b.check()
	p := Pattern(inner)
	p.checkInner("repetition")
	return &RepeatTerm{bound: b, inner: p}
}

// SepBy sets separator pattern matched between iterations.
func (r *RepeatTerm) SepBy(terms ...Term) *RepeatTerm {
	p := Pattern(terms)
	p.checkInner("separator")
	r.sep = p
	return r
}

// Collect sets container used for all capture names.
func (r *RepeatTerm) Collect(nc NewContainer) *RepeatTerm {
	r.collect = nc
	return r
}

// CollectAs sets container used for given capture name.
func (r *RepeatTerm) CollectAs(name string, nc NewContainer) *RepeatTerm {
	if r.named == nil {
		r.named = make(map[string]NewContainer)
	}
	r.named[name] = nc
	return r
}

// Bound returns repetition limits.
func (r *RepeatTerm) Bound() Bound {
	return r.bound
}

func (r *RepeatTerm) Names() []string {
	return append(r.inner.Names(), r.sep.Names()...)
}

func (r *RepeatTerm) String() string {
	sep := ""
	if len(r.sep) > 0 {
		sep = " (" + r.sep.String() + ")"
	}
	return "[" + r.inner.String() + "]" + sep + r.bound.String()
}

func (r *RepeatTerm) newContainer(name string) Container {
	if nc := r.named[name]; nc != nil {
		return nc()
	}
	if r.collect != nil {
		return r.collect()
	}
	return SliceOf()
}

type accumulator struct {
	names      []string
	containers map[string]Container
}

func (r *RepeatTerm) newAccumulator() *accumulator {
	acc := &accumulator{containers: make(map[string]Container)}
	for _, n := range r.Names() {
		if _, found := acc.containers[n]; !found {
			acc.names = append(acc.names, n)
			acc.containers[n] = r.newContainer(n)
		}
	}
	return acc
}

func (acc *accumulator) add(r *RepeatTerm, caps *Captures) error {
	for _, n := range caps.names {
		c := acc.containers[n]
		if c == nil {
			c = r.newContainer(n)
			acc.names = append(acc.names, n)
			acc.containers[n] = c
		}
		if e := c.Add(caps.values[n]); e != nil {
			return fmt.Errorf("capture %q: %w", n, e)
		}
	}
	return nil
}

func (acc *accumulator) store(caps *Captures) {
	for _, n := range acc.names {
		caps.Put(n, acc.containers[n].Value())
	}
}

func (r *RepeatTerm) Match(c cursor.Cursor, caps *Captures) (cursor.Cursor, error) {
	var (
		last     error
		dangling bool
	)
	acc := r.newAccumulator()
	current := c
	count := 0

	for r.bound.Max == Unbounded || count < r.bound.Max {
		iter := NewCaptures()
		next := current
		var e error

		if count > 0 && len(r.sep) > 0 {
			next, e = r.sep.Match(next, iter)
			if e != nil {
				last = e
				break
			}
		}

		next, e = r.inner.Match(next, iter)
		if e != nil {
			last = e
			dangling = (count > 0 && len(r.sep) > 0)
			break
		}

		if e = acc.add(r, iter); e != nil {
			return c, quickscan.WrapError(quickscan.Other, next.Offset(), e)
		}
		current = next
		count++
	}

	if count < r.bound.Min || dangling {
		return c, last
	}

	acc.store(caps)
	return current, nil
}
