package rule

import (
	"errors"

	"github.com/ava12/quickscan"
	"github.com/ava12/quickscan/cursor"
)

// Handler converts captured values to rule result.
type Handler[R any] func(caps *Captures) (R, error)

// Rule is a pattern with a handler.
type Rule[R any] struct {
	label   string
	pattern Pattern
	open    bool
	handler Handler[R]
}

// Handle creates a rule calling h with captured values.
// Panics if a tail or anchor term is not the last one.
func Handle[R any](p Pattern, h Handler[R]) *Rule[R] {
	return &Rule[R]{pattern: p, open: p.open(), handler: h}
}

// Const creates a rule returning v.
func Const[R any](p Pattern, v R) *Rule[R] {
	return Handle(p, func(*Captures) (R, error) {
		return v, nil
	})
}

// Record creates a rule returning captured values.
func Record(p Pattern) *Rule[*Captures] {
	return Handle(p, func(caps *Captures) (*Captures, error) {
		return caps, nil
	})
}

// Labeled sets rule label used in logs and error messages.
func (r *Rule[R]) Labeled(label string) *Rule[R] {
	r.label = label
	return r
}

// Label returns rule label, may be empty.
func (r *Rule[R]) Label() string {
	return r.label
}

// Pattern returns rule pattern.
func (r *Rule[R]) Pattern() Pattern {
	return r.pattern
}

func (r *Rule[R]) String() string {
	if r.label == "" {
		return r.pattern.String()
	}
	return "@" + r.label + " " + r.pattern.String()
}

// Match matches rule pattern at c and calls rule handler.
// Unless the pattern ends with a tail or anchor term only skippable whitespace may remain after the pattern.
// Returns result and cursor after the pattern on success.
// Returns *quickscan.ScanError on failure, handler errors are wrapped into Other kind
// at the end of the pattern unless they are scan errors themselves.
func (r *Rule[R]) Match(c cursor.Cursor) (R, cursor.Cursor, error) {
	var zero R
	caps := NewCaptures()
	next, e := r.pattern.Match(c, caps)
	if e == nil && !r.open {
		e = next.TryEnd()
	}
	if e != nil {
		return zero, c, e
	}

	res, e := r.handler(caps)
	if e != nil {
		var se *quickscan.ScanError
		if !errors.As(e, &se) {
			se = quickscan.WrapError(quickscan.Other, next.Offset(), e)
		}
		return zero, c, se
	}
	return res, next, nil
}
