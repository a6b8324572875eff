// Package scanner defines scanner protocol and standard scanners.
//
// A scanner consumes a prefix of given text and returns scanned value and the number of consumed bytes.
// A scanner never consumes more bytes than it was given.
// Error offsets returned by a scanner are relative to the text it was given,
// cursor shifts them to absolute positions.
//
// Scanners are either "self" scanners (the scanned type knows how to parse its own representation,
// see For and SelfOf) or "abstract" scanners producing a value of some other type
// (e.g. Word producing a string or Hex producing an integer).
package scanner

import (
	"github.com/ava12/quickscan"
)

// Scanner scans a value of type T from the beginning of s.
type Scanner[T any] interface {
	Scan(s string) (T, int, error)
}

// Stripper may be implemented by a scanner to control whether leading whitespace
// is skipped by cursor before the scanner runs. Scanners not implementing it get whitespace skipped.
type Stripper interface {
	StripLeading() bool
}

// StripsLeading reports whether cursor must skip leading whitespace before calling sc.
func StripsLeading(sc any) bool {
	if s, is := sc.(Stripper); is {
		return s.StripLeading()
	}
	return true
}

// Func adapts a function to Scanner interface.
type Func[T any] func(s string) (T, int, error)

func (f Func[T]) Scan(s string) (T, int, error) {
	return f(s)
}

type noStrip[T any] struct {
	Scanner[T]
}

func (noStrip[T]) StripLeading() bool {
	return false
}

// NoStrip wraps sc so that leading whitespace is passed to it unchanged.
func NoStrip[T any](sc Scanner[T]) Scanner[T] {
	return noStrip[T]{sc}
}

// Self is implemented (with pointer receiver) by types able to scan their own representation.
// ScanFrom fills the receiver and returns the number of consumed bytes.
type Self interface {
	ScanFrom(s string) (int, error)
}

type selfScanner[T any, PT interface {
	*T
	Self
}] struct{}

func (selfScanner[T, PT]) Scan(s string) (T, int, error) {
	var res T
	n, e := PT(&res).ScanFrom(s)
	return res, n, e
}

// SelfOf returns scanner calling (*T).ScanFrom.
func SelfOf[T any, PT interface {
	*T
	Self
}]() Scanner[T] {
	return selfScanner[T, PT]{}
}

type dynSelf[T any] struct{}

func (dynSelf[T]) Scan(s string) (T, int, error) {
	p := new(T)
	n, e := any(p).(Self).ScanFrom(s)
	return *p, n, e
}

type erased[T any] struct {
	sc Scanner[T]
}

func (es erased[T]) Scan(s string) (any, int, error) {
	res, n, e := es.sc.Scan(s)
	if e != nil {
		return nil, 0, e
	}
	return res, n, nil
}

func (es erased[T]) StripLeading() bool {
	return StripsLeading(es.sc)
}

// Erase converts typed scanner to untyped one, keeping its whitespace stripping preference.
func Erase[T any](sc Scanner[T]) Scanner[any] {
	if res, is := any(sc).(Scanner[any]); is {
		return res
	}
	return erased[T]{sc}
}

// Pair holds two scanned values, see KeyValue and Tuple2.
type Pair[K, V any] struct {
	Key   K
	Value V
}

// PairValues returns pair members as untyped values, used by map containers.
func (p Pair[K, V]) PairValues() (any, any) {
	return p.Key, p.Value
}

func syntax(desc string) error {
	return quickscan.SyntaxError(0, desc)
}
