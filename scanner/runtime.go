package scanner

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ava12/quickscan"
)

type exactWidth[T any] struct {
	width int
	sc    Scanner[T]
}

func (w exactWidth[T]) Scan(s string) (T, int, error) {
	var zero T
	if len(s) < w.width {
		return zero, 0, syntax("input not long enough")
	}
	if w.width < len(s) && !utf8.RuneStart(s[w.width]) {
		return zero, 0, syntax("width boundary splits a character")
	}

	res, n, e := w.sc.Scan(s[:w.width])
	if e != nil {
		return zero, 0, e
	}
	if n != w.width {
		return zero, 0, syntax("value did not consume enough characters")
	}
	return res, n, nil
}

func (w exactWidth[T]) StripLeading() bool {
	return StripsLeading(w.sc)
}

// ExactWidth offers sc exactly width bytes and requires all of them to be consumed.
func ExactWidth[T any](width int, sc Scanner[T]) Scanner[T] {
	return exactWidth[T]{width, sc}
}

type maxWidth[T any] struct {
	width int
	sc    Scanner[T]
}

func (w maxWidth[T]) Scan(s string) (T, int, error) {
	if len(s) > w.width {
		end := w.width
		for end > 0 && !utf8.RuneStart(s[end]) {
			end--
		}
		s = s[:end]
	}
	return w.sc.Scan(s)
}

func (w maxWidth[T]) StripLeading() bool {
	return StripsLeading(w.sc)
}

// MaxWidth offers sc at most width bytes, truncated at a character boundary.
func MaxWidth[T any](width int, sc Scanner[T]) Scanner[T] {
	return maxWidth[T]{width, sc}
}

type minWidth[T any] struct {
	width int
	sc    Scanner[T]
}

func (w minWidth[T]) Scan(s string) (T, int, error) {
	var zero T
	if len(s) < w.width {
		return zero, 0, syntax("expected more bytes to scan")
	}

	res, n, e := w.sc.Scan(s)
	if e != nil {
		return zero, 0, e
	}
	if n < w.width {
		return zero, 0, syntax("scanned value too short")
	}
	return res, n, nil
}

func (w minWidth[T]) StripLeading() bool {
	return StripsLeading(w.sc)
}

// MinWidth requires sc to consume at least width bytes.
func MinWidth[T any](width int, sc Scanner[T]) Scanner[T] {
	return minWidth[T]{width, sc}
}

type regexpScanner[T any] struct {
	re    *regexp.Regexp
	group int
	sc    Scanner[T]
}

func (rs regexpScanner[T]) Scan(s string) (T, int, error) {
	var zero T
	match := rs.re.FindStringSubmatchIndex(s)
	if match == nil {
		return zero, 0, syntax("no match for regular expression")
	}

	start, end := match[0], match[1]
	if rs.group > 0 && match[rs.group*2] >= 0 {
		start, end = match[rs.group*2], match[rs.group*2+1]
	}

	res, _, e := rs.sc.Scan(s[start:end])
	if e != nil {
		return zero, 0, quickscan.AsScanError(e).Shift(start)
	}
	return res, match[1], nil
}

func (rs regexpScanner[T]) StripLeading() bool {
	return StripsLeading(rs.sc)
}

// Regexp finds the first match of re and offers sc the text of the group named "scan",
// or else of the first group, or else of the whole match.
// The whole match (and anything before it) is consumed regardless of how much sc consumed.
func Regexp[T any](re *regexp.Regexp, sc Scanner[T]) Scanner[T] {
	group := re.SubexpIndex("scan")
	if group < 0 && re.NumSubexp() > 0 {
		group = 1
	}
	return regexpScanner[T]{re, group, sc}
}

// RegexpString is Regexp producing extracted text.
func RegexpString(re *regexp.Regexp) Scanner[string] {
	return Regexp(re, Everything)
}

type upTo[T any] struct {
	lit string
	sc  Scanner[T]
}

func (u upTo[T]) Scan(s string) (T, int, error) {
	if i := strings.Index(s, u.lit); i >= 0 {
		s = s[:i]
	}
	return u.sc.Scan(s)
}

func (u upTo[T]) StripLeading() bool {
	return StripsLeading(u.sc)
}

// UpTo offers sc only the text before the first occurrence of lit (or the whole text if there is none).
func UpTo[T any](lit string, sc Scanner[T]) Scanner[T] {
	return upTo[T]{lit, sc}
}

type mapped[T, U any] struct {
	sc Scanner[T]
	f  func(T) (U, error)
}

func (m mapped[T, U]) Scan(s string) (U, int, error) {
	var zero U
	v, n, e := m.sc.Scan(s)
	if e != nil {
		return zero, 0, e
	}

	res, e := m.f(v)
	if e != nil {
		return zero, 0, quickscan.AsScanError(e)
	}
	return res, n, nil
}

func (m mapped[T, U]) StripLeading() bool {
	return StripsLeading(m.sc)
}

// Map converts values scanned by sc using f. Errors returned by f become scan errors at the value position.
func Map[T, U any](sc Scanner[T], f func(T) (U, error)) Scanner[U] {
	return mapped[T, U]{sc, f}
}
