// Package cursor defines immutable input cursor.
//
// A Cursor is a pair of remaining text and the number of bytes consumed before it.
// Every operation returns a new Cursor value and never changes the receiver,
// so backtracking is done by keeping an older value around.
// Error offsets are always relative to the top-level input.
package cursor

import (
	"fmt"

	"github.com/ava12/quickscan"
	"github.com/ava12/quickscan/literal"
	"github.com/ava12/quickscan/policy"
)

// ScanFunc consumes a prefix of s and returns scanned value and the number of consumed bytes.
// Error offsets, if any, are relative to s.
type ScanFunc[T any] func(s string) (T, int, error)

// Cursor is a read position in the input text.
type Cursor struct {
	text   string
	offset int
	policy policy.Policy
}

// New creates a cursor at the beginning of s using default policy.
func New(s string) Cursor {
	return Cursor{text: s, policy: policy.Default}
}

// NewWithPolicy creates a cursor at the beginning of s using policy p.
// nil members of p are replaced with defaults.
func NewWithPolicy(s string, p policy.Policy) Cursor {
	return Cursor{text: s, policy: p.Normalize()}
}

// WithPolicy returns a copy of c using policy p.
func (c Cursor) WithPolicy(p policy.Policy) Cursor {
	c.policy = p.Normalize()
	return c
}

// String returns the remaining text.
func (c Cursor) String() string {
	return c.text
}

// Offset returns the number of bytes consumed before the remaining text.
func (c Cursor) Offset() int {
	return c.offset
}

// Policy returns the cursor policy.
func (c Cursor) Policy() policy.Policy {
	if c.policy.Space == nil {
		return policy.Default
	}
	return c.policy
}

// IsEmpty reports whether there is no remaining text.
func (c Cursor) IsEmpty() bool {
	return c.text == ""
}

// Advance returns a cursor moved n bytes forward.
// Panics if n is negative or exceeds remaining text length,
// this means a scanner reported more bytes than it was given.
func (c Cursor) Advance(n int) Cursor {
	if n < 0 || n > len(c.text) {
		panic(fmt.Sprintf("cannot advance cursor by %d bytes, only %d remain", n, len(c.text)))
	}

	c.text = c.text[n:]
	c.offset += n
	return c
}

func (c Cursor) skip() Cursor {
	return c.Advance(c.Policy().Space.SkipLeading(c.text))
}

// TryEnd returns nil if nothing but skippable whitespace remains.
// Otherwise returns ExpectedEnd error at the first non-skippable byte.
func (c Cursor) TryEnd() error {
	s := c.skip()
	if s.IsEmpty() {
		return nil
	}
	return quickscan.NewScanError(quickscan.ExpectedEnd, s.offset)
}

// TryMatchLiteral matches lit against remaining text using cursor policy.
// Returns advanced cursor on success.
// Returns c and LiteralMismatch error at the first disagreeing position on failure.
func (c Cursor) TryMatchLiteral(lit string) (Cursor, error) {
	n, at, ok := literal.Match(c.text, lit, c.Policy())
	if !ok {
		return c, quickscan.NewScanError(quickscan.LiteralMismatch, c.offset+at)
	}
	return c.Advance(n), nil
}

// TryScan skips leading whitespace using cursor policy and calls f for the remaining text.
// Returns scanned value and advanced cursor on success.
// Returns zero value, c, and *quickscan.ScanError on failure,
// error offset is moved to absolute position after skipped whitespace.
func TryScan[T any](c Cursor, f ScanFunc[T]) (T, Cursor, error) {
	res, next, e := TryScanRaw(c.skip(), f)
	if e != nil {
		return res, c, e
	}
	return res, next, nil
}

// TryScanRaw is the same as TryScan, but does not skip leading whitespace.
func TryScanRaw[T any](c Cursor, f ScanFunc[T]) (T, Cursor, error) {
	res, n, e := f(c.text)
	if e != nil {
		var zero T
		return zero, c, quickscan.AsScanError(e).Shift(c.offset)
	}
	return res, c.Advance(n), nil
}
