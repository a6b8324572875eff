package quickscan

import (
	"errors"
	"fmt"
)

// ErrorKind enumerates scan failure reasons.
// Kind values belong to ScanErrors class and double as error codes.
type ErrorKind int

const (
	// LiteralMismatch indicates that input text does not match literal term.
	LiteralMismatch ErrorKind = ScanErrors + iota

	// Syntax indicates that a scanner could not find a value or found a malformed one.
	// ScanError.Desc may contain a static description.
	Syntax

	// ExpectedEnd indicates that input has something left after the last term of a rule.
	ExpectedEnd

	// IO indicates that input could not be read, ScanError.Err contains the cause.
	IO

	// Other wraps any other error, ScanError.Err contains the cause.
	Other
)

func (k ErrorKind) String() string {
	switch k {
	case LiteralMismatch:
		return "literal mismatch"
	case Syntax:
		return "syntax"
	case ExpectedEnd:
		return "expected end"
	case IO:
		return "io"
	case Other:
		return "other"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ScanError describes a scan failure.
// Offset is a byte offset in the top-level input.
// ScanError values are never modified once created, Shift returns a copy.
type ScanError struct {
	Kind   ErrorKind
	Offset int
	Desc   string
	Err    error
}

// NewScanError creates ScanError of given kind with no description.
func NewScanError(kind ErrorKind, offset int) *ScanError {
	return &ScanError{Kind: kind, Offset: offset}
}

// SyntaxError creates ScanError of Syntax kind. desc may be empty.
func SyntaxError(offset int, desc string) *ScanError {
	return &ScanError{Kind: Syntax, Offset: offset, Desc: desc}
}

// WrapError creates ScanError of given kind (normally IO or Other) wrapping e.
func WrapError(kind ErrorKind, offset int, e error) *ScanError {
	return &ScanError{Kind: kind, Offset: offset, Err: e}
}

// AsScanError returns e if it is (or wraps) *ScanError,
// otherwise e is wrapped into ScanError of Other kind at offset 0.
// Returns nil if e is nil.
func AsScanError(e error) *ScanError {
	if e == nil {
		return nil
	}

	var se *ScanError
	if errors.As(e, &se) {
		return se
	}
	return WrapError(Other, 0, e)
}

func (e *ScanError) Error() string {
	var reason string
	switch e.Kind {
	case LiteralMismatch:
		reason = "did not match literal"
	case Syntax:
		if e.Desc == "" {
			reason = "syntax error"
		} else {
			reason = "syntax error: " + e.Desc
		}
	case ExpectedEnd:
		reason = "expected end of input"
	case IO:
		reason = fmt.Sprintf("io error: %v", e.Err)
	default:
		if e.Err == nil {
			reason = e.Kind.String()
		} else {
			reason = e.Err.Error()
		}
	}
	return fmt.Sprintf("scan error: %s, at offset: %d", reason, e.Offset)
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

// Code returns numeric error code, the same as Kind.
func (e *ScanError) Code() int {
	return int(e.Kind)
}

// Shift returns a copy of e with Offset moved by delta bytes.
func (e *ScanError) Shift(delta int) *ScanError {
	if delta == 0 {
		return e
	}
	res := *e
	res.Offset += delta
	return &res
}

// FurthestAlong returns whichever error has greater offset.
// On a tie the first one (a) is kept. nil arguments are ignored.
func FurthestAlong(a, b *ScanError) *ScanError {
	if a == nil {
		return b
	}
	if b == nil || a.Offset >= b.Offset {
		return a
	}
	return b
}
