/*
Package quickscan is a scanf-style structured text scanner.

An input string is matched against an ordered list of rules. Each rule is a
sequence of terms (literal text, typed value captures, bounded repetitions,
and tail captures). The first rule that matches produces the result; when every
rule fails, the error that got furthest into the input is returned.

Consists of subpackages:
  - cmd/qscan: console utility scanning text files with patterns given on the command line or in pattern files;
  - cursor: immutable input cursor used by all scanning operations;
  - grammar: plain data description of rule sets, suitable for JSON, YAML, or TOML files;
  - langdef: converts textual pattern description to grammar description;
  - lexer: lexical analyzer used by langdef;
  - literal: whitespace and word boundary aware literal matcher;
  - policy: comparison, whitespace, and word slicing policies;
  - rule: rules, repetitions, captures, and the alternation engine;
  - scanner: scanner protocol and standard scanners;
  - source: line and column lookup for error messages.

Typical usage is:

1. Build rules from terms using rule package constructors,
or describe them in pattern language and compile them with rule.Compile.

2. Call rule.Scan with an input string and the rules.

3. Inspect either the handler result or *ScanError describing the furthest failure.
*/
package quickscan

import (
	"fmt"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	PatternErrors = 1   // used by langdef
	LexicalErrors = 101 // used by lexer
	CompileErrors = 201 // used by rule.Compile
	ScanErrors    = 301 // used by ScanError kinds
)

// Error is the error type used for pattern description errors.
// Scan failures are reported with ScanError.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Message contains non-empty error message including source name and position information if provided.
	Message string

	// SourceName contains pattern source name that caused this error or empty string.
	SourceName string

	// Line contains line number in pattern source or 0.
	Line int

	// Col contains column number in pattern source or 0.
	Col int
}

// SourcePos is used to retrieve source name and position information when constructing an error;
// lexer.Token implements this interface.
type SourcePos interface {
	// SourceName returns source name or empty string.
	SourceName() string
	// Line returns line number or 0.
	Line() int
	// Col returns column number or 0.
	Col() int
}

// NewError creates new Error structure.
// name, line, and col will be added to error message if provided (non-zero).
func NewError(code int, msg, name string, line, col int) *Error {
	if line != 0 && col != 0 {
		if name == "" {
			msg += fmt.Sprintf(" at line %d col %d", line, col)
		} else {
			msg += fmt.Sprintf(" in %s at line %d col %d", name, line, col)
		}
	}
	return &Error{code, msg, name, line, col}
}

// Error simply returns Error.Message.
func (e *Error) Error() string {
	return e.Message
}

// FormatError creates Error structure with no source and position information.
// params will be added to error message using fmt.Sprintf function.
func FormatError(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, "", 0, 0)
}

// FormatErrorPos creates Error structure with source and position information.
// pos must not be nil.
func FormatErrorPos(pos SourcePos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, pos.SourceName(), pos.Line(), pos.Col())
}
