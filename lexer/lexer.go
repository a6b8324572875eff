// Package lexer defines lexical analyzer.
package lexer

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/ava12/quickscan"
	"github.com/ava12/quickscan/source"
)

const (
	// ErrorTokenType is the type for fake tokens capturing broken lexemes (e.g. incorrect string literals).
	// The purpose of these tokens is to generate more informative error messages.
	// Lexer will never return a token of this type, an error with message containing token text will be returned instead.
	ErrorTokenType = LowestTokenType - 1

	// ErrorTokenName is the type name for ErrorTokenType.
	ErrorTokenName = "-error-"
)

// Error codes used by lexer:
const (
	// WrongCharError indicates that lexer cannot fetch any token at current position.
	// Error message contains the rune at current source position.
	WrongCharError = quickscan.LexicalErrors + iota

	// BadTokenError indicates that lexer has fetched a token of ErrorTokenType.
	BadTokenError
)

// TokenType describes token type for specific capturing group of regular expression.
type TokenType struct {
	// Type contains token type, may be any value. ErrorTokenType is treated specially.
	Type int

	// TypeName contains token type name, may be any value.
	TypeName string
}

// Lexer performs lexical analysis of a source using regexp.Regexp.
// Lexer is immutable, stateless, and safe for concurrent use.
// Each token type that may be returned by lexer maps to its own regexp capturing group index.
// A match containing no captured groups is treated as insignificant lexeme (e.g. whitespace),
// in this case lexer tries to fetch a token again at new position.
// Every byte of source must belong to some lexeme.
type Lexer struct {
	types []TokenType
	re    *regexp.Regexp
}

// New creates new Lexer.
// Each n-th element of types describes token type for (n+1)-th regexp capturing group.
// A group that has no description or that has negative token type is treated as ErrorTokenType.
func New(re *regexp.Regexp, types []TokenType) *Lexer {
	ts := make([]TokenType, len(types))
	for i, t := range types {
		ts[i].TypeName = t.TypeName
		if t.Type >= 0 {
			ts[i].Type = t.Type
		} else {
			ts[i].Type = ErrorTokenType
			ts[i].TypeName = ErrorTokenName
		}
	}
	return &Lexer{types: ts, re: re}
}

func wrongCharError(s *source.Source, pos int) *quickscan.Error {
	r, _ := utf8.DecodeRuneInString(s.Text()[pos:])
	line, col := s.LineCol(pos)
	msg := fmt.Sprintf("wrong char %q (u+%x)", r, r)
	return quickscan.NewError(WrongCharError, msg, s.Name(), line, col)
}

func wrongTokenError(t *Token) *quickscan.Error {
	return quickscan.FormatErrorPos(t, BadTokenError, "bad token %q", t.Text())
}

func (l *Lexer) matchToken(src *source.Source, pos int) (*Token, int, error) {
	content := src.Text()[pos:]
	match := l.re.FindStringSubmatchIndex(content)
	if len(match) == 0 || match[0] != 0 || match[1] <= match[0] {
		return nil, 0, wrongCharError(src, pos)
	}

	for i := 2; i < len(match); i += 2 {
		if match[i] < 0 || match[i+1] < 0 {
			continue
		}

		sp := source.NewPos(src, pos+match[i])
		tokenType := ErrorTokenType
		typeName := ErrorTokenName
		if len(l.types) >= (i >> 1) {
			tokenType = l.types[(i>>1)-1].Type
			typeName = l.types[(i>>1)-1].TypeName
		}
		token := NewToken(tokenType, typeName, content[match[i]:match[i+1]], sp)
		if tokenType == ErrorTokenType {
			return nil, 0, wrongTokenError(token)
		}

		return token, match[1], nil
	}

	return nil, match[1], nil
}

// Next fetches token starting at byte offset pos of src.
// Returns the token and the offset following it.
// Returns EoF token if there is nothing but insignificant lexemes left.
// Returns nil token and quickscan.Error if there is a lexical error.
func (l *Lexer) Next(src *source.Source, pos int) (*Token, int, error) {
	for pos < src.Len() {
		t, advance, e := l.matchToken(src, pos)
		if e != nil {
			return nil, pos, e
		}

		pos += advance
		if t != nil {
			return t, pos, nil
		}
	}

	return EofToken(src), pos, nil
}

// Tokens fetches all tokens of src. The last token is always EoF token.
func (l *Lexer) Tokens(src *source.Source) ([]*Token, error) {
	var res []*Token
	pos := 0
	for {
		t, next, e := l.Next(src, pos)
		if e != nil {
			return nil, e
		}

		res = append(res, t)
		if t.Type() == EofTokenType {
			return res, nil
		}
		pos = next
	}
}
