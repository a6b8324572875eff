package langdef

import (
	"github.com/ava12/quickscan"
	"github.com/ava12/quickscan/lexer"
)

// Error codes used by langdef:
const (
	UnexpectedEofError = quickscan.PatternErrors + iota
	UnexpectedTokenError
	InvalidEscapeError
	InvalidRuneError
	BadIntError
	BadBoundError
	UnknownContainerError
)

func eofError(token *lexer.Token) *quickscan.Error {
	return quickscan.FormatErrorPos(token, UnexpectedEofError, "unexpected EoF")
}

func unexpectedTokenError(token *lexer.Token) *quickscan.Error {
	return quickscan.FormatErrorPos(token, UnexpectedTokenError, "unexpected %s %q", token.TypeName(), token.Text())
}

func invalidEscapeError(token *lexer.Token, seq string) *quickscan.Error {
	return quickscan.FormatErrorPos(token, InvalidEscapeError, "invalid escape sequence %q", seq)
}

func invalidRuneError(token *lexer.Token, code string) *quickscan.Error {
	return quickscan.FormatErrorPos(token, InvalidRuneError, "invalid code point %s", code)
}

func badIntError(token *lexer.Token) *quickscan.Error {
	return quickscan.FormatErrorPos(token, BadIntError, "bad integer %s", token.Text())
}

func badBoundError(token *lexer.Token, lo, hi int) *quickscan.Error {
	return quickscan.FormatErrorPos(token, BadBoundError, "repetition minimum %d exceeds maximum %d", lo, hi)
}

func unknownContainerError(token *lexer.Token) *quickscan.Error {
	return quickscan.FormatErrorPos(token, UnknownContainerError, "unknown container %q", token.Text())
}

func unexpected(token *lexer.Token) *quickscan.Error {
	if token.Type() == lexer.EofTokenType {
		return eofError(token)
	}
	return unexpectedTokenError(token)
}
