package lexer

import (
	"github.com/ava12/quickscan/source"
)

type Token struct {
	tokenType int
	typeName  string
	text      string
	pos       source.Pos
}

func (t *Token) Type() int {
	return t.tokenType
}

func (t *Token) TypeName() string {
	return t.typeName
}

func (t *Token) Text() string {
	return t.text
}

func (t *Token) Pos() source.Pos {
	return t.pos
}

func (t *Token) Source() *source.Source {
	return t.pos.Source()
}

func (t *Token) SourceName() string {
	return t.pos.SourceName()
}

// Offset returns byte offset of the token in its source.
func (t *Token) Offset() int {
	return t.pos.Pos()
}

func (t *Token) Line() int {
	return t.pos.Line()
}

func (t *Token) Col() int {
	return t.pos.Col()
}

func NewToken(tokenType int, typeName, text string, pos source.Pos) *Token {
	return &Token{tokenType, typeName, text, pos}
}

const (
	EofTokenType    = -2
	LowestTokenType = -2
	EofTokenName    = "-end-of-file-"
)

func EofToken(s *source.Source) *Token {
	pos := source.NewPos(s, 0)
	if s != nil {
		pos = source.NewPos(s, s.Len())
	}
	return &Token{tokenType: EofTokenType, typeName: EofTokenName, pos: pos}
}
