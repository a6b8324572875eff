package policy

import (
	"unicode"
	"unicode/utf8"
)

var (
	// Wordish slices a maximal run of letters, digits, marks, and connector punctuation,
	// or else a single non-space rune.
	Wordish Words = wordish{}

	// NonSpace slices a maximal run of non-whitespace runes.
	NonSpace Words = nonSpace{}
)

// IsWordRune reports whether r may be a part of a multi-rune word.
func IsWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) || unicode.Is(unicode.Pc, r)
}

// WordLen returns the byte length of the leading run of word runes in s.
func WordLen(s string) int {
	for i, r := range s {
		if !IsWordRune(r) {
			return i
		}
	}
	return len(s)
}

// NonSpaceLen returns the byte length of the leading run of non-whitespace runes in s.
func NonSpaceLen(s string) int {
	for i, r := range s {
		if unicode.IsSpace(r) {
			return i
		}
	}
	return len(s)
}

type wordish struct{}

func (wordish) NextWord(s string) int {
	n := WordLen(s)
	if n > 0 {
		return n
	}

	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || unicode.IsSpace(r) {
		return 0
	}
	return size
}

func (wordish) String() string {
	return "wordish"
}

type nonSpace struct{}

func (nonSpace) NextWord(s string) int {
	return NonSpaceLen(s)
}

func (nonSpace) String() string {
	return "non-space"
}
