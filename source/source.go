// Package source maps byte offsets in a named text to line and column numbers.
package source

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Source is a named text with precomputed line starts.
// Source is immutable and safe for concurrent use.
type Source struct {
	name       string
	text       string
	lineStarts []int
}

// New creates a source. name may be empty.
func New(name, text string) *Source {
	s := &Source{name: name, text: text}
	lineCnt := strings.Count(text, "\n") + 1
	s.lineStarts = make([]int, lineCnt)
	j := 1
	for i := 0; i < len(text) && j < lineCnt; i++ {
		if text[i] == '\n' {
			s.lineStarts[j] = i + 1
			j++
		}
	}

	return s
}

func (s *Source) Name() string {
	return s.name
}

func (s *Source) Text() string {
	return s.text
}

func (s *Source) Len() int {
	return len(s.text)
}

// LineCount returns the number of lines, text ending with line feed has an empty last line.
func (s *Source) LineCount() int {
	return len(s.lineStarts)
}

// LineCol returns line and column numbers (both starting with 1) for a byte offset.
// Columns are counted in runes. Offsets outside the text are clamped.
func (s *Source) LineCol(pos int) (line, col int) {
	if pos < 0 {
		pos = 0
	} else if pos > len(s.text) {
		pos = len(s.text)
	}

	lineIndex := s.findLineIndex(pos)
	lineStart := s.lineStarts[lineIndex]
	return lineIndex + 1, utf8.RuneCountInString(s.text[lineStart:pos]) + 1
}

// Pos returns byte offset for line and byte column numbers, the result is clamped to the text.
func (s *Source) Pos(line, col int) int {
	if line <= 0 || col <= 0 {
		return 0
	}

	l := len(s.text)
	if line > len(s.lineStarts) {
		return l
	}

	res := s.lineStarts[line-1] + col - 1
	if res > l {
		return l
	}
	return res
}

func (s *Source) findLineIndex(pos int) int {
	return sort.Search(len(s.lineStarts), func(i int) bool {
		return s.lineStarts[i] > pos
	}) - 1
}

// Line returns n-th line (starting with 1) without line break, empty string if there is no such line.
func (s *Source) Line(n int) string {
	if n <= 0 || n > len(s.lineStarts) {
		return ""
	}

	start := s.lineStarts[n-1]
	end := len(s.text)
	if n < len(s.lineStarts) {
		end = s.lineStarts[n] - 1
	}
	return strings.TrimSuffix(s.text[start:end], "\r")
}

// Caret returns the line containing pos followed by a line with a caret under pos.
// Tabs in the line prefix are kept so that the caret is aligned.
func (s *Source) Caret(pos int) string {
	line, col := s.LineCol(pos)
	text := s.Line(line)
	var sb strings.Builder
	sb.WriteString(text)
	sb.WriteByte('\n')
	i := 1
	for _, r := range text {
		if i >= col {
			break
		}
		if r == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}
		i++
	}
	for ; i < col; i++ {
		sb.WriteByte(' ')
	}
	sb.WriteByte('^')
	return sb.String()
}

// Pos is a position in a source.
type Pos struct {
	src            *Source
	pos, line, col int
}

// NewPos creates position for byte offset pos.
func NewPos(s *Source, pos int) Pos {
	res := Pos{src: s, pos: pos}
	if s != nil {
		res.line, res.col = s.LineCol(pos)
	}
	return res
}

func (p Pos) Source() *Source {
	return p.src
}

func (p Pos) SourceName() string {
	if p.src == nil {
		return ""
	}
	return p.src.name
}

func (p Pos) Pos() int {
	return p.pos
}

func (p Pos) Line() int {
	return p.line
}

func (p Pos) Col() int {
	return p.col
}
