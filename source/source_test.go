package source

import (
	"testing"
)

type result struct {
	pos, line, col int
}

func TestSourceLineCol(t *testing.T) {
	samples := map[string][]result{
		"": {
			{0, 1, 1},
			{100, 1, 1},
			{100, 1, 1},
		},
		"\n": {
			{0, 1, 1},
			{1, 2, 1},
			{1, 2, 1},
			{1, 2, 1},
			{100, 2, 1},
			{100, 2, 1},
		},
		"0\n2\n4\n6789abcde\ng\ni\n": {
			{4, 3, 1},
			{5, 3, 2},
			{6, 4, 1},
			{7, 4, 2},
			{8, 4, 3},
			{9, 4, 4},
			{10, 4, 5},
			{11, 4, 6},
			{12, 4, 7},
			{13, 4, 8},
			{14, 4, 9},
			{19, 6, 2},
			{20, 7, 1},
			{9, 4, 4},
			{5, 3, 2},
		},
	}

	for text, results := range samples {
		source := New("", text)
		for _, res := range results {
			l, c := source.LineCol(res.pos)
			if l != res.line || c != res.col {
				t.Errorf("sample %q: expected %v, got line: %d, col: %d", text, res, l, c)
			}
		}
	}
}

func TestSourcePos(t *testing.T) {
	samples := map[string][]result{
		"": {
			{0, 0, 1},
			{0, 1, 0},
			{0, 1, 1},
			{0, 1, 2},
			{0, 2, 1},
		},
		" ": {
			{0, 0, 1},
			{0, 1, 0},
			{0, 1, 1},
			{1, 1, 2},
			{1, 2, 1},
		},
		"\n": {
			{0, 0, 1},
			{0, 1, 0},
			{0, 1, 1},
			{1, 1, 2},
			{1, 2, 1},
			{1, 2, 2},
			{1, 3, 1},
		},
		"hello\nworld\n": {
			{0, 0, 1},
			{0, 1, 0},
			{0, 1, 1},
			{1, 1, 2},
			{6, 2, 1},
			{7, 2, 2},
			{12, 2, 10},
			{12, 3, 1},
			{12, 3, 2},
			{12, 4, 1},
		},
	}

	for text, results := range samples {
		source := New("", text)
		for _, res := range results {
			p := source.Pos(res.line, res.col)
			if p != res.pos {
				t.Errorf("sample %q: expected %v, got pos: %d", text, res, p)
			}
		}
	}
}

func TestLine(t *testing.T) {
	src := New("lines", "first\r\nsecond\n\nfourth")
	expected := []string{"", "first", "second", "", "fourth", ""}
	for i, line := range expected {
		got := src.Line(i)
		if got != line {
			t.Errorf("line %d: expected %q, got %q", i, line, got)
		}
	}
	if src.LineCount() != 4 {
		t.Errorf("expected 4 lines, got %d", src.LineCount())
	}
}

func TestCaret(t *testing.T) {
	samples := []struct {
		text     string
		pos      int
		expected string
	}{
		{"", 0, "\n^"},
		{"abc", 1, "abc\n ^"},
		{"abc", 3, "abc\n   ^"},
		{"x\n\tk = v\n", 6, "\tk = v\n\t   ^"},
		{"\u00e9t\u00e9 x", 6, "\u00e9t\u00e9 x\n    ^"},
	}

	for _, s := range samples {
		got := New("", s.text).Caret(s.pos)
		if got != s.expected {
			t.Errorf("sample %q at %d: expected %q, got %q", s.text, s.pos, s.expected, got)
		}
	}
}

func TestPos(t *testing.T) {
	src := New("name", "ab\ncd")
	p := NewPos(src, 4)
	if p.SourceName() != "name" || p.Pos() != 4 || p.Line() != 2 || p.Col() != 2 {
		t.Errorf("unexpected position %s:%d (%d:%d)", p.SourceName(), p.Pos(), p.Line(), p.Col())
	}
	if NewPos(nil, 3).Line() != 0 {
		t.Errorf("expecting no line number for nil source")
	}
}
