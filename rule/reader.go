package rule

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ava12/quickscan"
)

type byteReader struct {
	r   io.Reader
	buf [1]byte
}

func (br *byteReader) ReadByte() (byte, error) {
	for {
		n, e := br.r.Read(br.buf[:])
		if n > 0 {
			return br.buf[0], nil
		}
		if e != nil {
			return 0, e
		}
	}
}

// readLine reads bytes up to line feed without reading past it.
// Returns io.EOF only if there is nothing to read.
func readLine(r io.Reader) (string, error) {
	br, is := r.(io.ByteReader)
	if !is {
		br = &byteReader{r: r}
	}

	var sb strings.Builder
	for {
		b, e := br.ReadByte()
		if e == io.EOF && sb.Len() > 0 {
			break
		}
		if e != nil {
			return "", e
		}
		if b == '\n' {
			break
		}
		sb.WriteByte(b)
	}
	return strings.TrimSuffix(sb.String(), "\r"), nil
}

// ScanReader reads a single line from r and scans it, line break is not included.
// Returns io.EOF if r is exhausted, other read errors are wrapped into IO scan error.
// Nothing past the line break is consumed from r.
func ScanReader[R any](r io.Reader, rules ...*Rule[R]) (R, error) {
	var zero R
	line, e := readLine(r)
	if e == io.EOF {
		return zero, e
	}
	if e != nil {
		return zero, quickscan.WrapError(quickscan.IO, 0, e)
	}
	return Scan(line, rules...)
}

// LineError is a scan error annotated with line number (starting with 1) and text.
type LineError struct {
	Line int
	Text string
	Err  *quickscan.ScanError
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// ScanLines scans every line of r using set s and calls f for each line.
// Scan errors are passed to f as *LineError, f decides whether to stop
// by returning non-nil error which is then returned by ScanLines.
// Read errors are returned as IO scan errors.
func ScanLines[R any](r io.Reader, s *Set[R], f func(line int, res R, e error) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(nil, 1<<20)
	line := 0
	offset := 0
	for sc.Scan() {
		line++
		text := strings.TrimSuffix(sc.Text(), "\r")
		res, e := s.Scan(text)
		if e != nil {
			e = &LineError{Line: line, Text: text, Err: quickscan.AsScanError(e)}
		}
		if e = f(line, res, e); e != nil {
			return e
		}
		offset += len(sc.Bytes()) + 1
	}

	if e := sc.Err(); e != nil {
		return quickscan.WrapError(quickscan.IO, offset, e)
	}
	return nil
}
