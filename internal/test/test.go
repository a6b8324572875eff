package test

import (
	"errors"
	"fmt"
	"runtime"
	"testing"

	"github.com/ava12/quickscan"
)

func fatalf(t *testing.T, message string, params ...any) {
	t.Helper()
	if len(params) > 0 {
		message = fmt.Sprintf(message, params...)
	}
	_, thisFile, _, _ := runtime.Caller(0)
	file := thisFile
	line := 0
	for i := 2; file == thisFile; i++ {
		_, file, line, _ = runtime.Caller(i)
	}
	t.Fatalf("%s at %s:%d", message, file, line)
}

func Assert(t *testing.T, cond bool, message string, params ...any) {
	if !cond {
		fatalf(t, message, params...)
	}
}

func Expect(t *testing.T, cond bool, expected, got any) {
	if !cond {
		fatalf(t, "expecting %v, got %v", expected, got)
	}
}

func ExpectBool(t *testing.T, expected, got bool) {
	Expect(t, expected == got, expected, got)
}

func ExpectInt(t *testing.T, expected, got int) {
	Expect(t, expected == got, expected, got)
}

func ExpectNoError(t *testing.T, e error) {
	if e != nil {
		fatalf(t, "unexpected error: %s", e)
	}
}

type coder interface {
	Code() int
}

// ExpectErrorCode accepts *quickscan.Error and *quickscan.ScanError, possibly wrapped.
func ExpectErrorCode(t *testing.T, expected int, e error) {
	var qe *quickscan.Error
	if errors.As(e, &qe) && qe.Code == expected {
		return
	}
	var c coder
	if errors.As(e, &c) && c.Code() == expected {
		return
	}

	fatalf(t, "expecting error code %d, got %v", expected, e)
}

func ExpectScanError(t *testing.T, kind quickscan.ErrorKind, offset int, e error) {
	var se *quickscan.ScanError
	if !errors.As(e, &se) {
		fatalf(t, "expecting %s error at %d, got %v", kind, offset, e)
		return
	}
	if se.Kind != kind || se.Offset != offset {
		fatalf(t, "expecting %s error at %d, got %s error at %d", kind, offset, se.Kind, se.Offset)
	}
}
