package scanner

import (
	"math"
	"regexp"
	"strconv"
	"unicode/utf8"

	"github.com/ava12/quickscan"
	"github.com/ava12/quickscan/policy"
)

// Signed is a constraint matching signed integer types.
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned is a constraint matching unsigned integer types.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Integer is a constraint matching all integer types.
type Integer interface {
	Signed | Unsigned
}

// Float is a constraint matching floating point types.
type Float interface {
	~float32 | ~float64
}

func intProps[T Integer]() (bits int, signed bool) {
	var x T
	x--
	signed = x < 0
	for v := T(1); v != 0; v <<= 1 {
		bits++
	}
	return
}

func parseInt[T Integer](text string, base int) (T, error) {
	bits, signed := intProps[T]()
	if signed {
		v, e := strconv.ParseInt(text, base, bits)
		return T(v), e
	}
	v, e := strconv.ParseUint(text, base, bits)
	return T(v), e
}

func digitLen(s string, base int) int {
	for i := 0; i < len(s); i++ {
		c := s[i]
		var d int
		switch {
		case c >= '0' && c <= '9':
			d = int(c - '0')
		case c >= 'a' && c <= 'z':
			d = int(c-'a') + 10
		case c >= 'A' && c <= 'Z':
			d = int(c-'A') + 10
		default:
			return i
		}
		if d >= base {
			return i
		}
	}
	return len(s)
}

type intScanner[T Integer] struct {
	base int
	desc string
}

func (sc intScanner[T]) Scan(s string) (T, int, error) {
	_, signed := intProps[T]()
	n := 0
	if sc.base == 10 && len(s) > 0 && (s[0] == '+' || (s[0] == '-' && signed)) {
		n = 1
	}
	l := digitLen(s[n:], sc.base)
	if l == 0 {
		return 0, 0, syntax(sc.desc)
	}

	n += l
	res, e := parseInt[T](s[:n], sc.base)
	if e != nil {
		return 0, 0, quickscan.WrapError(quickscan.Other, 0, e)
	}
	return res, n, nil
}

// Int scans a decimal integer with optional sign ("-" is accepted for signed types only).
func Int[T Integer]() Scanner[T] {
	return intScanner[T]{10, "expected integer"}
}

// Hex scans hexadecimal digits with no prefix or sign.
func Hex[T Integer]() Scanner[T] {
	return intScanner[T]{16, "expected hex integer"}
}

// Octal scans octal digits with no prefix or sign.
func Octal[T Integer]() Scanner[T] {
	return intScanner[T]{8, "expected octal integer"}
}

// Binary scans binary digits with no prefix or sign.
func Binary[T Integer]() Scanner[T] {
	return intScanner[T]{2, "expected binary integer"}
}

var floatRe = regexp.MustCompile(`^[+-]?(?:(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:[eE][+-]?[0-9]+)?|(?i:infinity|inf|nan))`)

type floatScanner[T Float] struct{}

func (floatScanner[T]) Scan(s string) (T, int, error) {
	n := len(floatRe.FindString(s))
	if n == 0 {
		return 0, 0, syntax("expected float")
	}

	bits := 64
	x := T(math.MaxFloat32)
	x *= 2
	if math.IsInf(float64(x), 1) {
		bits = 32
	}

	v, e := strconv.ParseFloat(s[:n], bits)
	if e != nil {
		return 0, 0, quickscan.WrapError(quickscan.Other, 0, e)
	}
	return T(v), n, nil
}

// FloatOf scans a floating point number in decimal notation, "inf", "infinity", or "nan" (case insensitive).
func FloatOf[T Float]() Scanner[T] {
	return floatScanner[T]{}
}

// Bool scans exactly "true" or "false" word.
var Bool Scanner[bool] = Func[bool](func(s string) (bool, int, error) {
	n := policy.WordLen(s)
	switch s[:n] {
	case "true":
		return true, n, nil
	case "false":
		return false, n, nil
	default:
		return false, 0, syntax("expected `true` or `false`")
	}
})

// Rune scans a single code point.
var Rune Scanner[rune] = Func[rune](func(s string) (rune, int, error) {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return 0, 0, syntax("expected a character")
	}
	return r, n, nil
})
