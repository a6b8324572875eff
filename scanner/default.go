package scanner

import (
	"fmt"
	"net/netip"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Lookup returns default scanner for type T.
// Default scanners accept the text produced by fmt.Sprint for their types
// (time.Time is the exception, it uses RFC 3339 format).
// Types whose pointers implement Self are scanned with ScanFrom.
// Note that rune is int32 and byte is uint8, so they are scanned as integers.
func Lookup[T any]() (Scanner[T], bool) {
	var zero T
	var sc any
	switch any(zero).(type) {
	case int:
		sc = Int[int]()
	case int8:
		sc = Int[int8]()
	case int16:
		sc = Int[int16]()
	case int32:
		sc = Int[int32]()
	case int64:
		sc = Int[int64]()
	case uint:
		sc = Int[uint]()
	case uint8:
		sc = Int[uint8]()
	case uint16:
		sc = Int[uint16]()
	case uint32:
		sc = Int[uint32]()
	case uint64:
		sc = Int[uint64]()
	case uintptr:
		sc = Int[uintptr]()
	case float32:
		sc = FloatOf[float32]()
	case float64:
		sc = FloatOf[float64]()
	case bool:
		sc = Bool
	case string:
		sc = Wordish
	case time.Duration:
		sc = Duration
	case time.Time:
		sc = Time
	case netip.Addr:
		sc = Addr
	case netip.AddrPort:
		sc = AddrPort
	case decimal.Decimal:
		sc = Decimal
	case uuid.UUID:
		sc = UUID
	}

	if sc != nil {
		return sc.(Scanner[T]), true
	}
	if _, is := any(new(T)).(Self); is {
		return dynSelf[T]{}, true
	}
	return nil, false
}

// For returns default scanner for type T, see Lookup.
// Panics if there is no default scanner for T.
func For[T any]() Scanner[T] {
	sc, found := Lookup[T]()
	if !found {
		panic(fmt.Sprintf("no default scanner for type %v", reflect.TypeOf((*T)(nil)).Elem()))
	}
	return sc
}
