package rule

import (
	"cmp"
	"fmt"
	"reflect"
	"strings"

	"github.com/spf13/cast"
	"github.com/tidwall/btree"
)

// Container accumulates values captured by repetition iterations.
type Container interface {
	// Add appends a value captured by one iteration.
	Add(v any) error
	// Value returns the accumulated value stored as repetition capture.
	Value() any
}

// NewContainer creates an empty container, one per capture name per repetition match.
type NewContainer func() Container

type anySlice struct {
	items []any
}

func (s *anySlice) Add(v any) error {
	s.items = append(s.items, v)
	return nil
}

func (s *anySlice) Value() any {
	return s.items
}

// SliceOf collects values into []any. This is the default container.
func SliceOf() Container {
	return &anySlice{items: []any{}}
}

type typedSlice[T any] struct {
	items []T
}

func (s *typedSlice[T]) Add(v any) error {
	item, valid := v.(T)
	if !valid {
		return fmt.Errorf("cannot add %T to %T", v, s.items)
	}
	s.items = append(s.items, item)
	return nil
}

func (s *typedSlice[T]) Value() any {
	return s.items
}

// Slice collects values into []T.
func Slice[T any]() NewContainer {
	return func() Container {
		return &typedSlice[T]{items: []T{}}
	}
}

func hashable(v any) bool {
	t := reflect.TypeOf(v)
	return t == nil || t.Comparable()
}

type set[T comparable] struct {
	items map[T]struct{}
}

func (s *set[T]) Add(v any) error {
	item, valid := v.(T)
	if !valid {
		return fmt.Errorf("cannot add %T to set of %T", v, item)
	}
	if !hashable(v) {
		return fmt.Errorf("cannot add unhashable %T to set", v)
	}
	s.items[item] = struct{}{}
	return nil
}

func (s *set[T]) Value() any {
	return s.items
}

// SetOf collects distinct values into map[T]struct{}.
func SetOf[T comparable]() NewContainer {
	return func() Container {
		return &set[T]{items: make(map[T]struct{})}
	}
}

// Pairer is implemented by scanned key-value pairs, see scanner.Pair.
type Pairer interface {
	PairValues() (any, any)
}

func splitPair[K, V any](v any) (K, V, error) {
	var (
		key K
		val V
	)
	p, valid := v.(Pairer)
	if !valid {
		return key, val, fmt.Errorf("expecting key-value pair, got %T", v)
	}

	kv, vv := p.PairValues()
	if key, valid = kv.(K); !valid {
		if _, isString := any(key).(string); !isString {
			return key, val, fmt.Errorf("map key is %T, not %T", kv, key)
		}
		s, e := cast.ToStringE(kv)
		if e != nil {
			return key, val, e
		}
		key = any(s).(K)
	}
	if val, valid = vv.(V); !valid {
		return key, val, fmt.Errorf("map value is %T, not %T", vv, val)
	}
	return key, val, nil
}

type hashMap[K comparable, V any] struct {
	items map[K]V
}

func (m *hashMap[K, V]) Add(v any) error {
	key, val, e := splitPair[K, V](v)
	if e == nil && !hashable(key) {
		e = fmt.Errorf("unhashable map key %T", key)
	}
	if e == nil {
		m.items[key] = val
	}
	return e
}

func (m *hashMap[K, V]) Value() any {
	return m.items
}

// MapOf collects key-value pairs into map[K]V. Later values overwrite earlier ones.
// Keys are converted to strings if K is string.
func MapOf[K comparable, V any]() NewContainer {
	return func() Container {
		return &hashMap[K, V]{items: make(map[K]V)}
	}
}

type sortedMap[K cmp.Ordered, V any] struct {
	items *btree.Map[K, V]
}

func (m *sortedMap[K, V]) Add(v any) error {
	key, val, e := splitPair[K, V](v)
	if e == nil {
		m.items.Set(key, val)
	}
	return e
}

func (m *sortedMap[K, V]) Value() any {
	return m.items
}

// SortedMapOf collects key-value pairs into *btree.Map[K, V] ordered by key.
func SortedMapOf[K cmp.Ordered, V any]() NewContainer {
	return func() Container {
		return &sortedMap[K, V]{items: btree.NewMap[K, V](0)}
	}
}

type joiner struct {
	sep   string
	parts []string
}

func (j *joiner) Add(v any) error {
	s, e := cast.ToStringE(v)
	if e == nil {
		j.parts = append(j.parts, s)
	}
	return e
}

func (j *joiner) Value() any {
	return strings.Join(j.parts, j.sep)
}

// Join converts values to strings and joins them with sep.
func Join(sep string) NewContainer {
	return func() Container {
		return &joiner{sep: sep}
	}
}

type counter struct {
	n int
}

func (c *counter) Add(any) error {
	c.n++
	return nil
}

func (c *counter) Value() any {
	return c.n
}

// Count counts values and drops them.
func Count() Container {
	return &counter{}
}
