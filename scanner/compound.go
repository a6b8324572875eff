package scanner

import (
	"github.com/ava12/quickscan/cursor"
	"github.com/ava12/quickscan/policy"
)

// Apply runs sc at cursor c, skipping leading whitespace if sc wants it.
func Apply[T any](c cursor.Cursor, sc Scanner[T]) (T, cursor.Cursor, error) {
	if StripsLeading(sc) {
		return cursor.TryScan(c, sc.Scan)
	}
	return cursor.TryScanRaw(c, sc.Scan)
}

func optionalLiteral(c cursor.Cursor, lit string) cursor.Cursor {
	next, e := c.TryMatchLiteral(lit)
	if e != nil {
		return c
	}
	return next
}

type keyValue[K, V any] struct {
	p policy.Policy
	k Scanner[K]
	v Scanner[V]
}

func (kv keyValue[K, V]) Scan(s string) (Pair[K, V], int, error) {
	var res Pair[K, V]
	var e error
	c := cursor.NewWithPolicy(s, kv.p)
	res.Key, c, e = Apply(c, kv.k)
	if e == nil {
		c, e = c.TryMatchLiteral(":")
	}
	if e == nil {
		res.Value, c, e = Apply(c, kv.v)
	}
	if e != nil {
		return Pair[K, V]{}, 0, e
	}
	return res, c.Offset(), nil
}

// KeyValue scans "key: value" pair.
// Scanners have no access to the policy of enclosing cursor, so the colon and the whitespace
// around it are matched using policy.Default. Use KeyValueWith for other policies.
func KeyValue[K, V any](k Scanner[K], v Scanner[V]) Scanner[Pair[K, V]] {
	return KeyValueWith(policy.Default, k, v)
}

// KeyValueWith is the same as KeyValue, but matches punctuation and whitespace using policy p.
func KeyValueWith[K, V any](p policy.Policy, k Scanner[K], v Scanner[V]) Scanner[Pair[K, V]] {
	return keyValue[K, V]{p.Normalize(), k, v}
}

type tuple2[A, B any] struct {
	p policy.Policy
	a Scanner[A]
	b Scanner[B]
}

func (t tuple2[A, B]) Scan(s string) (Pair[A, B], int, error) {
	var res Pair[A, B]
	c, e := cursor.NewWithPolicy(s, t.p).TryMatchLiteral("(")
	if e == nil {
		res.Key, c, e = Apply(c, t.a)
	}
	if e == nil {
		c, e = c.TryMatchLiteral(",")
	}
	if e == nil {
		res.Value, c, e = Apply(c, t.b)
	}
	if e == nil {
		c, e = optionalLiteral(c, ",").TryMatchLiteral(")")
	}
	if e != nil {
		return Pair[A, B]{}, 0, e
	}
	return res, c.Offset(), nil
}

// Tuple2 scans "(a, b)" with optional trailing comma.
// Brackets, commas, and whitespace are matched using policy.Default, see KeyValue.
func Tuple2[A, B any](a Scanner[A], b Scanner[B]) Scanner[Pair[A, B]] {
	return Tuple2With(policy.Default, a, b)
}

func Tuple2With[A, B any](p policy.Policy, a Scanner[A], b Scanner[B]) Scanner[Pair[A, B]] {
	return tuple2[A, B]{p.Normalize(), a, b}
}

type list[T any] struct {
	p  policy.Policy
	sc Scanner[T]
}

func (l list[T]) Scan(s string) ([]T, int, error) {
	c, e := cursor.NewWithPolicy(s, l.p).TryMatchLiteral("[")
	if e != nil {
		return nil, 0, e
	}

	res := []T{}
	for {
		if next, e := c.TryMatchLiteral("]"); e == nil {
			return res, next.Offset(), nil
		}

		if len(res) > 0 {
			c, e = c.TryMatchLiteral(",")
			if e != nil {
				return nil, 0, e
			}
			if next, e := c.TryMatchLiteral("]"); e == nil {
				return res, next.Offset(), nil
			}
		}

		var item T
		item, c, e = Apply(c, l.sc)
		if e != nil {
			return nil, 0, e
		}
		res = append(res, item)
	}
}

// List scans "[a, b, ...]" with optional trailing comma, the list may be empty.
// Punctuation and whitespace are matched using policy.Default, see KeyValue.
func List[T any](sc Scanner[T]) Scanner[[]T] {
	return ListWith(policy.Default, sc)
}

func ListWith[T any](p policy.Policy, sc Scanner[T]) Scanner[[]T] {
	return list[T]{p.Normalize(), sc}
}
