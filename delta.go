package delta

import (
	"iter"
	"maps"
)

// Delta is an immutable mapping from natural key to [Operation]. The zero
// value is the empty delta. A Delta never holds an entry that nets to no
// observable change: diffing equivalent items, or combining operations that
// cancel out, leaves the key absent.
//
// Deltas own their backing map: every constructor copies in, and
// [Delta.Operations] copies out, so no caller can alias internal state.
type Delta[T any, K comparable] struct {
	ops map[K]Operation[T]
}

// Empty returns the empty delta.
func Empty[T any, K comparable]() Delta[T, K] {
	return Delta[T, K]{}
}

// newDelta wraps ops without copying. Callers must hand over ownership.
func newDelta[T any, K comparable](ops map[K]Operation[T]) Delta[T, K] {
	return Delta[T, K]{ops: ops}
}

// Operations returns a copy of the delta's operations keyed by natural key.
func (d Delta[T, K]) Operations() map[K]Operation[T] {
	if len(d.ops) == 0 {
		return map[K]Operation[T]{}
	}
	return maps.Clone(d.ops)
}

// All iterates over the delta's operations without copying. Iteration order
// is unspecified.
func (d Delta[T, K]) All() iter.Seq2[K, Operation[T]] {
	return func(yield func(K, Operation[T]) bool) {
		for key, op := range d.ops {
			if !yield(key, op) {
				return
			}
		}
	}
}

// Get returns the operation for key, if any.
func (d Delta[T, K]) Get(key K) (Operation[T], bool) {
	op, ok := d.ops[key]
	return op, ok
}

// IsEmpty reports whether the delta holds no operations.
func (d Delta[T, K]) IsEmpty() bool {
	return len(d.ops) == 0
}

// Len returns the number of operations in the delta.
func (d Delta[T, K]) Len() int {
	return len(d.ops)
}

// Equal reports whether two deltas hold structurally equal operations under
// the same keys.
func (d Delta[T, K]) Equal(other Delta[T, K]) bool {
	if len(d.ops) != len(other.ops) {
		return false
	}
	for key, op := range d.ops {
		otherOp, ok := other.ops[key]
		if !ok || !op.Equal(otherOp) {
			return false
		}
	}
	return true
}

// Inserts returns the delta's insert operations keyed by natural key.
func (d Delta[T, K]) Inserts() map[K]Operation[T] {
	return d.byKind(InsertKind)
}

// Updates returns the delta's update operations keyed by natural key.
func (d Delta[T, K]) Updates() map[K]Operation[T] {
	return d.byKind(UpdateKind)
}

// Deletes returns the delta's delete operations keyed by natural key.
func (d Delta[T, K]) Deletes() map[K]Operation[T] {
	return d.byKind(DeleteKind)
}

// InsertedItems returns the items added by the delta, in unspecified order.
func (d Delta[T, K]) InsertedItems() []T {
	items := []T{}
	for _, op := range d.ops {
		if op.kind == InsertKind {
			items = append(items, op.new)
		}
	}
	return items
}

// UpdatedItems returns the post-update values of items changed by the delta,
// in unspecified order.
func (d Delta[T, K]) UpdatedItems() []T {
	items := []T{}
	for _, op := range d.ops {
		if op.kind == UpdateKind {
			items = append(items, op.new)
		}
	}
	return items
}

// DeletedItems returns the items removed by the delta, in unspecified order.
func (d Delta[T, K]) DeletedItems() []T {
	items := []T{}
	for _, op := range d.ops {
		if op.kind == DeleteKind {
			items = append(items, op.old)
		}
	}
	return items
}

func (d Delta[T, K]) byKind(kind Kind) map[K]Operation[T] {
	ops := map[K]Operation[T]{}
	for key, op := range d.ops {
		if op.kind == kind {
			ops[key] = op
		}
	}
	return ops
}
