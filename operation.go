package delta

import (
	"fmt"
	"reflect"
)

// Kind discriminates the three operation variants.
type Kind uint8

const (
	InsertKind Kind = iota + 1
	UpdateKind
	DeleteKind
)

func (k Kind) String() string {
	switch k {
	case InsertKind:
		return "insert"
	case UpdateKind:
		return "update"
	case DeleteKind:
		return "delete"
	}
	return "invalid"
}

// Operation is a single per-key change: an insert carrying the new item, an
// update carrying the old and new items, or a delete carrying the old item.
// A variant never carries a value it doesn't declare. Operations are
// immutable values; the zero Operation is invalid and is never produced by
// [Insert], [Update], [Delete] or any algorithm in this package.
type Operation[T any] struct {
	kind Kind
	old  T
	new  T
}

// Insert returns an operation recording that item appeared.
func Insert[T any](item T) Operation[T] {
	return Operation[T]{kind: InsertKind, new: item}
}

// Update returns an operation recording that an item changed from before to
// after under the same key.
func Update[T any](before, after T) Operation[T] {
	return Operation[T]{kind: UpdateKind, old: before, new: after}
}

// Delete returns an operation recording that item disappeared.
func Delete[T any](item T) Operation[T] {
	return Operation[T]{kind: DeleteKind, old: item}
}

// Kind returns the variant of the operation.
func (op Operation[T]) Kind() Kind {
	return op.kind
}

// Old returns the previous value of the affected item. It reports false for
// inserts, which have no prior value.
func (op Operation[T]) Old() (T, bool) {
	if op.kind == UpdateKind || op.kind == DeleteKind {
		return op.old, true
	}
	var zero T
	return zero, false
}

// New returns the current value of the affected item. It reports false for
// deletes, which have no current value.
func (op Operation[T]) New() (T, bool) {
	if op.kind == InsertKind || op.kind == UpdateKind {
		return op.new, true
	}
	var zero T
	return zero, false
}

// Equal reports whether two operations have the same kind and structurally
// equal carried values.
func (op Operation[T]) Equal(other Operation[T]) bool {
	if op.kind != other.kind {
		return false
	}
	switch op.kind {
	case InsertKind:
		return reflect.DeepEqual(op.new, other.new)
	case UpdateKind:
		return reflect.DeepEqual(op.old, other.old) && reflect.DeepEqual(op.new, other.new)
	case DeleteKind:
		return reflect.DeepEqual(op.old, other.old)
	}
	return true
}

func (op Operation[T]) String() string {
	switch op.kind {
	case InsertKind:
		return fmt.Sprintf("insert(%v)", op.new)
	case UpdateKind:
		return fmt.Sprintf("update(%v -> %v)", op.old, op.new)
	case DeleteKind:
		return fmt.Sprintf("delete(%v)", op.old)
	}
	return "invalid"
}

// Combine collapses two changes to the same key, occurring in sequence (op
// then other), into a single equivalent change. The result is three-way:
// a produced operation (op, true, nil), a no-op when the pair nets to no
// observable change (zero, false, nil), or an error for pairs that cannot
// occur under well-formed sequential diffs.
//
// The pairwise table, with op down the side and other across the top:
//
//	          Insert              Update                 Delete
//	Insert    error               Insert(other.new)      no-op
//	Update    error               Update(op.old,         Delete(op.old)
//	                              other.new) or no-op
//	Delete    Update(op.old,      error                  error
//	          other.new) or no-op
//
// The "or no-op" cells resolve to a no-op when equivalent reports the net
// old and new values unchanged. Errors unwrap to [ErrInvalidCombination]
// and carry both kinds.
func (op Operation[T]) Combine(other Operation[T], equivalent Equivalence[T]) (Operation[T], bool, error) {
	var zero Operation[T]
	if equivalent == nil {
		return zero, false, fmt.Errorf("%w: equivalent must not be nil", ErrInvalidArgument)
	}
	switch op.kind {
	case InsertKind:
		switch other.kind {
		case InsertKind:
			return zero, false, &InvalidCombinationError{First: InsertKind, Second: InsertKind}
		case UpdateKind:
			return Insert(other.new), true, nil
		case DeleteKind:
			return zero, false, nil
		}
	case UpdateKind:
		switch other.kind {
		case InsertKind:
			return zero, false, &InvalidCombinationError{First: UpdateKind, Second: InsertKind}
		case UpdateKind:
			if equivalent(op.old, other.new) {
				return zero, false, nil
			}
			return Update(op.old, other.new), true, nil
		case DeleteKind:
			// The delete keeps the old value the update started from, so
			// the combined delta still describes the original snapshot.
			return Delete(op.old), true, nil
		}
	case DeleteKind:
		switch other.kind {
		case InsertKind:
			if equivalent(op.old, other.new) {
				return zero, false, nil
			}
			return Update(op.old, other.new), true, nil
		case UpdateKind:
			return zero, false, &InvalidCombinationError{First: DeleteKind, Second: UpdateKind}
		case DeleteKind:
			return zero, false, &InvalidCombinationError{First: DeleteKind, Second: DeleteKind}
		}
	}
	return zero, false, fmt.Errorf("%w: combine on invalid operation", ErrInvalidArgument)
}
