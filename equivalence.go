package delta

import "reflect"

// NaturalKey derives the stable identity of a dataset item, used to
// correlate the same logical record across snapshots. Implementations must
// be total and deterministic; a nil-valued key is an invalid-argument error.
type NaturalKey[T any, K comparable] func(item T) K

// Equivalence decides whether two items with the same key count as
// unchanged. Implementations must be reflexive and symmetric over
// well-formed items.
type Equivalence[T any] func(left, right T) bool

// DefaultEquivalence returns the default item equivalence: structural
// equality via reflect.DeepEqual.
func DefaultEquivalence[T any]() Equivalence[T] {
	return func(left, right T) bool {
		return reflect.DeepEqual(left, right)
	}
}

// Essence distills an item down to the features that matter for equivalence
// comparisons. Implementations typically return a copy of the item with
// fields zeroed where they are inessential for comparison.
type Essence[T, U any] func(item T) U

// Equivalence derives an item equivalence from the essence, comparing
// distilled items with [DefaultEquivalence].
func (e Essence[T, U]) Equivalence() Equivalence[T] {
	return e.EquivalenceWith(DefaultEquivalence[U]())
}

// EquivalenceWith derives an item equivalence from the essence, comparing
// distilled items with inner. A nil inner falls back to [DefaultEquivalence].
func (e Essence[T, U]) EquivalenceWith(inner Equivalence[U]) Equivalence[T] {
	if inner == nil {
		inner = DefaultEquivalence[U]()
	}
	return func(left, right T) bool {
		return inner(e(left), e(right))
	}
}
