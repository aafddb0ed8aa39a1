package delta

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument reports a nil collaborator, dataset or derived key.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDuplicateKey reports two items resolving to the same natural key
	// where uniqueness is required.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrInvalidCombination reports a per-key operation pair that cannot
	// occur under well-formed sequential diffs.
	ErrInvalidCombination = errors.New("invalid combination")
)

// DuplicateKeyError carries the offending key and the dataset it was found
// in: "before" or "after" for diffing, "items" for the snapshot passed to
// Apply, or "operations" for an insert clashing with an existing key during
// Apply.
type DuplicateKeyError[K comparable] struct {
	Source string
	Key    K
}

func (e *DuplicateKeyError[K]) Error() string {
	return fmt.Sprintf("duplicate key %v in %s", e.Key, e.Source)
}

func (e *DuplicateKeyError[K]) Unwrap() error {
	return ErrDuplicateKey
}

// InvalidCombinationError carries the two operation kinds, in
// first-then-second order, that cannot be combined.
type InvalidCombinationError struct {
	First  Kind
	Second Kind
}

func (e *InvalidCombinationError) Error() string {
	return fmt.Sprintf("can't combine %s with %s", e.First, e.Second)
}

func (e *InvalidCombinationError) Unwrap() error {
	return ErrInvalidCombination
}
