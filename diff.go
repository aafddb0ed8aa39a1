package delta

import (
	"fmt"
	"iter"
	"reflect"
	"slices"

	"github.com/megaslice/go-delta/debug"
)

// Diff computes the minimal delta describing how after differs from before.
// Identity is established by keyOf; items sharing a key are compared with
// the configured equivalence (structural equality unless overridden with
// [WithEquivalence]). Iteration order of the inputs does not affect the
// result.
//
// Diff fails with an error unwrapping to [ErrDuplicateKey] if a key repeats
// within before or within after, and with [ErrInvalidArgument] if keyOf is
// nil or derives a nil key.
func Diff[T any, K comparable](before, after []T, keyOf NaturalKey[T, K], opts ...Option[T]) (Delta[T, K], error) {
	return DiffSeq(slices.Values(before), slices.Values(after), keyOf, opts...)
}

// DiffSeq is [Diff] over arbitrary iteration sequences.
func DiffSeq[T any, K comparable](before, after iter.Seq[T], keyOf NaturalKey[T, K], opts ...Option[T]) (Delta[T, K], error) {
	var zero Delta[T, K]
	if before == nil {
		return zero, fmt.Errorf("%w: before must not be nil", ErrInvalidArgument)
	}
	if after == nil {
		return zero, fmt.Errorf("%w: after must not be nil", ErrInvalidArgument)
	}
	if keyOf == nil {
		return zero, fmt.Errorf("%w: keyOf must not be nil", ErrInvalidArgument)
	}
	cfg, err := newConfig(opts)
	if err != nil {
		return zero, err
	}

	// Seed every before item as a delete, then let the after pass resolve
	// each key to an insert, an update, or nothing.
	ops := map[K]Operation[T]{}
	nBefore := 0
	for item := range before {
		key, err := deriveKey(item, keyOf)
		if err != nil {
			return zero, err
		}
		if _, dup := ops[key]; dup {
			return zero, &DuplicateKeyError[K]{Source: "before", Key: key}
		}
		ops[key] = Delete(item)
		nBefore++
	}

	// Keys whose before and after items were equivalent: their entries are
	// gone from ops, so repeats in after need separate detection.
	resolved := map[K]struct{}{}
	nAfter := 0
	for item := range after {
		key, err := deriveKey(item, keyOf)
		if err != nil {
			return zero, err
		}
		nAfter++
		if _, dup := resolved[key]; dup {
			return zero, &DuplicateKeyError[K]{Source: "after", Key: key}
		}
		existing, ok := ops[key]
		switch {
		case !ok:
			ops[key] = Insert(item)
		case existing.kind == DeleteKind:
			if cfg.equivalent(existing.old, item) {
				delete(ops, key)
				resolved[key] = struct{}{}
			} else {
				ops[key] = Update(existing.old, item)
			}
		default:
			return zero, &DuplicateKeyError[K]{Source: "after", Key: key}
		}
	}

	if debug.Diff() {
		debug.Logf("diff: %d before, %d after -> %d ops\n", nBefore, nAfter, len(ops))
	}
	return newDelta(ops), nil
}

// DiffMaps is [Diff] for datasets already keyed by natural key. Key
// extraction is implicit and map semantics rule out duplicate keys.
func DiffMaps[T any, K comparable](before, after map[K]T, opts ...Option[T]) (Delta[T, K], error) {
	var zero Delta[T, K]
	cfg, err := newConfig(opts)
	if err != nil {
		return zero, err
	}

	ops := make(map[K]Operation[T], len(before))
	for key, item := range before {
		if err := checkKey(key); err != nil {
			return zero, err
		}
		ops[key] = Delete(item)
	}
	for key, item := range after {
		if err := checkKey(key); err != nil {
			return zero, err
		}
		old, ok := before[key]
		switch {
		case !ok:
			ops[key] = Insert(item)
		case cfg.equivalent(old, item):
			delete(ops, key)
		default:
			ops[key] = Update(old, item)
		}
	}

	if debug.Diff() {
		debug.Logf("diff: %d before, %d after -> %d ops\n", len(before), len(after), len(ops))
	}
	return newDelta(ops), nil
}

func deriveKey[T any, K comparable](item T, keyOf NaturalKey[T, K]) (K, error) {
	key := keyOf(item)
	if isNil(key) {
		var zero K
		return zero, fmt.Errorf("%w: nil key for item: %v", ErrInvalidArgument, item)
	}
	return key, nil
}

func checkKey[K comparable](key K) error {
	if isNil(key) {
		return fmt.Errorf("%w: key must not be nil", ErrInvalidArgument)
	}
	return nil
}

// isNil reports whether v is a nil pointer, interface or channel. Value
// kinds have no nil and always report false.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Chan, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}
