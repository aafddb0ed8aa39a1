package delta

import (
	"fmt"

	"github.com/megaslice/go-delta/debug"
)

// Apply replays the delta onto a snapshot, producing the post-change
// snapshot. Surviving items keep their input order; inserted items are
// appended in unspecified order.
//
// Items matched by an update are replaced with the update's new value;
// items matched by no operation pass through unchanged, as do items matched
// by an unconsumed insert or delete at this stage. Remaining inserts then
// add their item, and every other remaining operation removes its key. An
// update whose key has no matching input item is discarded, not applied as
// an insert.
//
// Apply fails with an error unwrapping to [ErrDuplicateKey] if a key repeats
// within items, or if a remaining insert clashes with a key already present.
func (d Delta[T, K]) Apply(items []T, keyOf NaturalKey[T, K]) ([]T, error) {
	if items == nil {
		return nil, fmt.Errorf("%w: items must not be nil", ErrInvalidArgument)
	}
	if keyOf == nil {
		return nil, fmt.Errorf("%w: keyOf must not be nil", ErrInvalidArgument)
	}

	remaining := d.Operations()
	byKey := make(map[K]T, len(items))
	order := make([]K, 0, len(items))

	for _, item := range items {
		key, err := deriveKey(item, keyOf)
		if err != nil {
			return nil, err
		}
		if _, dup := byKey[key]; dup {
			return nil, &DuplicateKeyError[K]{Source: "items", Key: key}
		}
		byKey[key] = d.applied(key, item, remaining)
		order = append(order, key)
	}

	inserted, err := applyRemaining(remaining, byKey)
	if err != nil {
		return nil, err
	}
	order = append(order, inserted...)

	result := make([]T, 0, len(byKey))
	for _, key := range order {
		if item, ok := byKey[key]; ok {
			result = append(result, item)
		}
	}

	if debug.Apply() {
		debug.Logf("apply: %d ops to %d items -> %d items\n", d.Len(), len(items), len(result))
	}
	return result, nil
}

// ApplyMap is [Apply] for snapshots already keyed by natural key.
func (d Delta[T, K]) ApplyMap(items map[K]T) (map[K]T, error) {
	if items == nil {
		return nil, fmt.Errorf("%w: items must not be nil", ErrInvalidArgument)
	}

	remaining := d.Operations()
	byKey := make(map[K]T, len(items))

	for key, item := range items {
		if err := checkKey(key); err != nil {
			return nil, err
		}
		byKey[key] = d.applied(key, item, remaining)
	}

	if _, err := applyRemaining(remaining, byKey); err != nil {
		return nil, err
	}

	if debug.Apply() {
		debug.Logf("apply: %d ops to %d items -> %d items\n", d.Len(), len(items), len(byKey))
	}
	return byKey, nil
}

// applied resolves one input item against the delta: an update for its key
// replaces the item and is consumed from remaining, anything else passes the
// item through.
func (d Delta[T, K]) applied(key K, item T, remaining map[K]Operation[T]) T {
	if op, ok := d.ops[key]; ok && op.kind == UpdateKind {
		delete(remaining, key)
		return op.new
	}
	return item
}

// applyRemaining applies the operations left unmatched by the input pass:
// inserts add their item, updates and deletes remove their key (idempotent
// if absent). Returns the keys inserted.
func applyRemaining[T any, K comparable](remaining map[K]Operation[T], byKey map[K]T) ([]K, error) {
	var inserted []K
	for key, op := range remaining {
		if op.kind != InsertKind {
			delete(byKey, key)
			continue
		}
		if _, dup := byKey[key]; dup {
			return nil, &DuplicateKeyError[K]{Source: "operations", Key: key}
		}
		byKey[key] = op.new
		inserted = append(inserted, key)
	}
	return inserted, nil
}
