// Package delta computes and composes structural differences between two
// versions of a keyed dataset.
//
// A difference is expressed as a [Delta]: an immutable mapping from natural
// key to a single insert, update or delete [Operation]. Deltas are built by
// [Diff] (or [DiffSeq], [DiffMaps]), composed by [Delta.Combine], and
// replayed onto a snapshot by [Delta.Apply] or [Delta.ApplyMap].
//
// # Usage
//
//	// Compute a delta between two snapshots
//	d, err := delta.Diff(before, after, keyOf)
//
//	// Compose two deltas into one with the same net effect
//	both, err := d.Combine(next)
//
//	// Replay a delta onto a snapshot
//	updated, err := d.Apply(items, keyOf)
//
// Item identity is established by a caller-supplied [NaturalKey] function;
// whether two items with the same key count as changed is decided by an
// [Equivalence] predicate, defaulting to structural equality. Neither diffing
// nor applying depends on the iteration order of its inputs, only on key
// identity.
//
// All operations are pure functions of their inputs. A Delta is never
// mutated after construction and may be shared freely across goroutines.
package delta
