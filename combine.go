package delta

import (
	"maps"

	"github.com/megaslice/go-delta/debug"
)

// Combine produces a delta equivalent to applying d then other in sequence,
// without needing the original datasets. Entries under distinct keys are
// merged; entries under the same key collapse per [Operation.Combine], with
// pairs that net to no change dropped from the result.
//
// Combine is associative, and the empty delta is a two-sided identity, so a
// long history of deltas may be pre-reduced to one before being applied.
//
// An error unwrapping to [ErrInvalidCombination] aborts the whole combine;
// the result is never partially computed.
func (d Delta[T, K]) Combine(other Delta[T, K], opts ...Option[T]) (Delta[T, K], error) {
	var zero Delta[T, K]
	cfg, err := newConfig(opts)
	if err != nil {
		return zero, err
	}
	if d.IsEmpty() {
		return other, nil
	}
	if other.IsEmpty() {
		return d, nil
	}

	combined := maps.Clone(d.ops)
	for key, second := range other.ops {
		first, ok := combined[key]
		if !ok {
			combined[key] = second
			continue
		}
		op, produced, err := first.Combine(second, cfg.equivalent)
		switch {
		case err != nil:
			return zero, err
		case produced:
			combined[key] = op
		default:
			delete(combined, key)
		}
	}

	if debug.Combine() {
		debug.Logf("combine: %d ops with %d ops -> %d ops\n", d.Len(), other.Len(), len(combined))
	}
	return newDelta(combined), nil
}
