package delta

import (
	"math/rand"
	"slices"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID    int64
	Key   string
	Value int
}

func itemKey(it item) string { return it.Key }

// opCmp and deltaCmp let cmp.Diff compare values with unexported fields by
// their structural-equality methods.
var (
	opCmp    = cmp.Comparer(func(a, b Operation[item]) bool { return a.Equal(b) })
	deltaCmp = cmp.Comparer(func(a, b Delta[item, string]) bool { return a.Equal(b) })
)

const (
	maxItemCount = 20
	numRounds    = 100
)

// gen produces items with unique ids and keys, mirroring dataset snapshots
// whose natural keys never accidentally collide.
type gen struct {
	rng    *rand.Rand
	nextID int64
}

func newGen(seed int64) *gen {
	return &gen{rng: rand.New(rand.NewSource(seed))}
}

func (g *gen) item() item {
	g.nextID++
	return item{ID: g.nextID, Key: strconv.FormatInt(g.nextID, 10), Value: g.rng.Intn(1 << 20)}
}

func (g *gen) items() []item {
	n := g.rng.Intn(maxItemCount)
	items := make([]item, n)
	for i := range items {
		items[i] = g.item()
	}
	return items
}

func (g *gen) nonEmptyItems() []item {
	items := g.items()
	for len(items) == 0 {
		items = append(items, g.item())
	}
	return items
}

func (g *gen) withNewValue(it item) item {
	v := g.rng.Intn(1 << 20)
	for v == it.Value {
		v = g.rng.Intn(1 << 20)
	}
	it.Value = v
	return it
}

func (g *gen) withNewKey(it item) item {
	g.nextID++
	it.Key = strconv.FormatInt(g.nextID, 10)
	return it
}

func (g *gen) shuffled(items []item) []item {
	out := slices.Clone(items)
	g.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// scenario is one randomized dataset transition, grouped by what happened to
// each item between the before and after snapshots.
type scenario struct {
	g *gen

	added     []item
	unchanged []item
	removed   []item

	beforeValueChanged []item
	afterValueChanged  []item

	beforeKeyChanged []item
	afterKeyChanged  []item
}

func (g *gen) scenario() *scenario {
	for {
		s := &scenario{g: g}
		s.added = g.items()
		s.unchanged = g.items()
		s.removed = g.items()

		s.beforeValueChanged = g.items()
		s.afterValueChanged = make([]item, len(s.beforeValueChanged))
		for i, it := range s.beforeValueChanged {
			s.afterValueChanged[i] = g.withNewValue(it)
		}

		s.beforeKeyChanged = g.items()
		s.afterKeyChanged = make([]item, len(s.beforeKeyChanged))
		for i, it := range s.beforeKeyChanged {
			s.afterKeyChanged[i] = g.withNewKey(it)
		}

		if len(s.before()) > 0 && len(s.after()) > 0 {
			return s
		}
	}
}

func (s *scenario) before() []item {
	return s.g.shuffled(slices.Concat(s.unchanged, s.beforeValueChanged, s.beforeKeyChanged, s.removed))
}

func (s *scenario) after() []item {
	return s.g.shuffled(slices.Concat(s.unchanged, s.afterValueChanged, s.afterKeyChanged, s.added))
}

func toMap(t *testing.T, items []item) map[string]item {
	t.Helper()
	m := make(map[string]item, len(items))
	for _, it := range items {
		if _, dup := m[it.Key]; dup {
			t.Fatalf("test items contain duplicate key %q", it.Key)
		}
		m[it.Key] = it
	}
	return m
}

func sortedByKey(items []item) []item {
	out := slices.Clone(items)
	slices.SortFunc(out, func(a, b item) int {
		if a.Key < b.Key {
			return -1
		}
		if a.Key > b.Key {
			return 1
		}
		return 0
	})
	return out
}

// diffBoth diffs the same datasets in both supported shapes and fails the
// test if they disagree.
func diffBoth(t *testing.T, before, after []item) Delta[item, string] {
	t.Helper()
	d, err := Diff(before, after, itemKey)
	require.NoError(t, err)
	fromMaps, err := DiffMaps(toMap(t, before), toMap(t, after))
	require.NoError(t, err)
	if diff := cmp.Diff(d, fromMaps, deltaCmp); diff != "" {
		t.Fatalf("sequence and map diffs disagree (-seq +map):\n%s", diff)
	}
	return d
}

// applyBoth applies the delta in both supported shapes and fails the test
// if they disagree.
func applyBoth(t *testing.T, d Delta[item, string], items []item) []item {
	t.Helper()
	result, err := d.Apply(items, itemKey)
	require.NoError(t, err)
	resultMap, err := d.ApplyMap(toMap(t, items))
	require.NoError(t, err)
	if diff := cmp.Diff(toMap(t, result), resultMap); diff != "" {
		t.Fatalf("sequence and map apply disagree (-seq +map):\n%s", diff)
	}
	return result
}
