package delta

import "fmt"

type config[T any] struct {
	equivalent Equivalence[T]
}

// Option adjusts how Diff and Combine compare items.
type Option[T any] func(*config[T])

// WithEquivalence overrides the default structural-equality predicate.
func WithEquivalence[T any](equivalent Equivalence[T]) Option[T] {
	return func(c *config[T]) { c.equivalent = equivalent }
}

// WithEssence compares items by their distilled essence.
func WithEssence[T, U any](essence Essence[T, U]) Option[T] {
	return func(c *config[T]) { c.equivalent = essence.Equivalence() }
}

func newConfig[T any](opts []Option[T]) (config[T], error) {
	c := config[T]{equivalent: DefaultEquivalence[T]()}
	for _, opt := range opts {
		if opt == nil {
			return c, fmt.Errorf("%w: option must not be nil", ErrInvalidArgument)
		}
		opt(&c)
	}
	if c.equivalent == nil {
		return c, fmt.Errorf("%w: equivalence must not be nil", ErrInvalidArgument)
	}
	return c, nil
}
