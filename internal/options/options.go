// Package options implements generic functional options.
package options

import "fmt"

// Option configures a target of type T.
type Option[T any] interface {
	apply(T) error
}

type optionFunc[T any] func(T) error

func (f optionFunc[T]) apply(target T) error {
	return f(target)
}

// New wraps a fallible function as an option.
func New[T any](fn func(T) error) Option[T] {
	return optionFunc[T](fn)
}

// NoError wraps a function that cannot fail as an option.
func NoError[T any](fn func(T)) Option[T] {
	return optionFunc[T](func(target T) error {
		fn(target)
		return nil
	})
}

// Apply applies opts to target in order, skipping nil options.
// It stops at the first failing option and reports its position.
func Apply[T any](target T, opts ...Option[T]) error {
	for i, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt.apply(target); err != nil {
			return fmt.Errorf("option %d: %w", i, err)
		}
	}

	return nil
}
