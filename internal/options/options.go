// Package options implements the functional option pattern shared by the encoder
// and decoder configurations.
package options

// Option configures a target of type T.
type Option[T any] interface {
	apply(T) error
}

// fn adapts a plain function to Option.
type fn[T any] func(T) error

func (f fn[T]) apply(target T) error {
	return f(target)
}

// New returns an option that may reject its input with an error.
func New[T any](f func(T) error) Option[T] {
	return fn[T](f)
}

// NoError returns an option that cannot fail.
func NoError[T any](f func(T)) Option[T] {
	return fn[T](func(target T) error {
		f(target)
		return nil
	})
}

// Apply applies opts to target in order and stops at the first error.
// Nil options are skipped.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}
