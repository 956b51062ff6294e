// Package result provides the two-variant outcome container used by all
// status and permission operations.
//
// A Result is either a success carrying a value or a failure carrying an
// error, never both. Construction from a (value, error) pair always
// prefers failure when an error is present: an error strictly overrides a
// value, even if the value looks usable. Results are immutable value
// types, created per call and discarded once consumed.
package result

// Result holds exactly one of a value or an error.
//
// The zero value is a success carrying T's zero value; prefer the
// constructors.
type Result[T any] struct {
	value T
	err   error
}

// New builds a Result from a (value, error) pair.
//
// If err is non-nil the Result is a failure and the value is discarded,
// regardless of what was supplied. Otherwise it is a success carrying
// value.
func New[T any](value T, err error) Result[T] {
	if err != nil {
		return Result[T]{err: err}
	}
	return Result[T]{value: value}
}

// Success builds a success Result carrying value.
func Success[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Failure builds a failure Result carrying err.
//
// err must be non-nil; a failure never carries an absent error.
func Failure[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// Ok reports whether the Result is a success.
func (r Result[T]) Ok() bool {
	return r.err == nil
}

// Value returns the success value and whether the Result is a success.
// On failure the returned value is T's zero value.
func (r Result[T]) Value() (T, bool) {
	if r.err != nil {
		var zero T
		return zero, false
	}
	return r.value, true
}

// Err returns the failure error, or nil for a success.
func (r Result[T]) Err() error {
	return r.err
}

// Get unpacks the Result into Go's conventional (value, error) form.
func (r Result[T]) Get() (T, error) {
	if r.err != nil {
		var zero T
		return zero, r.err
	}
	return r.value, nil
}
