// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iobuf

// Option represents a value that is either present (Some) or absent (None).
type Option[T any] struct {
	ok    bool
	value T
}

// Some creates a present value.
func Some[T any](v T) Option[T] {
	return Option[T]{ok: true, value: v}
}

// None creates an absent value.
func None[T any]() Option[T] {
	return Option[T]{}
}

// IsSome returns true if a value is present.
func (o Option[T]) IsSome() bool {
	return o.ok
}

// IsNone returns true if no value is present.
func (o Option[T]) IsNone() bool {
	return !o.ok
}

// Get returns the value and true, or zero and false.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.ok
}

// GetOr returns the value if present, otherwise fallback.
func (o Option[T]) GetOr(fallback T) T {
	if o.ok {
		return o.value
	}
	return fallback
}

// MatchOption pattern matches on the Option, calling onNone or onSome.
func MatchOption[T, R any](o Option[T], onNone func() R, onSome func(T) R) R {
	if o.ok {
		return onSome(o.value)
	}
	return onNone()
}
