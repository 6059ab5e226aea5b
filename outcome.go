// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iobuf

import "code.hybscloud.com/iox"

// Signal is an asynchronous event that settles once, with or without error.
// [WaitOp] suspends a routine until its Signal settles.
//
// Subscribe must call f exactly once, on the goroutine driving the reader:
// immediately when already settled, otherwise when it settles.
type Signal interface {
	Subscribe(f func(err error))
}

// Outcome is a result cell settled at most once.
//
// Reads return Outcomes that settle synchronously when the data is already
// buffered, or later from inside Push/Complete/Fail when it arrives.
// An Outcome is also a [Signal], so routines can wait on other reads, and
// external code can create and settle one to drive [WaitOp].
type Outcome[T any] struct {
	done    bool
	value   T
	err     error
	waiters []func(T, error)
}

var _ Signal = (*Outcome[struct{}])(nil)

// NewOutcome creates a pending Outcome.
func NewOutcome[T any]() *Outcome[T] {
	return &Outcome[T]{}
}

// Done reports whether the Outcome has settled.
func (o *Outcome[T]) Done() bool { return o.done }

// Poll returns the settled value and error, or iox.ErrWouldBlock while pending.
func (o *Outcome[T]) Poll() (T, error) {
	if !o.done {
		var zero T
		return zero, iox.ErrWouldBlock
	}
	return o.value, o.err
}

// Then calls f with the settled value and error: immediately if settled,
// otherwise when the Outcome settles. Callbacks run in registration order.
func (o *Outcome[T]) Then(f func(T, error)) {
	if o.done {
		f(o.value, o.err)
		return
	}
	o.waiters = append(o.waiters, f)
}

// Subscribe implements [Signal].
func (o *Outcome[T]) Subscribe(f func(err error)) {
	o.Then(func(_ T, err error) { f(err) })
}

// Resolve settles the Outcome with v. It is a no-op once settled.
func (o *Outcome[T]) Resolve(v T) {
	o.settle(v, nil)
}

// Reject settles the Outcome with err. It is a no-op once settled.
func (o *Outcome[T]) Reject(err error) {
	var zero T
	o.settle(zero, err)
}

func (o *Outcome[T]) settle(v T, err error) {
	if o.done {
		return
	}
	o.done = true
	o.value = v
	o.err = err
	waiters := o.waiters
	o.waiters = nil
	for _, f := range waiters {
		f(v, err)
	}
}
