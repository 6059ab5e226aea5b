// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iobuf

import "slices"

// Subscription is the handle of a listener registered on a buffer or reader.
// Unsubscribe is idempotent.
type Subscription struct {
	active bool
	cancel func()
}

// Unsubscribe removes the listener. No callbacks run afterwards.
func (s *Subscription) Unsubscribe() {
	if !s.active {
		return
	}
	s.active = false
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Active reports whether the listener is still registered.
func (s *Subscription) Active() bool { return s.active }

type listener[T any] struct {
	onNext func(T)
	onDone func(error)
	sub    *Subscription
}

// channel is an ordered multicast listener list.
// Emission is synchronous and follows registration order; close is idempotent
// and delivers the terminal error (nil on completion) exactly once per listener.
type channel[T any] struct {
	listeners []*listener[T]
	closed    bool
	err       error
}

// subscribe registers a listener. On a closed channel onDone runs immediately
// and the returned subscription is inert.
func (c *channel[T]) subscribe(onNext func(T), onDone func(error)) *Subscription {
	if c.closed {
		if onDone != nil {
			onDone(c.err)
		}
		return &Subscription{}
	}
	l := &listener[T]{onNext: onNext, onDone: onDone}
	l.sub = &Subscription{active: true, cancel: func() { c.remove(l) }}
	c.listeners = append(c.listeners, l)
	return l.sub
}

func (c *channel[T]) remove(l *listener[T]) {
	if i := slices.Index(c.listeners, l); i >= 0 {
		c.listeners = slices.Delete(c.listeners, i, i+1)
	}
}

// emit delivers v to the listeners registered before the call.
// Listeners removed during delivery are skipped.
func (c *channel[T]) emit(v T) {
	if c.closed || len(c.listeners) == 0 {
		return
	}
	for _, l := range slices.Clone(c.listeners) {
		if l.sub.active && l.onNext != nil {
			l.onNext(v)
		}
	}
}

func (c *channel[T]) close(err error) {
	if c.closed {
		return
	}
	c.closed = true
	c.err = err
	ls := c.listeners
	c.listeners = nil
	for _, l := range ls {
		if !l.sub.active {
			continue
		}
		l.sub.active = false
		l.sub.cancel = nil
		if l.onDone != nil {
			l.onDone(err)
		}
	}
}
