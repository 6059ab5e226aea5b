// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iobuf

import (
	"fmt"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// resumeFunc delivers the delayed outcome of an operator.
type resumeFunc func(v kont.Resumed, err error)

// contextOp is implemented by the context family.
type contextOp interface {
	applyContext(cs *Contexts) (kont.Resumed, error)
}

// interpret is the operator registry.
//
// It returns the operator's result, an immediate failure, or iox.ErrWouldBlock
// after registering resume to be called exactly once when the result is ready.
func (r *Reader[C]) interpret(op kont.Operation, cs *Contexts, resume resumeFunc) (kont.Resumed, error) {
	switch o := op.(type) {
	case ReadOp[C]:
		return r.basic(o.Count, o.Unbounded, o.Strict, r.readAction, resume)
	case PeekOp[C]:
		return r.basic(o.Count, o.Unbounded, o.Strict, r.peekAction, resume)
	case SkipOp:
		return r.basic(o.Count, o.Unbounded, o.Strict, r.skipAction, resume)
	case ReadWhileOp[C]:
		return r.scanWhile(r.src, o.Cond, o.Limit, o.Inclusive, o.Strict, true, resume)
	case PeekWhileOp[C]:
		view, err := r.src.Subview(0)
		if err != nil {
			return nil, err
		}
		return r.scanWhile(view, o.Cond, o.Limit, o.Inclusive, o.Strict, true, resume)
	case SkipWhileOp:
		return r.scanWhile(r.src, o.Cond, o.Limit, o.Inclusive, o.Strict, false, resume)
	case WaitOp:
		return r.wait(o.Signal, resume)
	case IsCompletedOp:
		return r.Closed(), nil
	case contextOp:
		return o.applyContext(cs)
	}
	return nil, fmt.Errorf("%w: %T", ErrUnknownOperator, op)
}

// action performs a basic-family operator on the source: n items, or
// everything when all is set. n has been validated.
type action func(n int, all bool) kont.Resumed

func (r *Reader[C]) readAction(n int, all bool) kont.Resumed {
	if all {
		return r.src.ReadAll()
	}
	c, _ := r.src.Read(n)
	return c
}

func (r *Reader[C]) peekAction(n int, all bool) kont.Resumed {
	if all {
		return r.src.PeekAll()
	}
	c, _ := r.src.Peek(n)
	return c
}

func (r *Reader[C]) skipAction(n int, all bool) kont.Resumed {
	if all {
		return r.src.SkipAll()
	}
	skipped, _ := r.src.Skip(n)
	return skipped
}

// basic interprets read, peek and skip.
func (r *Reader[C]) basic(count int, unbounded, strict bool, act action, resume resumeFunc) (kont.Resumed, error) {
	if unbounded {
		if r.Closed() {
			if err := r.Err(); err != nil {
				return nil, err
			}
			return act(0, true), nil
		}
		r.events.subscribe(nil, func(err error) {
			if err != nil {
				resume(nil, err)
				return
			}
			resume(act(0, true), nil)
		})
		return nil, iox.ErrWouldBlock
	}
	if count < 0 {
		return nil, ErrNegativeCount
	}
	if count <= r.src.Available() {
		return act(count, false), nil
	}
	if r.Closed() {
		return r.shortfall(strict, act)
	}
	var sub *Subscription
	sub = r.events.subscribe(func(struct{}) {
		if r.src.Available() < count {
			return
		}
		sub.Unsubscribe()
		resume(act(count, false), nil)
	}, func(error) {
		resume(r.shortfall(strict, act))
	})
	return nil, iox.ErrWouldBlock
}

// shortfall resolves a basic-family operator that the closed reader cannot
// satisfy. Lenient operators take everything that remains.
func (r *Reader[C]) shortfall(strict bool, act action) (kont.Resumed, error) {
	if err := r.Err(); err != nil {
		return nil, err
	}
	if strict {
		return nil, ErrEndOfStream
	}
	return act(0, true), nil
}

// wait resumes once s settles, or fails with the cancellation error when the
// reader is unsubscribed first. A nil signal resumes immediately.
// Completion of the source does not end a wait.
func (r *Reader[C]) wait(s Signal, resume resumeFunc) (kont.Resumed, error) {
	if s == nil {
		return struct{}{}, nil
	}
	if r.cancels.closed {
		return nil, r.cancels.err
	}
	settled := false
	sub := r.cancels.subscribe(nil, func(err error) {
		if !settled {
			settled = true
			resume(nil, err)
		}
	})
	s.Subscribe(func(error) {
		if settled {
			return
		}
		settled = true
		sub.Unsubscribe()
		resume(struct{}{}, nil)
	})
	return nil, iox.ErrWouldBlock
}
