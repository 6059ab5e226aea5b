// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iobuf

import (
	"errors"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// Reading boundary.
// Do, Run and RunExpr drive kont computations one effect at a time with
// kont.Step/StepExpr. Each suspension is handed to the reader's operator
// registry; operators that cannot complete yet register a one-shot
// resumption that re-enters the loop through the reader's ready queue.

// resumption is the delayed result of one operator.
type resumption struct {
	v   kont.Resumed
	err error
}

// routine drives one top-level read.
type routine[A any, C Chunk] struct {
	r     *Reader[C]
	cs    *Contexts
	throw func(op kont.Operation) bool
	done  func(a A)
	fail  func(err error)
}

func (t *routine[A, C]) step(a A, susp *kont.Suspension[A]) {
	for susp != nil {
		op := susp.Op()
		if t.throw(op) {
			susp.Discard()
			return
		}
		pending := susp
		k := kont.Once(func(res resumption) struct{} {
			t.r.schedule(func() { t.resume(pending, res) })
			return struct{}{}
		})
		v, err := t.r.interpret(op, t.cs, func(v kont.Resumed, err error) {
			k.TryResume(resumption{v: v, err: err})
		})
		if errors.Is(err, iox.ErrWouldBlock) {
			return
		}
		k.Discard()
		if err != nil {
			susp.Discard()
			t.reject(err)
			return
		}
		a, susp = susp.Resume(v)
	}
	t.done(a)
}

func (t *routine[A, C]) resume(susp *kont.Suspension[A], res resumption) {
	if res.err != nil {
		susp.Discard()
		t.reject(res.err)
		return
	}
	t.step(susp.Resume(res.v))
}

func (t *routine[A, C]) reject(err error) {
	log.Debugf("read failed: %v", err)
	t.fail(err)
}

func noThrow(kont.Operation) bool { return false }

// Do interprets a single operator on r.
//
// The returned Outcome is already settled when op completes from buffered
// data; otherwise it settles from the Push, Complete or Fail that satisfies
// it. Context operators run against a fresh, empty [Contexts].
func Do[O kont.Op[O, A], A any, C Chunk](r *Reader[C], op O) *Outcome[A] {
	out := NewOutcome[A]()
	t := &routine[A, C]{r: r, cs: NewContexts(), throw: noThrow, done: out.Resolve, fail: out.Reject}
	r.schedule(func() { t.step(kont.Step(kont.Perform(op))) })
	return out
}

// Run drives routine m on r with contexts cs (a fresh collection when nil).
//
// The Outcome resolves with Right when m completes, with Left when m throws an
// E through kont.ThrowError (see [Fail]), and is rejected with a system error
// ([ErrEndOfStream], [ErrContractViolation], a source failure, ...) when an
// operator fails. Routines sharing one reader are interleaved only at
// suspension points, in the order their operators become satisfiable.
func Run[E, A any, C Chunk](r *Reader[C], m kont.Eff[A], cs *Contexts) *Outcome[kont.Either[E, A]] {
	out := NewOutcome[kont.Either[E, A]]()
	t := newRoutine[E](r, cs, out)
	r.schedule(func() { t.step(kont.Step(m)) })
	return out
}

// RunExpr is Run for defunctionalized computations.
func RunExpr[E, A any, C Chunk](r *Reader[C], m kont.Expr[A], cs *Contexts) *Outcome[kont.Either[E, A]] {
	out := NewOutcome[kont.Either[E, A]]()
	t := newRoutine[E](r, cs, out)
	r.schedule(func() { t.step(kont.StepExpr(m)) })
	return out
}

func newRoutine[E, A any, C Chunk](r *Reader[C], cs *Contexts, out *Outcome[kont.Either[E, A]]) *routine[A, C] {
	if cs == nil {
		cs = NewContexts()
	}
	return &routine[A, C]{
		r:  r,
		cs: cs,
		throw: func(op kont.Operation) bool {
			e, ok := op.(kont.Throw[E])
			if ok {
				out.Resolve(kont.Left[E, A](e.Err))
			}
			return ok
		},
		done: func(a A) { out.Resolve(kont.Right[E](a)) },
		fail: out.Reject,
	}
}
