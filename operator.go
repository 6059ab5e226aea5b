// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iobuf

import "code.hybscloud.com/kont"

// Kind identifies a simple operator.
type Kind uint8

const (
	KindRead Kind = iota
	KindPeek
	KindSkip
	KindReadWhile
	KindPeekWhile
	KindSkipWhile
	KindWait
	KindPushContext
	KindSetContext
	KindUnsetContext
	KindGetContext
	KindIsCompleted
)

var kindNames = [...]string{
	KindRead:         "read",
	KindPeek:         "peek",
	KindSkip:         "skip",
	KindReadWhile:    "readWhile",
	KindPeekWhile:    "peekWhile",
	KindSkipWhile:    "skipWhile",
	KindWait:         "wait",
	KindPushContext:  "pushContext",
	KindSetContext:   "setContext",
	KindUnsetContext: "unsetContext",
	KindGetContext:   "getContext",
	KindIsCompleted:  "isCompleted",
}

// String returns the operator name, or "unknown".
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Operator is an immutable descriptor of one atomic buffer action.
//
// Every operator is also a kont effect operation: kont.Perform(op) suspends a
// routine until a [Reader] interprets op and resumes it with the result.
type Operator interface {
	Kind() Kind
}

// NoLimit disables the item limit of the while family.
const NoLimit = -1

// --- Basic family ---

// ReadOp consumes Count items (everything once the source completes when
// Unbounded) and resumes with them as one chunk.
//
// Strict operators fail with [ErrEndOfStream] if the source ends first;
// lenient ones resume with whatever remains.
type ReadOp[C Chunk] struct {
	kont.Phantom[C]
	Count     int
	Unbounded bool
	Strict    bool
}

// PeekOp is ReadOp without consumption.
type PeekOp[C Chunk] struct {
	kont.Phantom[C]
	Count     int
	Unbounded bool
	Strict    bool
}

// SkipOp discards items and resumes with how many were discarded.
type SkipOp struct {
	kont.Phantom[int]
	Count     int
	Unbounded bool
	Strict    bool
}

// Kind reports the operator kind.
func (ReadOp[C]) Kind() Kind { return KindRead }
func (PeekOp[C]) Kind() Kind { return KindPeek }
func (SkipOp) Kind() Kind    { return KindSkip }

// Read creates a strict ReadOp of n items.
func Read[C Chunk](n int) ReadOp[C] { return ReadOp[C]{Count: n, Strict: true} }

// ReadAll creates a ReadOp that waits for completion and takes everything.
func ReadAll[C Chunk]() ReadOp[C] { return ReadOp[C]{Unbounded: true, Strict: true} }

// Peek creates a strict PeekOp of n items.
func Peek[C Chunk](n int) PeekOp[C] { return PeekOp[C]{Count: n, Strict: true} }

// PeekAll creates a PeekOp that waits for completion and observes everything.
func PeekAll[C Chunk]() PeekOp[C] { return PeekOp[C]{Unbounded: true, Strict: true} }

// Skip creates a strict SkipOp of n items.
func Skip(n int) SkipOp { return SkipOp{Count: n, Strict: true} }

// SkipAll creates a SkipOp that waits for completion and discards everything.
func SkipAll() SkipOp { return SkipOp{Unbounded: true, Strict: true} }

// Lenient returns a copy that succeeds with partial data on early completion.
func (o ReadOp[C]) Lenient() ReadOp[C] { o.Strict = false; return o }

// Lenient returns a copy that succeeds with partial data on early completion.
func (o PeekOp[C]) Lenient() PeekOp[C] { o.Strict = false; return o }

// Lenient returns a copy that succeeds with a short count on early completion.
func (o SkipOp) Lenient() SkipOp { o.Strict = false; return o }

// --- While family ---

// ReadWhileOp consumes items while Cond holds and resumes with them.
//
// The scan stops at the first item failing Cond (consumed too when Inclusive)
// or after Limit items, whichever comes first. Limit is [NoLimit] or >= 0.
// If the source ends before a stop, strict operators fail with
// [ErrEndOfStream] and lenient ones resume with the items scanned so far.
type ReadWhileOp[C Chunk] struct {
	kont.Phantom[C]
	Cond      func(byte) bool
	Limit     int
	Inclusive bool
	Strict    bool
}

// PeekWhileOp is ReadWhileOp without consumption.
type PeekWhileOp[C Chunk] struct {
	kont.Phantom[C]
	Cond      func(byte) bool
	Limit     int
	Inclusive bool
	Strict    bool
}

// SkipWhileOp discards items while Cond holds and resumes with the count.
type SkipWhileOp struct {
	kont.Phantom[int]
	Cond      func(byte) bool
	Limit     int
	Inclusive bool
	Strict    bool
}

// Kind reports the operator kind.
func (ReadWhileOp[C]) Kind() Kind { return KindReadWhile }
func (PeekWhileOp[C]) Kind() Kind { return KindPeekWhile }
func (SkipWhileOp) Kind() Kind    { return KindSkipWhile }

// ReadWhile creates a strict, unlimited, exclusive ReadWhileOp.
func ReadWhile[C Chunk](cond func(byte) bool) ReadWhileOp[C] {
	return ReadWhileOp[C]{Cond: cond, Limit: NoLimit, Strict: true}
}

// PeekWhile creates a strict, unlimited, exclusive PeekWhileOp.
func PeekWhile[C Chunk](cond func(byte) bool) PeekWhileOp[C] {
	return PeekWhileOp[C]{Cond: cond, Limit: NoLimit, Strict: true}
}

// SkipWhile creates a strict, unlimited, exclusive SkipWhileOp.
func SkipWhile(cond func(byte) bool) SkipWhileOp {
	return SkipWhileOp{Cond: cond, Limit: NoLimit, Strict: true}
}

// Lenient resolves with the accumulated items at end of stream instead of
// failing. Including keeps the first failing item. WithLimit caps the scan
// at n items.
func (o ReadWhileOp[C]) Lenient() ReadWhileOp[C]        { o.Strict = false; return o }
func (o ReadWhileOp[C]) Including() ReadWhileOp[C]      { o.Inclusive = true; return o }
func (o ReadWhileOp[C]) WithLimit(n int) ReadWhileOp[C] { o.Limit = n; return o }

func (o PeekWhileOp[C]) Lenient() PeekWhileOp[C]        { o.Strict = false; return o }
func (o PeekWhileOp[C]) Including() PeekWhileOp[C]      { o.Inclusive = true; return o }
func (o PeekWhileOp[C]) WithLimit(n int) PeekWhileOp[C] { o.Limit = n; return o }

func (o SkipWhileOp) Lenient() SkipWhileOp        { o.Strict = false; return o }
func (o SkipWhileOp) Including() SkipWhileOp      { o.Inclusive = true; return o }
func (o SkipWhileOp) WithLimit(n int) SkipWhileOp { o.Limit = n; return o }

// --- Wait ---

// WaitOp suspends until Signal settles, successfully or not.
type WaitOp struct {
	kont.Phantom[struct{}]
	Signal Signal
}

func (WaitOp) Kind() Kind { return KindWait }

// Wait creates a WaitOp.
func Wait(s Signal) WaitOp { return WaitOp{Signal: s} }

// --- Context family ---

// ContextMode selects the lookup performed by [GetContextOp].
type ContextMode uint8

const (
	// ContextSlot reads the slot; an empty slot yields None.
	ContextSlot ContextMode = iota
	// ContextPeek reads the top of the stack; an empty stack yields None.
	ContextPeek
	// ContextPop removes the top of the stack; an empty stack is a violation.
	ContextPop
)

// PushContextOp pushes Value on the stack of T.
type PushContextOp[T any] struct {
	kont.Phantom[struct{}]
	Value T
}

// SetContextOp fills the slot of T.
type SetContextOp[T any] struct {
	kont.Phantom[struct{}]
	Value T
}

// UnsetContextOp empties the slot of T.
type UnsetContextOp[T any] struct {
	kont.Phantom[struct{}]
}

// GetContextOp looks up T according to Mode.
type GetContextOp[T any] struct {
	kont.Phantom[Option[T]]
	Mode ContextMode
}

// Kind reports the operator kind.
func (PushContextOp[T]) Kind() Kind  { return KindPushContext }
func (SetContextOp[T]) Kind() Kind   { return KindSetContext }
func (UnsetContextOp[T]) Kind() Kind { return KindUnsetContext }
func (GetContextOp[T]) Kind() Kind   { return KindGetContext }

// PushContext creates a PushContextOp.
func PushContext[T any](v T) PushContextOp[T] { return PushContextOp[T]{Value: v} }

// SetContext creates a SetContextOp.
func SetContext[T any](v T) SetContextOp[T] { return SetContextOp[T]{Value: v} }

// UnsetContext creates an UnsetContextOp.
func UnsetContext[T any]() UnsetContextOp[T] { return UnsetContextOp[T]{} }

// LookupContext creates a GetContextOp.
func LookupContext[T any](mode ContextMode) GetContextOp[T] { return GetContextOp[T]{Mode: mode} }

func (o PushContextOp[T]) applyContext(cs *Contexts) (kont.Resumed, error) {
	return struct{}{}, PushContextValue(cs, o.Value)
}

func (o SetContextOp[T]) applyContext(cs *Contexts) (kont.Resumed, error) {
	return struct{}{}, SetContextValue(cs, o.Value)
}

func (UnsetContextOp[T]) applyContext(cs *Contexts) (kont.Resumed, error) {
	return struct{}{}, UnsetContextValue[T](cs)
}

func (o GetContextOp[T]) applyContext(cs *Contexts) (kont.Resumed, error) {
	switch o.Mode {
	case ContextPeek:
		return PeekContextValue[T](cs)
	case ContextPop:
		v, err := PopContextValue[T](cs)
		if err != nil {
			return nil, err
		}
		return Some(v), nil
	default:
		return GetContextValue[T](cs)
	}
}

// --- Completion ---

// IsCompletedOp resumes with whether the reader has closed.
type IsCompletedOp struct {
	kont.Phantom[bool]
}

// Kind reports the operator kind.
func (IsCompletedOp) Kind() Kind { return KindIsCompleted }
