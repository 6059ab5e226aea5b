// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iobuf

// Source is the buffer contract shared by [Buffer] and [Subview].
//
// Counts are item counts. Read, Peek and Skip with a count consume (or
// observe) exactly min(n, Available()) items, splicing the last chunk when the
// count ends inside it. The *All variants take everything currently buffered.
// The *Into variants append the pieces to dst instead of joining them.
// A negative count returns [ErrNegativeCount] before anything changes.
type Source[C Chunk] interface {
	// Available returns the number of unconsumed items.
	Available() int
	// Empty reports whether Available is zero.
	Empty() bool
	// Binary reports whether the source holds binary chunks.
	Binary() bool
	// Completed reports whether the source completed or failed.
	Completed() bool
	// Err returns the failure passed to Fail, or nil.
	Err() error

	// Push appends a chunk and notifies arrival listeners.
	Push(c C) error
	// Complete terminates the source normally.
	Complete()
	// Fail terminates the source with err.
	Fail(err error)

	// Shift removes and returns the first chunk.
	Shift() Option[C]
	// First returns the first chunk without removing it.
	First() Option[C]

	Read(n int) (C, error)
	ReadAll() C
	ReadInto(dst []C, n int) ([]C, int, error)
	ReadAllInto(dst []C) ([]C, int)

	Peek(n int) (C, error)
	PeekAll() C
	PeekInto(dst []C, n int) ([]C, int, error)
	PeekAllInto(dst []C) ([]C, int)

	Skip(n int) (int, error)
	SkipAll() int

	// Require calls f with Available as soon as at least n items are buffered:
	// immediately if they already are, otherwise from the arrival that
	// satisfies it.
	Require(n int, f func(available int)) error

	// Subview returns a zero-copy view starting start items into the
	// unconsumed content.
	Subview(start int) (*Subview[C], error)

	// Subscribe registers arrival and termination listeners.
	Subscribe(onArrival func(C), onDone func(error)) *Subscription
}

var (
	_ Source[string] = (*Buffer[string])(nil)
	_ Source[[]byte] = (*Buffer[[]byte])(nil)
	_ Source[string] = (*Subview[string])(nil)
	_ Source[[]byte] = (*Subview[[]byte])(nil)
)
