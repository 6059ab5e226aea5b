// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iobuf

// Subview is a cursor over a [Buffer]'s unconsumed content.
//
// Consuming through a Subview only advances its own start offset; the source's
// chunks and count are untouched. Independent subviews over one buffer do not
// interfere. Pushes and termination pass through to the source.
type Subview[C Chunk] struct {
	src   *Buffer[C]
	start int
}

// Start returns the view's offset into the source's unconsumed content.
func (v *Subview[C]) Start() int { return v.start }

// Available returns the source's unconsumed items past the view's start.
func (v *Subview[C]) Available() int {
	if n := v.src.available - v.start; n > 0 {
		return n
	}
	return 0
}

// Empty reports whether nothing is available past the view's start.
func (v *Subview[C]) Empty() bool { return v.Available() == 0 }

// Binary reports whether the source holds binary chunks.
func (v *Subview[C]) Binary() bool { return IsBinary[C]() }

// Completed reports whether the source has terminated.
func (v *Subview[C]) Completed() bool { return v.src.Completed() }

// Err returns the source's failure, or nil.
func (v *Subview[C]) Err() error { return v.src.Err() }

// Push appends c to the source.
func (v *Subview[C]) Push(c C) error { return v.src.Push(c) }

// Complete terminates the source.
func (v *Subview[C]) Complete() { v.src.Complete() }

// Fail terminates the source with err.
func (v *Subview[C]) Fail(err error) { v.src.Fail(err) }

// Subscribe registers listeners on the source.
func (v *Subview[C]) Subscribe(onArrival func(C), onDone func(error)) *Subscription {
	return v.src.Subscribe(onArrival, onDone)
}

// First returns the rest of the chunk at the view's start.
func (v *Subview[C]) First() Option[C] {
	return v.src.firstFrom(v.start)
}

// Shift returns First and moves the start past it.
func (v *Subview[C]) Shift() Option[C] {
	first := v.First()
	if c, ok := first.Get(); ok {
		v.start += len(c)
	}
	return first
}

// Peek returns up to n items past the start as one chunk.
func (v *Subview[C]) Peek(n int) (C, error) {
	if n < 0 {
		return Empty[C](), ErrNegativeCount
	}
	var scratch [4]C
	parts, _ := v.src.peekFrom(scratch[:0], v.start, n, true)
	return Join(parts...), nil
}

// PeekAll returns everything past the start as one chunk.
func (v *Subview[C]) PeekAll() C {
	var scratch [4]C
	parts, _ := v.src.peekFrom(scratch[:0], v.start, 0, false)
	return Join(parts...)
}

// PeekInto appends the chunk pieces covering up to n items to dst.
func (v *Subview[C]) PeekInto(dst []C, n int) ([]C, int, error) {
	if n < 0 {
		return dst, 0, ErrNegativeCount
	}
	dst, seen := v.src.peekFrom(dst, v.start, n, true)
	return dst, seen, nil
}

// PeekAllInto appends every chunk piece past the start to dst.
func (v *Subview[C]) PeekAllInto(dst []C) ([]C, int) {
	return v.src.peekFrom(dst, v.start, 0, false)
}

// Read is Peek that also advances the start.
func (v *Subview[C]) Read(n int) (C, error) {
	c, err := v.Peek(n)
	if err != nil {
		return c, err
	}
	v.start += len(c)
	return c, nil
}

// ReadAll is PeekAll that also advances the start.
func (v *Subview[C]) ReadAll() C {
	c := v.PeekAll()
	v.start += len(c)
	return c
}

// ReadInto is PeekInto that also advances the start.
func (v *Subview[C]) ReadInto(dst []C, n int) ([]C, int, error) {
	dst, seen, err := v.PeekInto(dst, n)
	v.start += seen
	return dst, seen, err
}

// ReadAllInto is PeekAllInto that also advances the start.
func (v *Subview[C]) ReadAllInto(dst []C) ([]C, int) {
	dst, seen := v.PeekAllInto(dst)
	v.start += seen
	return dst, seen
}

// Skip advances the start offset by at most Available items.
func (v *Subview[C]) Skip(n int) (int, error) {
	if n < 0 {
		return 0, ErrNegativeCount
	}
	n = min(n, v.Available())
	v.start += n
	return n, nil
}

// SkipAll moves the start past everything available.
func (v *Subview[C]) SkipAll() int {
	n := v.Available()
	v.start += n
	return n
}

// Require is [Buffer.Require] counted from the view's start.
func (v *Subview[C]) Require(n int, f func(available int)) error {
	if n < 0 {
		return ErrNegativeCount
	}
	if v.Available() >= n {
		f(v.Available())
		return nil
	}
	var sub *Subscription
	sub = v.src.Subscribe(func(C) {
		if v.Available() < n {
			return
		}
		sub.Unsubscribe()
		f(v.Available())
	}, nil)
	return nil
}

// Subview returns a view of the same source at this view's start plus start.
func (v *Subview[C]) Subview(start int) (*Subview[C], error) {
	if start < 0 {
		return nil, ErrNegativeCount
	}
	return v.src.Subview(v.start + start)
}
