// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iobuf

// node is a link of the chunk queue. Nodes never hold empty chunks.
type node[C Chunk] struct {
	chunk C
	next  *node[C]
}

// Buffer is an ordered queue of chunks with a running item count.
//
// Chunks are appended at the tail and consumed from the head. Consuming part
// of the head chunk replaces it with the shorter remainder slice; no data is
// copied until pieces are joined for a caller.
//
// A Buffer and every Reader and Subview over it must be driven from a single
// goroutine. The zero value is an empty, open buffer.
type Buffer[C Chunk] struct {
	head      *node[C]
	tail      *node[C]
	available int
	arrivals  channel[C]
}

// NewBuffer creates an empty, open buffer.
func NewBuffer[C Chunk]() *Buffer[C] {
	return &Buffer[C]{}
}

// Available returns the number of unconsumed items.
func (b *Buffer[C]) Available() int { return b.available }

// Empty reports whether no items are buffered.
func (b *Buffer[C]) Empty() bool { return b.available == 0 }

// Binary reports whether the buffer holds binary chunks.
func (b *Buffer[C]) Binary() bool { return IsBinary[C]() }

// Completed reports whether the buffer has terminated, by Complete or Fail.
func (b *Buffer[C]) Completed() bool { return b.arrivals.closed }

// Err returns the error passed to Fail, or nil.
func (b *Buffer[C]) Err() error { return b.arrivals.err }

// Push appends c and synchronously notifies arrival listeners in
// registration order. Returns [ErrClosed] once the buffer has terminated.
func (b *Buffer[C]) Push(c C) error {
	if b.arrivals.closed {
		return ErrClosed
	}
	if len(c) > 0 {
		n := &node[C]{chunk: clip(c)}
		if b.tail == nil {
			b.head = n
		} else {
			b.tail.next = n
		}
		b.tail = n
		b.available += len(c)
	}
	b.arrivals.emit(c)
	return nil
}

// Complete signals end of input. Buffered data stays readable.
func (b *Buffer[C]) Complete() {
	b.arrivals.close(nil)
}

// Fail signals a producer error. A nil err is the same as Complete.
func (b *Buffer[C]) Fail(err error) {
	if err != nil && !b.arrivals.closed {
		log.Debugf("buffer failed: %v", err)
	}
	b.arrivals.close(err)
}

// Subscribe registers arrival and termination listeners.
// On a terminated buffer onDone runs immediately.
func (b *Buffer[C]) Subscribe(onArrival func(C), onDone func(error)) *Subscription {
	return b.arrivals.subscribe(onArrival, onDone)
}

// Shift removes and returns the head chunk.
func (b *Buffer[C]) Shift() Option[C] {
	if b.head == nil {
		return None[C]()
	}
	c := b.head.chunk
	b.dropHead()
	return Some(c)
}

// First returns the head chunk without removing it.
func (b *Buffer[C]) First() Option[C] {
	if b.head == nil {
		return None[C]()
	}
	return Some(b.head.chunk)
}

func (b *Buffer[C]) dropHead() {
	b.available -= len(b.head.chunk)
	b.head = b.head.next
	if b.head == nil {
		b.tail = nil
	}
}

func (b *Buffer[C]) clear() {
	b.head, b.tail = nil, nil
	b.available = 0
}

// take consumes n items from the head, appending the pieces to dst.
func (b *Buffer[C]) take(dst []C, n int) ([]C, int) {
	taken := 0
	for b.head != nil && n > 0 {
		c := b.head.chunk
		if n < len(c) {
			dst = append(dst, Slice(c, 0, n))
			b.head.chunk = c[n:]
			b.available -= n
			taken += n
			break
		}
		dst = append(dst, c)
		n -= len(c)
		taken += len(c)
		b.dropHead()
	}
	return dst, taken
}

// look is take without mutation.
func (b *Buffer[C]) look(dst []C, n int) ([]C, int) {
	seen := 0
	for cur := b.head; cur != nil && n > 0; cur = cur.next {
		c := cur.chunk
		if n < len(c) {
			dst = append(dst, Slice(c, 0, n))
			seen += n
			break
		}
		dst = append(dst, c)
		n -= len(c)
		seen += len(c)
	}
	return dst, seen
}

func (b *Buffer[C]) lookAll(dst []C) ([]C, int) {
	for cur := b.head; cur != nil; cur = cur.next {
		dst = append(dst, cur.chunk)
	}
	return dst, b.available
}

// Read consumes n items and returns them as one chunk.
func (b *Buffer[C]) Read(n int) (C, error) {
	if n < 0 {
		return Empty[C](), ErrNegativeCount
	}
	var scratch [4]C
	parts, _ := b.take(scratch[:0], n)
	return Join(parts...), nil
}

// ReadAll consumes everything buffered.
func (b *Buffer[C]) ReadAll() C {
	var scratch [4]C
	parts, _ := b.lookAll(scratch[:0])
	b.clear()
	return Join(parts...)
}

// ReadInto consumes n items, appending the pieces to dst.
func (b *Buffer[C]) ReadInto(dst []C, n int) ([]C, int, error) {
	if n < 0 {
		return dst, 0, ErrNegativeCount
	}
	dst, taken := b.take(dst, n)
	return dst, taken, nil
}

// ReadAllInto consumes everything buffered, appending the chunks to dst.
func (b *Buffer[C]) ReadAllInto(dst []C) ([]C, int) {
	dst, n := b.lookAll(dst)
	b.clear()
	return dst, n
}

// Peek returns the first n items as one chunk without consuming them.
func (b *Buffer[C]) Peek(n int) (C, error) {
	if n < 0 {
		return Empty[C](), ErrNegativeCount
	}
	var scratch [4]C
	parts, _ := b.look(scratch[:0], n)
	return Join(parts...), nil
}

// PeekAll returns everything buffered without consuming it.
func (b *Buffer[C]) PeekAll() C {
	var scratch [4]C
	parts, _ := b.lookAll(scratch[:0])
	return Join(parts...)
}

// PeekInto appends the chunks covering the first n items to dst.
func (b *Buffer[C]) PeekInto(dst []C, n int) ([]C, int, error) {
	if n < 0 {
		return dst, 0, ErrNegativeCount
	}
	dst, seen := b.look(dst, n)
	return dst, seen, nil
}

// PeekAllInto appends every buffered chunk to dst.
func (b *Buffer[C]) PeekAllInto(dst []C) ([]C, int) {
	return b.lookAll(dst)
}

// Skip discards n items and returns how many were discarded.
func (b *Buffer[C]) Skip(n int) (int, error) {
	if n < 0 {
		return 0, ErrNegativeCount
	}
	skipped := 0
	for b.head != nil && n > 0 {
		c := b.head.chunk
		if n < len(c) {
			b.head.chunk = c[n:]
			b.available -= n
			skipped += n
			break
		}
		n -= len(c)
		skipped += len(c)
		b.dropHead()
	}
	return skipped, nil
}

// SkipAll discards everything buffered.
func (b *Buffer[C]) SkipAll() int {
	n := b.available
	b.clear()
	return n
}

// Require calls f with the available count once at least n items are
// buffered: immediately if they already are, otherwise on the arrival that
// reaches n.
func (b *Buffer[C]) Require(n int, f func(available int)) error {
	if n < 0 {
		return ErrNegativeCount
	}
	if b.available >= n {
		f(b.available)
		return nil
	}
	var sub *Subscription
	sub = b.arrivals.subscribe(func(C) {
		if b.available < n {
			return
		}
		sub.Unsubscribe()
		f(b.available)
	}, nil)
	return nil
}

// Subview returns a zero-copy view anchored start items into the
// unconsumed content.
func (b *Buffer[C]) Subview(start int) (*Subview[C], error) {
	if start < 0 {
		return nil, ErrNegativeCount
	}
	return &Subview[C]{src: b, start: start}, nil
}

// peekFrom appends up to n items (all when !bounded) starting start items
// past the head. It backs Subview reads.
func (b *Buffer[C]) peekFrom(dst []C, start, n int, bounded bool) ([]C, int) {
	if start >= b.available {
		return dst, 0
	}
	cur := b.head
	for start >= len(cur.chunk) {
		start -= len(cur.chunk)
		cur = cur.next
	}
	seen := 0
	for ; cur != nil; cur = cur.next {
		if bounded && n == 0 {
			break
		}
		c := cur.chunk[start:]
		start = 0
		k := len(c)
		if bounded && n < k {
			k = n
		}
		dst = append(dst, Slice(c, 0, k))
		seen += k
		if bounded {
			n -= k
		}
	}
	return dst, seen
}

// firstFrom returns the remainder of the chunk containing offset start.
func (b *Buffer[C]) firstFrom(start int) Option[C] {
	if start >= b.available {
		return None[C]()
	}
	cur := b.head
	for start >= len(cur.chunk) {
		start -= len(cur.chunk)
		cur = cur.next
	}
	return Some(cur.chunk[start:])
}
