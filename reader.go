// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iobuf

// Reader interprets operators and routines against one [Source].
//
// A Reader forwards the source's arrivals to its own listeners and closes when
// the source completes or fails, or when Unsubscribe is called. Once closed,
// strict operators that cannot be satisfied from buffered data fail with
// [ErrEndOfStream] (or the source's error), lenient ones resolve with what is
// buffered.
//
// Every routine step on a Reader runs from its ready queue: work that becomes
// ready while a step is executing (for example a push made from inside a
// routine) is queued and runs after the current step suspends or finishes.
// Steps never nest or overlap.
type Reader[C Chunk] struct {
	src      Source[C]
	sub      *Subscription
	events   channel[struct{}]
	cancels  channel[struct{}]
	ready    []func()
	draining bool
}

// NewReader creates a Reader bound to src.
// A Reader over an already terminated source starts closed.
func NewReader[C Chunk](src Source[C]) *Reader[C] {
	r := &Reader[C]{src: src}
	r.sub = src.Subscribe(func(C) { r.events.emit(struct{}{}) }, r.close)
	return r
}

// Source returns the source the reader is bound to.
func (r *Reader[C]) Source() Source[C] { return r.src }

// Available returns the source's unconsumed item count.
func (r *Reader[C]) Available() int { return r.src.Available() }

// Binary reports whether the reader consumes binary chunks.
func (r *Reader[C]) Binary() bool { return r.src.Binary() }

// Closed reports whether the reader has closed.
func (r *Reader[C]) Closed() bool { return r.events.closed }

// Err returns the source failure that closed the reader, or nil.
func (r *Reader[C]) Err() error { return r.events.err }

// Subscribe registers listeners for arrivals and for the reader closing.
func (r *Reader[C]) Subscribe(onArrival func(), onDone func(error)) *Subscription {
	var next func(struct{})
	if onArrival != nil {
		next = func(struct{}) { onArrival() }
	}
	return r.events.subscribe(next, onDone)
}

// Unsubscribe detaches the reader from its source and closes it.
// Pending operators receive a synthetic end of stream, and pending waits
// fail with [ErrEndOfStream]. It is idempotent.
func (r *Reader[C]) Unsubscribe() {
	if !r.events.closed {
		log.Debugf("reader cancelled with %d items buffered", r.src.Available())
	}
	r.close(nil)
	r.cancels.close(ErrEndOfStream)
}

func (r *Reader[C]) close(err error) {
	if r.events.closed {
		return
	}
	if r.sub != nil {
		r.sub.Unsubscribe()
	}
	if err != nil {
		log.Debugf("reader closed by source failure: %v", err)
	}
	r.events.close(err)
}

// schedule appends f to the ready queue and drains the queue unless a drain
// is already in progress further up the stack.
func (r *Reader[C]) schedule(f func()) {
	r.ready = append(r.ready, f)
	if r.draining {
		return
	}
	r.draining = true
	defer func() { r.draining = false }()
	for len(r.ready) > 0 {
		next := r.ready[0]
		r.ready[0] = nil
		r.ready = r.ready[1:]
		next()
	}
	r.ready = nil
}
