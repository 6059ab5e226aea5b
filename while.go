// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iobuf

import (
	"errors"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// scan is the state of one while-family operator.
// It survives suspensions: parts and limit carry over between arrivals.
type scan[C Chunk] struct {
	r         *Reader[C]
	src       Source[C]
	cond      func(byte) bool
	limit     int
	inclusive bool
	strict    bool
	keep      bool
	parts     []C
	skipped   int
	resume    resumeFunc
}

func (r *Reader[C]) scanWhile(src Source[C], cond func(byte) bool, limit int, inclusive, strict, keep bool, resume resumeFunc) (kont.Resumed, error) {
	if limit < NoLimit {
		return nil, ErrNegativeCount
	}
	s := &scan[C]{
		r:         r,
		src:       src,
		cond:      cond,
		limit:     limit,
		inclusive: inclusive,
		strict:    strict,
		keep:      keep,
		resume:    resume,
	}
	return s.run()
}

func (s *scan[C]) result() kont.Resumed {
	if s.keep {
		return Join(s.parts...)
	}
	return s.skipped
}

func (s *scan[C]) consume(n int) {
	if s.keep {
		s.parts, _, _ = s.src.ReadInto(s.parts, n)
		return
	}
	k, _ := s.src.Skip(n)
	s.skipped += k
}

// run scans buffered chunks until a stop, the end of the stream, or the
// buffer running dry, in which case it waits for the next arrival.
func (s *scan[C]) run() (kont.Resumed, error) {
	for {
		if s.limit == 0 {
			return s.result(), nil
		}
		first, ok := s.src.First().Get()
		if !ok {
			if s.r.Closed() {
				return s.end()
			}
			s.await()
			return nil, iox.ErrWouldBlock
		}
		n := len(first)
		if s.limit != NoLimit {
			n = min(n, s.limit)
			s.limit -= n
		}
		for i := range n {
			if !s.cond(first[i]) {
				if s.inclusive {
					i++
				}
				s.consume(i)
				return s.result(), nil
			}
		}
		s.consume(n)
	}
}

func (s *scan[C]) await() {
	var sub *Subscription
	sub = s.r.events.subscribe(func(struct{}) {
		if s.src.Empty() {
			return
		}
		sub.Unsubscribe()
		v, err := s.run()
		if errors.Is(err, iox.ErrWouldBlock) {
			return
		}
		s.resume(v, err)
	}, func(error) {
		s.resume(s.end())
	})
}

// end resolves a scan cut short by the reader closing.
func (s *scan[C]) end() (kont.Resumed, error) {
	if err := s.r.Err(); err != nil {
		return nil, err
	}
	if s.strict {
		return nil, ErrEndOfStream
	}
	return s.result(), nil
}
