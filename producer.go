// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iobuf

import (
	"bytes"
	"io"

	"code.hybscloud.com/iox"
)

// readFromSize is the scratch size used by ReadFrom per Read call.
const readFromSize = 32 * 1024

var (
	_ io.Writer       = (*Buffer[string])(nil)
	_ io.StringWriter = (*Buffer[string])(nil)
	_ io.ReaderFrom   = (*Buffer[[]byte])(nil)
	_ io.Closer       = (*Buffer[[]byte])(nil)
)

// Write pushes a copy of p as one chunk.
func (b *Buffer[C]) Write(p []byte) (int, error) {
	if err := b.Push(C(bytes.Clone(p))); err != nil {
		return 0, err
	}
	return len(p), nil
}

// WriteString pushes s as one chunk.
func (b *Buffer[C]) WriteString(s string) (int, error) {
	if err := b.Push(C(s)); err != nil {
		return 0, err
	}
	return len(s), nil
}

// Close completes the buffer.
func (b *Buffer[C]) Close() error {
	b.Complete()
	return nil
}

// ReadFrom pushes everything r yields, one chunk per Read.
//
// It follows iox semantics so it can sit in an event loop:
//   - iox.ErrWouldBlock: returns (n, ErrWouldBlock); call again after readiness.
//   - iox.ErrMore: the chunk is pushed and reading continues.
//   - io.EOF: completes the buffer and returns (n, nil).
//   - any other error: fails the buffer with it and returns it.
//
// A (0, nil) read stops and returns (n, nil) without completing.
func (b *Buffer[C]) ReadFrom(r io.Reader) (n int64, err error) {
	p := make([]byte, readFromSize)
	for {
		m, rerr := r.Read(p)
		if m > 0 {
			if perr := b.Push(C(bytes.Clone(p[:m]))); perr != nil {
				return n, perr
			}
			n += int64(m)
		}
		switch iox.Classify(rerr) {
		case iox.OutcomeOK:
			if m == 0 {
				return n, nil
			}
		case iox.OutcomeMore:
		case iox.OutcomeWouldBlock:
			return n, rerr
		default:
			if rerr == io.EOF {
				b.Complete()
				return n, nil
			}
			b.Fail(rerr)
			return n, rerr
		}
	}
}
