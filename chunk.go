// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iobuf

import "reflect"

// Chunk is the constraint for the two chunk kinds: text runs (string-like)
// and binary runs (byte-slice-like).
//
// Both kinds share one algebra: len, zero-copy slicing, byte indexing and
// conversion from a joined byte slice all apply to every type in the set.
// Items are bytes for both kinds; a text chunk is UTF-8 and counts are in bytes.
type Chunk interface {
	~string | ~[]byte
}

// Slice returns c[start:end] without copying.
// The result shares memory with c; chunks are never mutated in place, so a
// binary result has its capacity clipped to its length.
func Slice[C Chunk](c C, start, end int) C {
	return clip(c[start:end])
}

// clip caps a binary chunk's capacity at its length, so appending to it
// reallocates instead of overwriting the items that follow it.
func clip[C Chunk](c C) C {
	switch b := any(c).(type) {
	case string:
		return c
	case []byte:
		return C(b[:len(b):len(b)])
	}
	v := reflect.ValueOf(&c).Elem()
	if v.Kind() == reflect.Slice && v.Cap() > v.Len() {
		v.Set(v.Slice3(0, v.Len(), v.Len()))
	}
	return c
}

// Empty returns the empty chunk of kind C.
func Empty[C Chunk]() C {
	var zero C
	return zero
}

// ItemAt returns the i-th item of c.
func ItemAt[C Chunk](c C, i int) byte {
	return c[i]
}

// Equal reports whether a and b hold the same items.
func Equal[C Chunk](a, b C) bool {
	return string(a) == string(b)
}

// IsBinary reports whether C is the binary chunk kind.
func IsBinary[C Chunk]() bool {
	return reflect.TypeFor[C]().Kind() == reflect.Slice
}

// Join concatenates chunks into one chunk of the same kind.
// A single chunk is returned as is; no chunks yield [Empty].
func Join[C Chunk](chunks ...C) C {
	switch len(chunks) {
	case 0:
		return Empty[C]()
	case 1:
		return chunks[0]
	}
	n := 0
	for _, c := range chunks {
		n += len(c)
	}
	joined := make([]byte, 0, n)
	for _, c := range chunks {
		joined = append(joined, c...)
	}
	return C(joined)
}
