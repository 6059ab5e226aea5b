// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iobuf_test

import (
	"math/rand/v2"
	"strings"
	"testing"

	"code.hybscloud.com/kont"

	"code.hybscloud.com/iobuf"
)

const propertyN = 300

// randText returns a random lowercase string of length [0, limit].
func randText(rng *rand.Rand, limit int) string {
	b := make([]byte, rng.IntN(limit+1))
	for i := range b {
		b[i] = byte('a' + rng.IntN(26))
	}
	return string(b)
}

// split cuts s into random, possibly empty, pieces.
func split(rng *rand.Rand, s string) []string {
	var parts []string
	for len(s) > 0 {
		n := min(rng.IntN(5), len(s))
		parts = append(parts, s[:n])
		s = s[n:]
	}
	return parts
}

// --- Group 1: Buffer accounting ---

// TestPropertyAvailableInvariant: Available equals the length of the
// unconsumed content after any sequence of operations.
func TestPropertyAvailableInvariant(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	for range propertyN {
		b := iobuf.NewBuffer[string]()
		model := ""
		for range 40 {
			n := rng.IntN(8)
			switch rng.IntN(5) {
			case 0:
				c := randText(rng, 6)
				if err := b.Push(c); err != nil {
					t.Fatal(err)
				}
				model += c
			case 1:
				got, _ := b.Read(n)
				want := model[:min(n, len(model))]
				if got != want {
					t.Fatalf("read(%d): got %q, want %q", n, got, want)
				}
				model = model[len(want):]
			case 2:
				before := b.Available()
				got, _ := b.Peek(n)
				if got != model[:min(n, len(model))] {
					t.Fatalf("peek(%d): got %q, model %q", n, got, model)
				}
				if b.Available() != before {
					t.Fatalf("peek changed available: %d -> %d", before, b.Available())
				}
			case 3:
				skipped, _ := b.Skip(n)
				if skipped != min(n, len(model)) {
					t.Fatalf("skip(%d): got %d, model %q", n, skipped, model)
				}
				model = model[skipped:]
			case 4:
				if c, ok := b.Shift().Get(); ok {
					if model[:len(c)] != c {
						t.Fatalf("shift: got %q, model %q", c, model)
					}
					model = model[len(c):]
				}
			}
			if b.Available() != len(model) {
				t.Fatalf("available %d, model %d", b.Available(), len(model))
			}
			if got := b.PeekAll(); got != model {
				t.Fatalf("content %q, model %q", got, model)
			}
		}
	}
}

// TestPropertySubviewIndependence: consuming through a subview leaves the
// source untouched.
func TestPropertySubviewIndependence(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 1))
	for range propertyN {
		b := iobuf.NewBuffer[string]()
		content := randText(rng, 30)
		pushAll(t, b, split(rng, content)...)
		start := rng.IntN(len(content) + 2)
		v, _ := b.Subview(start)
		n := rng.IntN(10)
		got, _ := v.Read(n)
		lo := min(start, len(content))
		want := content[lo:min(lo+n, len(content))]
		if got != want {
			t.Fatalf("subview(%d).read(%d): got %q, want %q", start, n, got, want)
		}
		if b.Available() != len(content) || b.PeekAll() != content {
			t.Fatal("subview read consumed the source")
		}
	}
}

// --- Group 2: Chunk-boundary independence ---

// readSizes reads len(sizes) strict chunks and concatenates them.
func readSizes(sizes []int) kont.Eff[string] {
	var loop func(i int, acc string) kont.Eff[string]
	loop = func(i int, acc string) kont.Eff[string] {
		if i == len(sizes) {
			return kont.Pure(acc)
		}
		return kont.Bind(kont.Perform(iobuf.Read[string](sizes[i])), func(c string) kont.Eff[string] {
			if len(c) != sizes[i] {
				return iobuf.Fail[string, string]("short read")
			}
			return loop(i+1, acc+c)
		})
	}
	return loop(0, "")
}

// TestPropertyChunkBoundaryIndependence: reading the same content yields the
// same result however the pushes split it.
func TestPropertyChunkBoundaryIndependence(t *testing.T) {
	rng := rand.New(rand.NewPCG(2026, 10))
	for range propertyN {
		content := randText(rng, 40)
		var sizes []int
		for rest := len(content); rest > 0; {
			n := min(1+rng.IntN(6), rest)
			sizes = append(sizes, n)
			rest -= n
		}
		b := iobuf.NewBuffer[string]()
		r := iobuf.NewReader(b)
		out := iobuf.Run[string](r, readSizes(sizes), nil)
		pushAll(t, b, split(rng, content)...)
		b.Complete()
		if got := right(t, out); got != content {
			t.Fatalf("got %q, want %q (sizes %v)", got, content, sizes)
		}
	}
}

// TestPropertyWhileBoundaryIndependence: a while scan stops at the same item
// however the pushes split the input.
func TestPropertyWhileBoundaryIndependence(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 3))
	notZ := func(c byte) bool { return c != 'z' }
	for range propertyN {
		content := randText(rng, 40) + "z" + randText(rng, 5)
		want := content[:strings.IndexByte(content, 'z')]
		b := iobuf.NewBuffer[string]()
		r := iobuf.NewReader(b)
		out := iobuf.Do(r, iobuf.ReadWhile[string](notZ))
		pushAll(t, b, split(rng, content)...)
		if got := settled(t, out); got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
		if got, _ := b.Peek(1); got != "z" {
			t.Fatalf("scan should stop before the first z, next is %q", got)
		}
	}
}

