// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iobuf_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"code.hybscloud.com/iobuf"
)

func pushAll[C iobuf.Chunk](t *testing.T, b iobuf.Source[C], chunks ...C) {
	t.Helper()
	for _, c := range chunks {
		if err := b.Push(c); err != nil {
			t.Fatalf("push %q: %v", c, err)
		}
	}
}

// --- Push / Shift / First ---

func TestBufferPushAvailable(t *testing.T) {
	b := iobuf.NewBuffer[string]()
	if !b.Empty() {
		t.Fatal("new buffer should be empty")
	}
	pushAll(t, b, "12", "3", "", "456789")
	if got := b.Available(); got != 9 {
		t.Fatalf("got %d, want 9", got)
	}
	if b.Binary() {
		t.Fatal("text buffer reported as binary")
	}
}

func TestBufferShiftFirst(t *testing.T) {
	b := iobuf.NewBuffer[string]()
	pushAll(t, b, "ab", "c")
	if got, _ := b.First().Get(); got != "ab" {
		t.Fatalf("got %q, want %q", got, "ab")
	}
	if got := b.Available(); got != 3 {
		t.Fatalf("First changed available: got %d, want 3", got)
	}
	if got, _ := b.Shift().Get(); got != "ab" {
		t.Fatalf("got %q, want %q", got, "ab")
	}
	if got, _ := b.Shift().Get(); got != "c" {
		t.Fatalf("got %q, want %q", got, "c")
	}
	if b.Shift().IsSome() || b.First().IsSome() {
		t.Fatal("drained buffer should have no first chunk")
	}
	if !b.Empty() {
		t.Fatal("drained buffer should be empty")
	}
}

func TestBufferEmptyPushEmits(t *testing.T) {
	b := iobuf.NewBuffer[string]()
	var seen []string
	b.Subscribe(func(c string) { seen = append(seen, c) }, nil)
	pushAll(t, b, "", "x")
	if diff := cmp.Diff([]string{"", "x"}, seen); diff != "" {
		t.Fatalf("arrivals (-want +got):\n%s", diff)
	}
	if b.First().GetOr("?") != "x" {
		t.Fatal("empty chunk must not create a node")
	}
}

func TestBufferPushAfterClose(t *testing.T) {
	b := iobuf.NewBuffer[string]()
	b.Complete()
	if err := b.Push("x"); !errors.Is(err, iobuf.ErrClosed) {
		t.Fatalf("got %v, want ErrClosed", err)
	}
	f := iobuf.NewBuffer[string]()
	f.Fail(errors.New("boom"))
	if err := f.Push("x"); !errors.Is(err, iobuf.ErrClosed) {
		t.Fatalf("got %v, want ErrClosed", err)
	}
	if f.Err() == nil || !f.Completed() {
		t.Fatal("failed buffer should report completion and its error")
	}
}

// --- Read / Peek / Skip ---

func TestBufferScenarioA(t *testing.T) {
	b := iobuf.NewBuffer[string]()
	pushAll(t, b, "12", "3", "456789", "0")
	b.Complete()

	if got, _ := b.Peek(3); got != "123" {
		t.Fatalf("peek: got %q, want %q", got, "123")
	}
	if got := b.Available(); got != 10 {
		t.Fatalf("peek changed available: got %d, want 10", got)
	}
	if got, _ := b.Skip(4); got != 4 {
		t.Fatalf("skip: got %d, want 4", got)
	}
	if got := b.ReadAll(); got != "567890" {
		t.Fatalf("read all: got %q, want %q", got, "567890")
	}
	if !b.Empty() {
		t.Fatal("buffer should be empty after ReadAll")
	}
}

func TestBufferReadSplicesPartialChunk(t *testing.T) {
	b := iobuf.NewBuffer[string]()
	pushAll(t, b, "abc", "defg")
	got, err := b.Read(5)
	if err != nil {
		t.Fatal(err)
	}
	if got != "abcde" {
		t.Fatalf("got %q, want %q", got, "abcde")
	}
	if first, _ := b.First().Get(); first != "fg" {
		t.Fatalf("remainder: got %q, want %q", first, "fg")
	}
	if got := b.Available(); got != 2 {
		t.Fatalf("got %d, want 2", got)
	}
}

func TestBufferReadMoreThanAvailable(t *testing.T) {
	b := iobuf.NewBuffer[string]()
	pushAll(t, b, "ab")
	got, err := b.Read(10)
	if err != nil {
		t.Fatal(err)
	}
	if got != "ab" || !b.Empty() {
		t.Fatalf("got %q (available %d), want %q (0)", got, b.Available(), "ab")
	}
}

func TestBufferReadInto(t *testing.T) {
	b := iobuf.NewBuffer[[]byte]()
	pushAll(t, b, []byte("ab"), []byte("cd"), []byte("ef"))
	parts, n, err := b.ReadInto(nil, 3)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("got %d, want 3", n)
	}
	if diff := cmp.Diff([][]byte{[]byte("ab"), []byte("c")}, parts); diff != "" {
		t.Fatalf("pieces (-want +got):\n%s", diff)
	}
	parts, n = b.ReadAllInto(parts[:0])
	if n != 3 {
		t.Fatalf("got %d, want 3", n)
	}
	if diff := cmp.Diff([][]byte{[]byte("d"), []byte("ef")}, parts); diff != "" {
		t.Fatalf("pieces (-want +got):\n%s", diff)
	}
}

func TestBufferPeekInto(t *testing.T) {
	b := iobuf.NewBuffer[string]()
	pushAll(t, b, "ab", "cd")
	parts, n, err := b.PeekInto(nil, 3)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("got %d, want 3", n)
	}
	if diff := cmp.Diff([]string{"ab", "c"}, parts); diff != "" {
		t.Fatalf("pieces (-want +got):\n%s", diff)
	}
	all, n := b.PeekAllInto(nil)
	if n != 4 {
		t.Fatalf("got %d, want 4", n)
	}
	if diff := cmp.Diff([]string{"ab", "cd"}, all); diff != "" {
		t.Fatalf("pieces (-want +got):\n%s", diff)
	}
	if b.Available() != 4 {
		t.Fatal("peek must not consume")
	}
}

func TestBufferSkipAll(t *testing.T) {
	b := iobuf.NewBuffer[string]()
	pushAll(t, b, "ab", "cde")
	if got := b.SkipAll(); got != 5 {
		t.Fatalf("got %d, want 5", got)
	}
	if !b.Empty() || b.First().IsSome() {
		t.Fatal("SkipAll should clear the buffer")
	}
}

func TestBufferNegativeCount(t *testing.T) {
	b := iobuf.NewBuffer[string]()
	pushAll(t, b, "abc")
	if _, err := b.Read(-1); !errors.Is(err, iobuf.ErrNegativeCount) {
		t.Fatalf("Read: got %v, want ErrNegativeCount", err)
	}
	if _, err := b.Peek(-1); !errors.Is(err, iobuf.ErrNegativeCount) {
		t.Fatalf("Peek: got %v, want ErrNegativeCount", err)
	}
	if _, err := b.Skip(-2); !errors.Is(err, iobuf.ErrNegativeCount) {
		t.Fatalf("Skip: got %v, want ErrNegativeCount", err)
	}
	if _, _, err := b.ReadInto(nil, -1); !errors.Is(err, iobuf.ErrNegativeCount) {
		t.Fatalf("ReadInto: got %v, want ErrNegativeCount", err)
	}
	if _, err := b.Subview(-1); !errors.Is(err, iobuf.ErrNegativeCount) {
		t.Fatalf("Subview: got %v, want ErrNegativeCount", err)
	}
	if err := b.Require(-1, func(int) {}); !errors.Is(err, iobuf.ErrNegativeCount) {
		t.Fatalf("Require: got %v, want ErrNegativeCount", err)
	}
	if got := b.Available(); got != 3 {
		t.Fatalf("negative count mutated buffer: available %d, want 3", got)
	}
}

func TestBufferResultsDoNotAliasBufferedData(t *testing.T) {
	b := iobuf.NewBuffer[[]byte]()
	pushAll(t, b, []byte("abcdef"))
	peeked, _ := b.Peek(1)
	_ = append(peeked, 'P')
	head, _ := b.Read(2)
	_ = append(head, 'Z')
	if got := string(b.PeekAll()); got != "cdef" {
		t.Fatalf("got %q, want %q", got, "cdef")
	}
	parts, _, _ := b.PeekInto(nil, 1)
	_ = append(parts[0], 'Y')
	if got := string(b.PeekAll()); got != "cdef" {
		t.Fatalf("got %q, want %q", got, "cdef")
	}
}

func TestBufferPushClipsChunk(t *testing.T) {
	b := iobuf.NewBuffer[[]byte]()
	p := make([]byte, 2, 8)
	copy(p, "ab")
	pushAll(t, b, p)
	first, _ := b.First().Get()
	if cap(first) != 2 {
		t.Fatalf("cap: got %d, want 2", cap(first))
	}
}

// --- Require / Subscribe ---

func TestBufferRequireImmediate(t *testing.T) {
	b := iobuf.NewBuffer[string]()
	pushAll(t, b, "abcd")
	got := -1
	if err := b.Require(3, func(n int) { got = n }); err != nil {
		t.Fatal(err)
	}
	if got != 4 {
		t.Fatalf("got %d, want 4", got)
	}
}

func TestBufferRequireDeferred(t *testing.T) {
	b := iobuf.NewBuffer[string]()
	calls := 0
	got := 0
	if err := b.Require(4, func(n int) { calls++; got = n }); err != nil {
		t.Fatal(err)
	}
	pushAll(t, b, "ab")
	if calls != 0 {
		t.Fatal("Require fired early")
	}
	pushAll(t, b, "cde", "f")
	if calls != 1 {
		t.Fatalf("got %d calls, want 1", calls)
	}
	if got != 5 {
		t.Fatalf("got %d, want 5", got)
	}
}

func TestBufferSubscribeOrderAndDone(t *testing.T) {
	b := iobuf.NewBuffer[string]()
	var log []string
	first := b.Subscribe(func(c string) { log = append(log, "1:"+c) }, func(err error) { log = append(log, "1:done") })
	b.Subscribe(func(c string) { log = append(log, "2:"+c) }, func(err error) { log = append(log, "2:done") })
	pushAll(t, b, "a")
	first.Unsubscribe()
	first.Unsubscribe()
	if first.Active() {
		t.Fatal("unsubscribed listener reported active")
	}
	pushAll(t, b, "b")
	b.Complete()
	b.Complete()
	want := []string{"1:a", "2:a", "2:b", "2:done"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Fatalf("events (-want +got):\n%s", diff)
	}
}

func TestBufferSubscribeAfterClose(t *testing.T) {
	b := iobuf.NewBuffer[string]()
	boom := errors.New("boom")
	b.Fail(boom)
	var got error
	sub := b.Subscribe(nil, func(err error) { got = err })
	if got != boom {
		t.Fatalf("got %v, want %v", got, boom)
	}
	if sub.Active() {
		t.Fatal("subscription on a closed buffer should be inert")
	}
}
