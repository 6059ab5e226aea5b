// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package iobuf incrementally buffers a live stream of text or binary chunks
// and reads it through declarative operators that resolve immediately when the
// data is already buffered, or later when enough data arrives.
//
// It is the substrate beneath incremental parsers and tokenizers: no goroutine
// blocks, and the whole input is never materialized.
//
// # Chunks
//
// A chunk is a string or a []byte ([Chunk]). Items are bytes for both kinds;
// counts are byte counts. Slicing is zero-copy; joining produces a new chunk.
//
// # Buffers
//
// [Buffer] is an ordered queue of chunks with a running item count. Producers
// call [Buffer.Push], [Buffer.Complete] and [Buffer.Fail], or use the io
// adapters ([Buffer.Write], [Buffer.WriteString], [Buffer.ReadFrom],
// [Buffer.Close]). [Subview] is a zero-copy view at an offset into a Buffer
// whose reads never consume from it. Both implement [Source].
//
// # Operators
//
// Operators are immutable descriptors of one atomic action, and kont effect
// operations at the same time:
//
//   - Basic family: [Read], [Peek], [Skip] and their *All forms
//   - While family: [ReadWhile], [PeekWhile], [SkipWhile]
//   - [Wait] on any [Signal], such as an [Outcome]
//   - Context family: [PushContext], [SetContext], [UnsetContext], [LookupContext]
//   - [IsCompletedOp]
//
// Count operators are strict by default: if the stream ends first they fail
// with [ErrEndOfStream]. Lenient() variants resolve with what is left.
//
// # Reading
//
// A [Reader] binds to one Source and interprets operators against it.
// [Do] runs one operator; [Run] and [RunExpr] drive a whole kont routine,
// stepping it with kont.Step and suspending whenever an operator must wait:
//
//	r := iobuf.NewReader(buf)
//	header := kont.Bind(kont.Perform(iobuf.Read[string](4)), func(magic string) kont.Eff[string] {
//		if magic != "IOB1" {
//			return iobuf.Fail[string, string]("bad magic")
//		}
//		return iobuf.ReadLine[string](iobuf.NoLimit, false)
//	})
//	out := iobuf.Run[string](r, header, nil)
//
// The returned [Outcome] settles synchronously if the routine finished on
// buffered data, otherwise from inside the Push or Complete that lets it
// finish. Run resolves with kont.Right on completion and kont.Left when the
// routine throws its error type; system failures reject the Outcome.
//
// Steps on one Reader never nest: work made ready during a step (for example
// by pushing from inside a routine) is queued and runs after it.
//
// # Contexts
//
// Each top-level read carries a [Contexts] collection of ambient values keyed
// by type: either a LIFO stack or a single slot per type. Misuse returns
// [ErrContractViolation].
//
// # Concurrency
//
// A Buffer, its Subviews and its Readers belong to one goroutine.
// Nothing is locked.
package iobuf
