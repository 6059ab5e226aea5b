// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iobuf

import "errors"

// Failure taxonomy.
//
// Pending is not a failure: interpreters report it as iox.ErrWouldBlock and an
// Outcome that is not yet settled polls as iox.ErrWouldBlock.
//
// Producer failures (Buffer.Fail) are delivered unchanged to every pending and
// subsequent read that cannot be satisfied from buffered data.
//
// User failures are raised by the routine itself via kont.ThrowError (or
// [Fail]) and surface as the Left side of the read's kont.Either.

// ErrEndOfStream means a strict operator could not be satisfied before the
// source completed or the reader was cancelled.
var ErrEndOfStream = errors.New("iobuf: end of stream")

// ErrNegativeCount means a count, limit or start argument was negative.
// It is reported before any mutation.
var ErrNegativeCount = errors.New("iobuf: negative count")

// ErrContractViolation means the context discipline was broken: stack and slot
// operations mixed for one type, pop of an empty stack, set of an already set
// slot, or unset of an absent slot.
var ErrContractViolation = errors.New("iobuf: context contract violation")

// ErrClosed means a chunk was pushed after the buffer completed or failed.
var ErrClosed = errors.New("iobuf: buffer closed")

// ErrUnknownOperator means a routine suspended on an operation that no
// interpreter handles.
var ErrUnknownOperator = errors.New("iobuf: unknown operator")
