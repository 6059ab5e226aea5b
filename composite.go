// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iobuf

import "code.hybscloud.com/kont"

// Composite routines built from the simple operators.
// Each is an ordinary kont computation; run it with [Run] or bind it into a
// larger routine.

// IsSpace reports whether b is ASCII whitespace.
func IsSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// NotSpace is the negation of [IsSpace].
func NotSpace(b byte) bool { return !IsSpace(b) }

// lineScan accepts items up to and including the first CR, LF or CRLF.
// A lone CR is recognized only once the following item is seen.
type lineScan struct {
	prev   byte
	ending int
}

func (l *lineScan) accept(b byte) bool {
	if l.prev == '\n' {
		return false
	}
	if b == '\n' {
		l.ending = 1
		if l.prev == '\r' {
			l.ending = 2
		}
		l.prev = b
		return true
	}
	if l.prev == '\r' {
		l.ending = 1
		return false
	}
	l.prev = b
	return true
}

// terminator returns the length of the line break accepted so far.
func (l *lineScan) terminator() int {
	if l.ending == 0 && l.prev == '\r' {
		return 1
	}
	return l.ending
}

func trimLine[C Chunk](line C, l *lineScan) C {
	return line[:len(line)-l.terminator()]
}

// withLineScan gives each run of a line routine its own scanner state.
func withLineScan[A any](f func(l *lineScan) kont.Eff[A]) kont.Eff[A] {
	return kont.Suspend(func(k func(A) kont.Resumed) kont.Resumed {
		return f(&lineScan{})(k)
	})
}

// ReadLine consumes one line and resumes with it. A line ends at LF, CR or
// CRLF, at limit items ([NoLimit] for none), or at the end of the stream. The
// terminator is always consumed and is kept in the result only when inclusive.
func ReadLine[C Chunk](limit int, inclusive bool) kont.Eff[C] {
	return withLineScan(func(l *lineScan) kont.Eff[C] {
		op := ReadWhile[C](l.accept).WithLimit(limit).Lenient()
		return kont.Map(kont.Perform(op), func(line C) C {
			if inclusive {
				return line
			}
			return trimLine(line, l)
		})
	})
}

// PeekLine is ReadLine without consumption or limit.
func PeekLine[C Chunk](inclusive bool) kont.Eff[C] {
	return withLineScan(func(l *lineScan) kont.Eff[C] {
		op := PeekWhile[C](l.accept).Lenient()
		return kont.Map(kont.Perform(op), func(line C) C {
			if inclusive {
				return line
			}
			return trimLine(line, l)
		})
	})
}

// SkipLine discards one line including its terminator and resumes with the
// number of items discarded, counting the terminator only when inclusive.
func SkipLine(inclusive bool) kont.Eff[int] {
	return withLineScan(func(l *lineScan) kont.Eff[int] {
		op := SkipWhile(l.accept).Lenient()
		return kont.Map(kont.Perform(op), func(n int) int {
			if inclusive {
				return n
			}
			return n - l.terminator()
		})
	})
}

// SkipWhitespace discards up to limit ASCII whitespace items ([NoLimit] for
// all) and resumes with the count. Whitespace running into the end of the
// stream is not an error.
func SkipWhitespace(limit int) kont.Eff[int] {
	return kont.Perform(SkipWhile(IsSpace).WithLimit(limit).Lenient())
}

// Demand peeks len(expected) items and compares them with expected.
// On a match it skips them and resumes with them; otherwise it throws the E
// built by mismatch from the items actually seen (fewer than expected if the
// stream ended).
func Demand[E any, C Chunk](expected C, mismatch func(actual C) E) kont.Eff[C] {
	return demand(expected, mismatch, true)
}

// DemandPeek is [Demand] that leaves the matched items in the buffer.
func DemandPeek[E any, C Chunk](expected C, mismatch func(actual C) E) kont.Eff[C] {
	return demand(expected, mismatch, false)
}

func demand[E any, C Chunk](expected C, mismatch func(actual C) E, consume bool) kont.Eff[C] {
	return kont.Bind(kont.Perform(Peek[C](len(expected)).Lenient()), func(actual C) kont.Eff[C] {
		if !Equal(expected, actual) {
			return kont.ThrowError[E, C](mismatch(actual))
		}
		if !consume {
			return kont.Pure(actual)
		}
		return kont.Then(kont.Perform(Skip(len(actual))), kont.Pure(actual))
	})
}

// Call suspends until o settles and resumes with its result as an Either:
// Left carries the rejection error, Right the value.
func Call[A any](o *Outcome[A]) kont.Eff[kont.Either[error, A]] {
	return kont.Map(kont.Perform(Wait(o)), func(struct{}) kont.Either[error, A] {
		v, err := o.Poll()
		if err != nil {
			return kont.Left[error, A](err)
		}
		return kont.Right[error](v)
	})
}

// PeekContext resumes with the top of the context stack of T, or None.
func PeekContext[T any]() kont.Eff[Option[T]] {
	return kont.Perform(LookupContext[T](ContextPeek))
}

// PopContext removes and resumes with the top of the context stack of T.
// Popping an empty stack fails the read with [ErrContractViolation].
func PopContext[T any]() kont.Eff[T] {
	return kont.Map(kont.Perform(LookupContext[T](ContextPop)), func(o Option[T]) T {
		v, _ := o.Get()
		return v
	})
}

// GetContext resumes with the context slot of T, or None.
func GetContext[T any]() kont.Eff[Option[T]] {
	return kont.Perform(LookupContext[T](ContextSlot))
}

// IsCompleted resumes with whether the reader has closed.
func IsCompleted() kont.Eff[bool] {
	return kont.Perform(IsCompletedOp{})
}

// Fail aborts the routine with the user failure err.
// [Run] resolves with Left(err) when E matches its error type parameter.
func Fail[E, A any](err E) kont.Eff[A] {
	return kont.ThrowError[E, A](err)
}
