// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package st3

import (
	"errors"
	"fmt"

	"code.hybscloud.com/iox"
)

// Empty indicates a pop or steal found no items available.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency: an
// empty queue is a control-flow signal, not a failure. Callers should
// retry (with backoff) or move on, not propagate the error.
//
// Example:
//
//	backoff := iox.Backoff{}
//	for {
//	    v, err := owner.Pop()
//	    if err == nil {
//	        backoff.Reset()
//	        handle(v)
//	        continue
//	    }
//	    if st3.IsWouldBlock(err) {
//	        backoff.Wait()
//	        continue
//	    }
//	    return err
//	}
var Empty = iox.ErrWouldBlock

// Busy indicates a steal could not proceed because another steal is
// already reserving a range on the same source queue. Unlike Empty, Busy
// says nothing about how many items are available — the caller can retry
// immediately or back off, at its discretion.
var Busy = errors.New("st3: steal already in progress")

// ErrSelfSteal is returned when a Stealer's source queue and the
// destination Owner passed to Steal are backed by the same shared state.
// Stealing into one's own queue is unspecified by design and is rejected
// here rather than silently treated as a no-op.
var ErrSelfSteal = errors.New("st3: cannot steal into the source queue")

// ErrClosed is returned by operations attempted on a handle after Close
// has already released its reference.
var ErrClosed = errors.New("st3: handle is closed")

// ConstructionError reports a capacity that failed to validate at
// construction: not a power of two, zero, or larger than MaxCapacity.
type ConstructionError struct {
	Capacity int
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("st3: invalid capacity %d: must be a power of two in [1, %d]", e.Capacity, MaxCapacity)
}

// FullError is returned by Push when the queue is at capacity. Value
// holds the element that could not be enqueued so the caller never loses
// it silently.
type FullError[T any] struct {
	Value T
}

func (e *FullError[T]) Error() string {
	return "st3: queue is full"
}

// semantic marks FullError as a control-flow signal for IsSemantic.
func (e *FullError[T]) semantic() {}

type semanticError interface {
	semantic()
}

// IsWouldBlock reports whether err indicates an operation would have
// blocked (queue empty). Delegates to [iox.IsWouldBlock] for wrapped
// error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control-flow signal rather than a
// failure: Empty, Busy, and FullError all qualify.
func IsSemantic(err error) bool {
	if err == nil {
		return false
	}
	if iox.IsSemantic(err) || errors.Is(err, Busy) {
		return true
	}
	var se semanticError
	return errors.As(err, &se)
}

// IsNonFailure reports whether err represents a non-failure outcome: nil,
// Empty, or Busy. A FullError is not a non-failure — it returns the
// caller's value back, but the push did not happen.
func IsNonFailure(err error) bool {
	if err == nil {
		return true
	}
	return iox.IsNonFailure(err) || errors.Is(err, Busy)
}
