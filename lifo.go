// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package st3

// NewLIFO creates a fixed-capacity work-stealing queue whose Owner.Pop
// returns the newest item first. Stealer.Steal still takes oldest-first
// regardless of this choice. capacity must be a power of two in
// [1, MaxCapacity].
func NewLIFO[T any](capacity int) (*Owner[T], error) {
	q, err := newQueue[T](capacity, popLIFOOrder)
	if err != nil {
		return nil, err
	}
	return &Owner[T]{q: q}, nil
}

// popLIFO returns the newest item, or Empty.
//
// This follows the classical Chase-Lev shape: speculatively decrement
// tail first, force a full fence, then reload the head to decide what
// actually happened. Deciding before the decrement (checking head, then
// storing tail) does not work on weakly-ordered hardware: a concurrent
// bulk steal can load the pre-decrement tail and reserve straight through
// the slot this pop is about to take, and nothing short of a fence
// between our store and our reload of the steal's progress would let us
// notice. The fence here is the zero-delta AddAcqRel read-modify-write
// idiom for a full barrier, the same trick a Chase-Lev deque uses for
// its bottom/top ordering.
func (o *Owner[T]) popLIFO() (T, error) {
	var zero T

	tailOriginal := o.q.loadTailRelaxed()
	candidate := tailOriginal - 1
	o.q.storeTailRelaxed(candidate)

	h := o.q.head.AddAcqRel(0) // full fence, then reload
	real, stealerPos := unpackHead(h)
	avail := distance(real, tailOriginal)

	if avail == 0 {
		// Queue was already empty before the speculative decrement.
		o.q.storeTailRelaxed(tailOriginal)
		return zero, Empty
	}

	if avail == 1 {
		// Single item: owner and any in-flight steal contend for the
		// same slot. The queue is empty either way once this resolves,
		// so tail is restored regardless of which side wins.
		o.q.storeTailRelaxed(tailOriginal)
		if stealerPos != real {
			// A steal already reserved (or has taken) this slot.
			return zero, Empty
		}
		newHead := packHead(tailOriginal, tailOriginal)
		if o.q.head.CompareAndSwapAcqRel(h, newHead) {
			return o.q.buf.read(candidate), nil
		}
		return zero, Empty
	}

	// Two or more items were present before the decrement. The fast
	// path — no CAS, tail is already published — is only safe while the
	// reservation frontier (stealer_head) has not reached candidate: if
	// it has, a bulk steal already claimed that slot, possibly mid-copy.
	if distance(real, stealerPos) > distance(real, candidate) {
		o.q.storeTailRelaxed(tailOriginal)
		return zero, Empty
	}

	return o.q.buf.read(candidate), nil
}
