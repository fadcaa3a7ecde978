// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package st3

import "code.hybscloud.com/spin"

// NewFIFO creates a fixed-capacity work-stealing queue whose Owner.Pop
// returns the oldest item first. capacity must be a power of two in
// [1, MaxCapacity].
func NewFIFO[T any](capacity int) (*Owner[T], error) {
	q, err := newQueue[T](capacity, popFIFOOrder)
	if err != nil {
		return nil, err
	}
	return &Owner[T]{q: q}, nil
}

// popFIFO returns the oldest item, or Empty.
//
// The packed head CAS advances real_head and stealer_head together,
// which both reserves the slot against stealers and commits its removal
// in one RMW. That CAS is only sound while no steal is in flight: if a
// reservation is active (stealer_head > real_head), jumping both halves
// by one would hand the reserved slot to this pop and to the stealer at
// once. So popFIFO spins until the head is quiescent before attempting
// it, rather than racing the CAS unconditionally.
func (o *Owner[T]) popFIFO() (T, error) {
	var zero T
	sw := spin.Wait{}
	for {
		h := o.q.head.LoadAcquire()
		real, stealerPos := unpackHead(h)
		tail := o.q.loadTail()
		if real == tail {
			return zero, Empty
		}
		if real != stealerPos {
			// A steal is reserving [real, stealerPos); wait for it to
			// commit rather than racing it.
			sw.Once()
			continue
		}
		newHead := packHead(real+1, stealerPos+1)
		if o.q.head.CompareAndSwapAcqRel(h, newHead) {
			return o.q.buf.read(real), nil
		}
		sw.Once()
	}
}
