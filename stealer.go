// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package st3

import "code.hybscloud.com/spin"

// maxStealReserveAttempts bounds how many times Steal retries the
// reservation CAS (step 5 of the algorithm) before giving up and
// reporting Busy. A concurrent FIFO pop or another stealer racing in
// can make the reservation CAS fail transiently; unbounded retry would
// turn a momentary collision into an unbounded spin.
const maxStealReserveAttempts = 64

// Stealer bulk-removes the oldest items from its source queue and moves
// them into a destination Owner. Unlike Owner, Stealer is freely
// clonable and safe to share across goroutines; any number of Stealer
// handles may race to steal from the same source concurrently (only one
// wins at a time — the rest observe Busy).
//
// The caller of Steal must be the same goroutine that owns dest, since
// Steal writes directly into dest's tail region exactly as dest's own
// Push would. Passing a dest this goroutine does not exclusively own
// violates the single-producer contract of that destination queue.
type Stealer[T any] struct {
	q      *queue[T]
	closed bool
}

// Steal moves up to countFn(available)'s result items — clamped to what
// is actually available and to dest's free capacity — from the front of
// the source queue into dest, oldest first. countFn receives the
// pre-clamp available count.
//
// Returns Busy if another steal is already reserving a range on this
// source, or if the reservation CAS could not win within a bounded
// number of attempts. Returns Empty if the source has nothing to offer.
// Returns ErrSelfSteal if dest is backed by this Stealer's own source
// queue.
func (s *Stealer[T]) Steal(dest *Owner[T], countFn func(available int) int) (int, error) {
	if s.closed || dest.closed {
		return 0, ErrClosed
	}
	if dest.q == s.q {
		return 0, ErrSelfSteal
	}

	h := s.q.head.LoadAcquire()
	real, stealerPos := unpackHead(h)
	if real != stealerPos {
		return 0, Busy
	}

	tail := s.q.loadTail()
	available := int(distance(real, tail))
	if available == 0 {
		return 0, Empty
	}

	k := countFn(available)
	if k > available {
		k = available
	}
	if destFree := dest.Cap() - dest.Len(); k > destFree {
		k = destFree
	}
	if k <= 0 {
		return 0, nil
	}

	sw := spin.Wait{}
	reserved := false
	for attempt := 0; attempt < maxStealReserveAttempts; attempt++ {
		newHead := packHead(real, stealerPos+position(k))
		if s.q.head.CompareAndSwapAcqRel(h, newHead) {
			reserved = true
			break
		}
		h = s.q.head.LoadAcquire()
		real, stealerPos = unpackHead(h)
		if real != stealerPos {
			return 0, Busy
		}
		tail = s.q.loadTail()
		available = int(distance(real, tail))
		if available == 0 {
			return 0, Empty
		}
		if k > available {
			k = available
		}
		if k <= 0 {
			return 0, nil
		}
		sw.Once()
	}
	if !reserved {
		return 0, Busy
	}

	// Reservation held: copy the reserved range into dest, then publish
	// dest's new tail before committing the steal on the source.
	destTail := dest.q.loadTailRelaxed()
	for i := 0; i < k; i++ {
		v := s.q.buf.read(real + position(i))
		dest.q.buf.write(destTail+position(i), v)
	}
	dest.q.storeTailRelease(destTail + position(k))

	for {
		h2 := s.q.head.LoadAcquire()
		_, stillReserved := unpackHead(h2)
		newHead := packHead(real+position(k), stillReserved)
		if s.q.head.CompareAndSwapAcqRel(h2, newHead) {
			break
		}
		sw.Once()
	}

	return k, nil
}

// Clone returns a new Stealer bound to the same source queue.
func (s *Stealer[T]) Clone() *Stealer[T] {
	s.q.addRef()
	return &Stealer[T]{q: s.q}
}

// IsEmpty reports whether the source queue appeared empty at the moment
// of the call. Under concurrent pushes or steals this is only a
// snapshot, not a guarantee.
func (s *Stealer[T]) IsEmpty() bool {
	real, _ := unpackHead(s.q.head.LoadAcquire())
	tail := s.q.loadTail()
	return distance(real, tail) == 0
}

// Close releases this Stealer's reference to the shared queue. Calling
// Close more than once is a no-op.
func (s *Stealer[T]) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.q.release()
}
