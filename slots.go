// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package st3

// ring is indexed, untyped storage for up to capacity items, capacity a
// power of two fixed at construction. A slot carries no sequence number of
// its own: synchronization is entirely carried by the head/tail protocol
// in queue.go, which is what makes write and read safe to call with no
// atomics of their own.
type ring[T any] struct {
	slots []T
	mask  uint32
}

func newRing[T any](capacity int) ring[T] {
	return ring[T]{
		slots: make([]T, capacity),
		mask:  uint32(capacity) - 1,
	}
}

func (r *ring[T]) index(p position) uint32 {
	return p & r.mask
}

// write stores v at the slot for position p. Only the owner ever calls
// this, and only for a position it is about to publish via a tail or head
// release store.
func (r *ring[T]) write(p position, v T) {
	r.slots[r.index(p)] = v
}

// read returns the value at position p by move, clearing the slot so it
// does not pin referenced memory and so a later drop pass cannot observe
// a stale value as live.
func (r *ring[T]) read(p position) T {
	i := r.index(p)
	v := r.slots[i]
	var zero T
	r.slots[i] = zero
	return v
}
