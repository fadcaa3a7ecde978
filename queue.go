// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package st3

import "code.hybscloud.com/atomix"

// pad occupies a cache line so that the hot atomic fields it separates
// don't false-share with each other under concurrent access from the
// owner and any number of stealers.
type pad [64]byte

// popOrder selects whether an Owner's Pop returns the oldest or the
// newest item. The two variants share everything except this and the
// pop algorithm itself.
type popOrder uint8

const (
	popFIFOOrder popOrder = iota
	popLIFOOrder
)

// queue is the state shared by one Owner and all of its Stealer clones.
// It lives as long as any handle referencing it does; refs tracks how
// many handles are outstanding, and the last Close drives teardown.
type queue[T any] struct {
	_        pad
	head     atomix.Uint64 // packed (real_head, stealer_head)
	_        pad
	tail     atomix.Uint64 // one past the last pushed position
	_        pad
	refs     atomix.Int32
	_        pad
	torndown atomix.Bool

	buf      ring[T]
	capacity uint32
	order    popOrder
}

func newQueue[T any](capacity int, order popOrder) (*queue[T], error) {
	if capacity < 1 || capacity > MaxCapacity || capacity&(capacity-1) != 0 {
		return nil, &ConstructionError{Capacity: capacity}
	}
	q := &queue[T]{
		buf:      newRing[T](capacity),
		capacity: uint32(capacity),
		order:    order,
	}
	q.refs.StoreRelaxed(1)
	return q, nil
}

func (q *queue[T]) loadTail() position {
	return position(q.tail.LoadAcquire())
}

func (q *queue[T]) loadTailRelaxed() position {
	return position(q.tail.LoadRelaxed())
}

func (q *queue[T]) storeTailRelease(p position) {
	q.tail.StoreRelease(uint64(p))
}

func (q *queue[T]) storeTailRelaxed(p position) {
	q.tail.StoreRelaxed(uint64(p))
}

// addRef is called whenever a new handle referencing this state is
// created (Stealer, Clone, Drain).
func (q *queue[T]) addRef() {
	q.refs.AddAcqRel(1)
}

// release is called whenever a handle referencing this state is closed.
// The last release runs teardown exactly once.
func (q *queue[T]) release() {
	if q.refs.AddAcqRel(-1) == 0 {
		q.teardown()
	}
}

// teardown clears any slots still holding a live item. It must run at
// most once per queue, which the refcount protocol guarantees: only the
// handle that observes the count drop to zero calls it.
func (q *queue[T]) teardown() {
	if q.torndown.LoadAcquire() {
		return
	}
	q.torndown.StoreRelease(true)
	real, _ := unpackHead(q.head.LoadAcquire())
	tail := q.loadTail()
	for p := real; p != tail; p++ {
		q.buf.read(p)
	}
}

// length returns an approximation of the live item count: a lower bound
// under concurrent stealing, exact when called by the owner with no
// in-flight steal.
func (q *queue[T]) length() int {
	real, _ := unpackHead(q.head.LoadAcquire())
	tail := q.loadTail()
	return int(distance(real, tail))
}
