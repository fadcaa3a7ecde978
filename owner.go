// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package st3

import "code.hybscloud.com/spin"

// Owner is the single handle allowed to push and pop locally. It is not
// safe for concurrent use by more than one goroutine: callers must
// enforce (or document) that Push, Pop, Drain and Close run on one
// goroutine at a time, the way a single-producer ring buffer always
// requires.
//
// An Owner created by NewFIFO pops oldest-first; one created by NewLIFO
// pops newest-first. Stealer.Steal always takes oldest-first regardless
// of the owner's variant.
type Owner[T any] struct {
	q      *queue[T]
	closed bool
}

// Push appends v to the tail of the queue. It fails with a *FullError[T]
// (carrying v back) when occupancy already equals capacity. Push only
// reads the head field (for the capacity check), never writes it, and
// performs no atomic read-modify-write; it is
// the cheapest operation in the package.
func (o *Owner[T]) Push(v T) error {
	if o.closed {
		return ErrClosed
	}
	tail := o.q.loadTailRelaxed()
	real, _ := unpackHead(o.q.head.LoadAcquire())
	if distance(real, tail) >= o.q.capacity {
		return &FullError[T]{Value: v}
	}
	o.q.buf.write(tail, v)
	o.q.storeTailRelease(tail + 1)
	return nil
}

// Extend pushes as many values from vs, in order, as the queue has
// spare capacity for, then publishes all of them with a single tail
// release store — the same batch-write-then-one-release shape
// Stealer.Steal uses to commit a multi-item steal, applied here to the
// owner's own tail instead of a destination's. Unlike Push, running out
// of room is not a failure: Extend takes however many of vs fit
// (possibly zero, possibly fewer than len(vs)) and returns that count;
// the values beyond what fit are left untouched in vs for the caller to
// retry or discard. This mirrors the truncate-rather-than-fail behavior
// of the original implementation's Worker::extend, which accepts an
// unbounded iterator and simply stops pulling from it once full.
func (o *Owner[T]) Extend(vs []T) (int, error) {
	if o.closed {
		return 0, ErrClosed
	}
	tail := o.q.loadTailRelaxed()
	real, _ := unpackHead(o.q.head.LoadAcquire())
	free := int(o.q.capacity) - int(distance(real, tail))
	if free <= 0 {
		return 0, nil
	}
	n := len(vs)
	if n > free {
		n = free
	}
	for i, v := range vs[:n] {
		o.q.buf.write(tail+position(i), v)
	}
	o.q.storeTailRelease(tail + position(n))
	return n, nil
}

// SpareCapacity returns how many more items Push/Extend could accept
// right now: Cap() - Len(). Like Len, this is an approximation under
// concurrent stealing — a lower bound from the owner's perspective,
// since a stealer committing between this call and the caller acting on
// it can only free up more room, never less.
func (o *Owner[T]) SpareCapacity() int {
	return o.Cap() - o.Len()
}

// Pop removes and returns one item, in the order determined by which
// constructor created this Owner. Returns Empty when no item is
// available.
func (o *Owner[T]) Pop() (T, error) {
	if o.closed {
		var zero T
		return zero, ErrClosed
	}
	if o.q.order == popLIFOOrder {
		return o.popLIFO()
	}
	return o.popFIFO()
}

// Cap returns the queue's fixed capacity.
func (o *Owner[T]) Cap() int {
	return int(o.q.capacity)
}

// Len returns an approximation of the number of items currently queued.
// Under concurrent stealing it is not an exact count: items reserved by
// an in-flight steal or an open Drainer are still counted until they are
// committed, so the value may exceed what remains.
func (o *Owner[T]) Len() int {
	return o.q.length()
}

// Stealer returns a new Stealer bound to the same underlying queue. The
// returned handle is safe to clone further and to move to other
// goroutines.
func (o *Owner[T]) Stealer() *Stealer[T] {
	o.q.addRef()
	return &Stealer[T]{q: o.q}
}

// Close releases this Owner's reference to the shared queue. Once every
// handle (the Owner, every Stealer derived from it, and any open Drainer)
// has been closed, any items still present are cleared exactly once. Calling Close more
// than once is a no-op.
func (o *Owner[T]) Close() {
	if o.closed {
		return
	}
	o.closed = true
	o.q.release()
}

// Drainer iterates the items reserved by a call to Owner.Drain, in
// oldest-first order. While a Drainer is open, concurrent Stealer.Steal
// calls on the same queue observe Busy, exactly as they would during an
// ordinary in-flight steal.
//
// A Drainer holds its own reference on the underlying queue (taken by
// Drain, released by whichever of Next or Close first finishes the
// drain), the same way a Stealer does. This is what lets the Owner and
// every Stealer be closed while a Drainer is still iterating without
// teardown running underneath it: teardown only fires once the last
// reference — which may be the Drainer's — goes away.
type Drainer[T any] struct {
	q    *queue[T]
	cur  position
	end  position
	done bool
}

// Drain reserves items from the front of the queue (as Steal would) and
// returns an iterator over them. countFn receives the pre-clamp
// available count and returns how many items to actually reserve,
// clamped to what is available; passing a countFn that always returns
// its argument drains everything.
//
// Drain takes the same reservation CAS that Steal does, so it competes
// with concurrent steals exactly as another stealer would: only one of
// them wins the race to set stealer_head ahead of real_head at a time.
func (o *Owner[T]) Drain(countFn func(available int) int) (*Drainer[T], error) {
	if o.closed {
		return nil, ErrClosed
	}
	sw := spin.Wait{}
	for {
		h := o.q.head.LoadAcquire()
		real, stealerPos := unpackHead(h)
		if real != stealerPos {
			return nil, Busy
		}
		tail := o.q.loadTail()
		available := distance(real, tail)
		if available == 0 {
			return nil, Empty
		}
		k := countFn(int(available))
		if k <= 0 {
			return nil, Empty
		}
		if k > int(available) {
			k = int(available)
		}
		newHead := packHead(real, real+position(k))
		if o.q.head.CompareAndSwapAcqRel(h, newHead) {
			o.q.addRef()
			return &Drainer[T]{q: o.q, cur: real, end: real + position(k)}, nil
		}
		sw.Once()
	}
}

// Next returns the next reserved item, or ok == false once the drain is
// exhausted. Exhaustion releases the Drainer's reference on the queue,
// the same as calling Close would.
func (d *Drainer[T]) Next() (v T, ok bool) {
	if d.done || d.cur == d.end {
		return v, false
	}
	v = d.q.buf.read(d.cur)
	d.cur++
	sw := spin.Wait{}
	for {
		h := d.q.head.LoadAcquire()
		real, _ := unpackHead(h)
		newHead := packHead(d.cur, d.end)
		if d.q.head.CompareAndSwapAcqRel(h, newHead) {
			break
		}
		_ = real
		sw.Once()
	}
	if d.cur == d.end {
		d.done = true
		d.q.release()
	}
	return v, true
}

// Close abandons the drain. Any reserved items not yet returned by Next
// are un-reserved and become visible to stealers and subsequent pops
// again; none are lost. Calling Close after the drain is exhausted is a
// no-op. Close releases the Drainer's reference on the queue; callers
// that intend to drain to exhaustion may skip calling it, since Next
// already releases the reference once done, but calling it anyway is
// always safe.
func (d *Drainer[T]) Close() {
	if d.done {
		return
	}
	d.done = true
	sw := spin.Wait{}
	for {
		h := d.q.head.LoadAcquire()
		real, _ := unpackHead(h)
		newHead := packHead(real, real)
		if d.q.head.CompareAndSwapAcqRel(h, newHead) {
			d.q.release()
			return
		}
		sw.Once()
	}
}
