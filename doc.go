// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package st3 provides fixed-capacity, lock-free, single-producer /
// multi-consumer work-stealing queues for per-worker queues in an M:N
// task scheduler. One goroutine (the owner) pushes and pops locally; any
// number of other goroutines (stealers) concurrently remove items in
// bulk and move them into their own worker queue.
//
// Two pop orders are available, differing only in how the owner
// consumes its own queue — stealers always take the oldest items
// regardless:
//
//   - FIFO: NewFIFO, owner pops oldest-first.
//   - LIFO: NewLIFO, owner pops newest-first (better cache locality for
//     the owner when it just pushed the item it is about to run).
//
// # Quick Start
//
//	owner, err := st3.NewLIFO[Task](1024)
//	if err != nil {
//	    // capacity was not a power of two, or exceeded st3.MaxCapacity
//	}
//
//	// Owner goroutine
//	err = owner.Push(task)
//	if err != nil {
//	    var full *st3.FullError[Task]
//	    errors.As(err, &full) // full.Value == task
//	}
//	t, err := owner.Pop()
//
//	// Any other goroutine, holding its own Owner as dest
//	stealer := owner.Stealer()
//	n, err := stealer.Steal(dest, func(available int) int {
//	    return available / 2 // leave half behind
//	})
//
// The Builder offers the same construction through a fluent API:
//
//	owner, err := st3.Build[Task](st3.New(1024).LIFO())
//
// # Why two handles
//
// Owner is not safe for concurrent use — only one goroutine may call
// Push, Pop, Drain, or Close on a given Owner at a time, the same
// discipline a single-producer ring buffer always requires. Stealer has
// no such restriction: it is freely cloneable and may be shared across
// any number of goroutines, each racing the others to steal from the
// same source. Exactly one wins a given reservation; the rest observe
// Busy and may retry immediately or back off.
//
//	stealer := owner.Stealer()
//	for range numThieves {
//	    go func(s *st3.Stealer[Task]) {
//	        defer s.Close()
//	        for {
//	            n, err := s.Steal(myOwnQueue, func(n int) int { return n })
//	            if err != nil && !st3.IsSemantic(err) {
//	                return // unexpected
//	            }
//	            // ... run whatever landed in myOwnQueue ...
//	        }
//	    }(stealer.Clone())
//	}
//
// # Error Handling
//
// [Empty] is sourced from [code.hybscloud.com/iox] for ecosystem
// consistency; [Busy] and [FullError] are local to this package because
// iox has no vocabulary for "a peer is mid-steal" or "here is your value
// back." [ErrClosed] is returned by any operation on a handle after its
// own Close has run; it does not mean the underlying queue is gone, only
// that this particular handle gave up its reference.
//
//	backoff := iox.Backoff{}
//	for {
//	    t, err := owner.Pop()
//	    if err == nil {
//	        backoff.Reset()
//	        run(t)
//	        continue
//	    }
//	    if st3.IsWouldBlock(err) {
//	        backoff.Wait()
//	        continue
//	    }
//	    panic(err) // ErrClosed: this handle was already closed
//	}
//
// For semantic classification:
//
//	st3.IsWouldBlock(err)  // true if Empty
//	st3.IsSemantic(err)    // true if Empty, Busy, or a FullError
//	st3.IsNonFailure(err)  // true if nil, Empty, or Busy
//
// # Capacity
//
// Capacity must already be a power of two in [1, st3.MaxCapacity];
// unlike the builder conventions elsewhere in this ecosystem, it is not
// rounded up, since a silently different capacity than requested is
// exactly the kind of surprise a scheduler's per-worker queue sizing
// should not have to account for. An invalid capacity returns a
// *ConstructionError rather than panicking, since it is a value the
// caller plausibly computed at runtime (e.g. from a configured queue
// depth) rather than a programmer error visible at the call site.
//
// Len is an approximation — exact only when called by the owner with no
// steal in flight. An exact count under concurrent stealing needs
// cross-core synchronization this package does not otherwise pay for.
//
// # Batch submission
//
// Extend pushes a slice in one tail release instead of one Push call
// per element, truncating rather than failing when fewer than len(vs)
// values fit:
//
//	n, _ := owner.Extend(tasks)
//	if n < len(tasks) {
//	    resubmit(tasks[n:]) // didn't all fit; retry the remainder later
//	}
//
// SpareCapacity reports Cap() - Len(), the same approximation Len
// itself is, for callers that want to size a batch before calling
// Extend rather than inspect the truncated count afterward.
//
// # Draining
//
// Owner.Drain reserves as many of the currently visible items as its
// count function asks for, the same way Stealer.Steal does, and returns
// an iterator over them. While a Drainer
// is open, concurrent steals on the same queue observe Busy, exactly as
// they would during an ordinary in-flight steal:
//
//	d, err := owner.Drain(func(n int) int { return n })
//	if err == nil {
//	    for v, ok := d.Next(); ok; v, ok = d.Next() {
//	        shutdown(v)
//	    }
//	}
//
// Abandoning a Drainer partway through (calling Close instead of
// draining it to exhaustion) un-reserves whatever was left; no item is
// lost.
//
// A Drainer holds its own reference on the queue, acquired by Drain and
// released when the drain finishes (by exhaustion or by Close) — the
// same reference-counting discipline a Stealer follows. An Owner and
// all of its Stealers may safely Close while a Drainer is still open;
// teardown waits for the Drainer too, so a live drain is never torn
// down out from under it.
//
// # Race Detection
//
// Go's race detector tracks explicit synchronization primitives but
// cannot observe happens-before relationships established purely through
// atomic acquire/release orderings on the packed head field. Stress
// tests that rely on that ordering are excluded via //go:build !race;
// see [RaceEnabled].
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for atomic primitives with explicit memory
// ordering, and [code.hybscloud.com/spin] for bounded CAS backoff.
package st3
