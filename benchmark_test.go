// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package st3_test

import (
	"testing"

	ring "github.com/randomizedcoder/go-lock-free-ring"

	"github.com/james7132/st3"
)

// BenchmarkOwnerPushPop benchmarks the uncontended owner-only path: push
// then pop on a LIFO queue with no stealers present, the cheapest
// possible use of this package.
func BenchmarkOwnerPushPop(b *testing.B) {
	owner, _ := st3.NewLIFO[int](1024)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		owner.Push(i)
		owner.Pop()
	}
}

// BenchmarkOwnerPushPopFIFO is the FIFO counterpart, which takes one CAS
// per pop. With one item queued per iteration, the LIFO benchmark above
// also pops through its single-item CAS, not the CAS-free multi-item path.
func BenchmarkOwnerPushPopFIFO(b *testing.B) {
	owner, _ := st3.NewFIFO[int](1024)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		owner.Push(i)
		owner.Pop()
	}
}

// BenchmarkStealHeavy measures steady-state throughput with one owner
// goroutine pushing continuously and a single stealer goroutine
// continuously draining half of what it observes — the workload this
// package's reservation protocol was designed around.
func BenchmarkStealHeavy(b *testing.B) {
	owner, _ := st3.NewFIFO[int](1024)
	dest, _ := st3.NewFIFO[int](1024)
	stealer := owner.Stealer()
	defer stealer.Close()

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			default:
				stealer.Steal(dest, func(n int) int { return n / 2 })
				for _, err := dest.Pop(); err == nil; _, err = dest.Pop() {
				}
			}
		}
	}()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for owner.Push(i) != nil {
			owner.Pop()
		}
	}
	b.StopTimer()
	close(done)
}

// BenchmarkChannelPushPop is the channel baseline also used by the
// go-lock-free-ring comparison this benchmark is modeled on.
func BenchmarkChannelPushPop(b *testing.B) {
	ch := make(chan int, 1024)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ch <- i
		<-ch
	}
}

// BenchmarkShardedRingPushPop compares against go-lock-free-ring's
// sharded MPSC ring with a single shard, as a reference point for a
// differently-shaped lock-free queue under the same single-thread
// push/pop pattern.
func BenchmarkShardedRingPushPop(b *testing.B) {
	r, err := ring.NewShardedRing(1024, 1)
	if err != nil {
		b.Fatalf("NewShardedRing: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for !r.Write(0, i) {
		}
		r.TryRead()
	}
}
