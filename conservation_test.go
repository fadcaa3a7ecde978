// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !race

package st3_test

import (
	"math/rand"
	"sync"
	"testing"

	"code.hybscloud.com/atomix"

	"github.com/james7132/st3"
)

// TestConservationUnderConcurrentStealing covers invariants 1 (conservation)
// and 6 (exclusion) of the testable properties: one owner goroutine pushes
// and occasionally pops from its own LIFO queue while two stealer goroutines
// repeatedly steal from it, each delivering stolen items into its own
// worker queue. Every item pushed must be observed exactly once across all
// three goroutines' outputs, mirroring the multi-threaded steal stress
// scenario this package's algorithm was grounded on.
func TestConservationUnderConcurrentStealing(t *testing.T) {
	const n = 200_000

	owner, err := st3.NewLIFO[int](1024)
	if err != nil {
		t.Fatalf("NewLIFO: %v", err)
	}
	stealer := owner.Stealer()

	var stats [3][]atomix.Int32
	for i := range stats {
		stats[i] = make([]atomix.Int32, n)
	}
	var consumed atomix.Int64

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		rng := rand.New(rand.NewSource(1))
		i := 0
		for i < n {
			burst := rng.Intn(9) + 1
			for j := 0; j < burst && i < n; j++ {
				for owner.Push(i) != nil {
				}
				i++
			}
			if v, err := owner.Pop(); err == nil {
				stats[0][v].Add(1)
				consumed.Add(1)
			}
		}
	}()

	stealWorker := func(idx int, s *st3.Stealer[int], seed int64) {
		defer wg.Done()
		defer s.Close()
		rng := rand.New(rand.NewSource(seed))
		dest, err := st3.NewLIFO[int](1024)
		if err != nil {
			t.Errorf("NewLIFO(dest): %v", err)
			return
		}
		for consumed.Load() < n {
			_, err := s.Steal(dest, func(available int) int {
				return rng.Intn(available + 1)
			})
			if err == nil {
				for v, derr := dest.Pop(); derr == nil; v, derr = dest.Pop() {
					stats[idx][v].Add(1)
					if consumed.Add(1) > n {
						t.Errorf("observed more items than pushed")
						return
					}
				}
			}
		}
	}

	go stealWorker(1, stealer.Clone(), 2)
	go stealWorker(2, stealer.Clone(), 3)

	wg.Wait()
	stealer.Close()

	for i := range n {
		count := int(stats[0][i].Load()) + int(stats[1][i].Load()) + int(stats[2][i].Load())
		if count != 1 {
			t.Fatalf("item %d observed %d times, want 1", i, count)
		}
	}
}
