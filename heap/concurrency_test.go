package heap_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"pheap/heap"
)

// TestMarathonAllocateDeallocate drives roughly a million allocate/free
// decisions through a single manager, 60% allocate and 40% deallocate,
// validating the image periodically, and checks it never corrupts its own
// bookkeeping under sustained churn.
func TestMarathonAllocateDeallocate(t *testing.T) {
	if testing.Short() {
		t.Skip("marathon run skipped in -short mode")
	}

	m := newTestManager(t, 4*1024*1024)
	rng := rand.New(rand.NewSource(1))

	var live []heap.Handle
	const iterations = 1_000_000

	for i := 0; i < iterations; i++ {
		if len(live) > 0 && rng.Intn(100) < 40 {
			idx := rng.Intn(len(live))
			require.NoError(t, m.Deallocate(live[idx]))
			live[idx] = live[len(live)-1]
			live = live[:len(live)-1]
		} else {
			size := 8 + rng.Intn(512)
			align := 1 << uint(rng.Intn(5)+3) // 8..128
			h, err := m.Allocate(size, align)
			require.NoError(t, err)
			live = append(live, h)
		}

		if i%10_000 == 0 {
			require.Truef(t, m.Validate(), "validation failed at iteration %d", i)
		}
	}

	require.True(t, m.Validate())
}

// TestConcurrentReadersDuringWriter fans out a writer goroutine running the
// allocate/deallocate marathon against a reader goroutines that continuously
// call Validate, checking the readers-writer discipline actually lets reads
// proceed safely while the writer mutates the heap.
func TestConcurrentReadersDuringWriter(t *testing.T) {
	if testing.Short() {
		t.Skip("concurrency soak skipped in -short mode")
	}

	m := newTestManager(t, 4*1024*1024)

	done := make(chan struct{})
	g, _ := errgroup.WithContext(context.Background())

	g.Go(func() error {
		defer close(done)
		rng := rand.New(rand.NewSource(2))
		var live []heap.Handle
		for i := 0; i < 50_000; i++ {
			if len(live) > 0 && rng.Intn(100) < 40 {
				idx := rng.Intn(len(live))
				if err := m.Deallocate(live[idx]); err != nil {
					return err
				}
				live[idx] = live[len(live)-1]
				live = live[:len(live)-1]
			} else {
				h, err := m.Allocate(8+rng.Intn(256), 8)
				if err != nil {
					return err
				}
				live = append(live, h)
			}
		}
		return nil
	})

	for r := 0; r < 4; r++ {
		g.Go(func() error {
			for {
				select {
				case <-done:
					return nil
				default:
				}
				if !m.Validate() {
					return heap.ErrCorrupt
				}
				m.Stats()
			}
		})
	}

	require.NoError(t, g.Wait())
}
