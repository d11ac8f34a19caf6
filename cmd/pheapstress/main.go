// Command pheapstress drives long-running allocate/deallocate and
// concurrent reader/writer scenarios against a heap.Manager, for soak
// testing well beyond what the package's own unit tests run in CI.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"pheap/heap"
)

func main() {
	var (
		bufSize    = flag.Int("size", 16*1024*1024, "initial buffer size in bytes")
		iterations = flag.Int("iterations", 1_000_000, "number of allocate/deallocate decisions")
		readers    = flag.Int("readers", 4, "number of concurrent Diagnose-looping reader goroutines")
		seed       = flag.Int64("seed", 1, "PRNG seed")
		savePath   = flag.String("save", "", "if set, save the final image to this path")
		verbose    = flag.Bool("v", false, "enable debug-level logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	m, err := heap.Create(make([]byte, *bufSize))
	if err != nil {
		logger.Error("create failed", "error", err)
		os.Exit(1)
	}
	defer m.Destroy()

	logger.Info("starting marathon", "iterations", *iterations, "readers", *readers, "initial_size", *bufSize)
	start := time.Now()

	if err := runMarathonWithReaders(logger, m, *iterations, *readers, *seed); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}

	stats := m.Stats()
	logger.Info("run complete",
		"elapsed", time.Since(start),
		"total_size", stats.TotalSize,
		"used_size", stats.UsedSize,
		"block_count", stats.BlockCount,
		"free_count", stats.FreeCount,
		"alloc_count", stats.AllocCount,
	)

	if !m.Validate() {
		logger.Error("final validation failed")
		os.Exit(1)
	}

	if *savePath != "" {
		if err := m.Save(*savePath); err != nil {
			logger.Error("save failed", "error", err, "path", *savePath)
			os.Exit(1)
		}
		logger.Info("saved image", "path", *savePath)
	}
}

// runMarathonWithReaders runs one writer goroutine executing the
// allocate/deallocate marathon (60% allocate, 40% deallocate) alongside n
// reader goroutines that loop calling Diagnose, reporting the first
// failure either side observes.
func runMarathonWithReaders(logger *slog.Logger, m *heap.Manager, iterations, readerCount int, seed int64) error {
	done := make(chan struct{})
	g, _ := errgroup.WithContext(context.Background())

	g.Go(func() error {
		defer close(done)
		rng := rand.New(rand.NewSource(seed))
		var live []heap.Handle
		for i := 0; i < iterations; i++ {
			if len(live) > 0 && rng.Intn(100) < 40 {
				idx := rng.Intn(len(live))
				if err := m.Deallocate(live[idx]); err != nil {
					return fmt.Errorf("deallocate at iteration %d: %w", i, err)
				}
				live[idx] = live[len(live)-1]
				live = live[:len(live)-1]
			} else {
				size := 8 + rng.Intn(1024)
				align := 1 << uint(rng.Intn(5)+3)
				h, err := m.Allocate(size, align)
				if err != nil {
					return fmt.Errorf("allocate at iteration %d: %w", i, err)
				}
				live = append(live, h)
			}

			if i%100_000 == 0 {
				logger.Debug("progress", "iteration", i, "live", len(live))
			}
		}
		return nil
	})

	for r := 0; r < readerCount; r++ {
		g.Go(func() error {
			for {
				select {
				case <-done:
					return nil
				default:
				}
				if err := m.Diagnose(); err != nil {
					return fmt.Errorf("reader validation: %w", err)
				}
			}
		})
	}

	return g.Wait()
}
