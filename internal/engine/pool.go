package engine

import (
	"os"
	"runtime"
	"strconv"
	"sync"

	"github.com/optalgo/boxpack/internal/model"
)

// maxCPUEnv overrides the worker-pool size used for parallel neighbor
// scoring.
const maxCPUEnv = "OPTALGO_MAX_CPU"

// minRectsPerWorker is the threshold below which fanning out is not worth
// the per-worker solution copy.
const minRectsPerWorker = 8

// WorkerCount returns the fixed worker-pool size: the OPTALGO_MAX_CPU
// override when set, otherwise the detected hardware parallelism.
func WorkerCount() int {
	if v := os.Getenv(maxCPUEnv); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return runtime.NumCPU()
}

// rectRef addresses one rectangle inside a solution.
type rectRef struct {
	BoxID  int
	RectID int
}

// scatterGather splits the rectangle work list across workers, hands each
// worker an independent deep copy of the solution to mutate during scoring,
// and concatenates the per-worker results. Copies are disjoint, so no
// synchronization beyond the join is needed. Small work lists are processed
// inline on the live solution instead.
func scatterGather(s *model.Solution, refs []rectRef, workers int,
	generate func(*model.Solution, []rectRef) []ScoredMove) []ScoredMove {

	if workers < 1 {
		workers = 1
	}
	if len(refs) < workers*minRectsPerWorker || workers == 1 {
		return generate(s, refs)
	}

	chunks := splitChunks(refs, workers)
	results := make([][]ScoredMove, len(chunks))

	var wg sync.WaitGroup
	for i, chunk := range chunks {
		wg.Add(1)
		go func(i int, chunk []rectRef, copy *model.Solution) {
			defer wg.Done()
			results[i] = generate(copy, chunk)
		}(i, chunk, s.Clone())
	}
	wg.Wait()

	var merged []ScoredMove
	for _, r := range results {
		merged = append(merged, r...)
	}
	return merged
}

// splitChunks partitions refs into at most n contiguous, near-equal chunks.
func splitChunks(refs []rectRef, n int) [][]rectRef {
	if n > len(refs) {
		n = len(refs)
	}
	chunks := make([][]rectRef, 0, n)
	size := len(refs) / n
	rest := len(refs) % n
	start := 0
	for i := 0; i < n; i++ {
		end := start + size
		if i < rest {
			end++
		}
		chunks = append(chunks, refs[start:end])
		start = end
	}
	return chunks
}
