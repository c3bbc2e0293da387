package procgen

import (
	"runtime"
	"sync"

	"github.com/litescript/ls-orrery/internal/entropy"
	"github.com/litescript/ls-orrery/internal/pointcloud"
)

// Chunk is a contiguous half-open index range [Lo, Hi).
type Chunk struct {
	Lo, Hi int
}

// Chunks splits n indices into at most workers contiguous ranges. The first
// n%workers chunks get one extra index. No chunk is empty.
func Chunks(n, workers int) []Chunk {
	if workers > n {
		workers = n
	}
	if workers < 1 {
		return nil
	}
	per, rem := n/workers, n%workers
	chunks := make([]Chunk, workers)
	lo := 0
	for w := range chunks {
		size := per
		if w < rem {
			size++
		}
		chunks[w] = Chunk{Lo: lo, Hi: lo + size}
		lo += size
	}
	return chunks
}

// GenerateGalaxyParallel generates the galaxy across workers goroutines.
// Worker w samples its chunk from entropy.Stream(seed, w) and keeps global
// sample indices, so arm assignment matches the sequential generator. The
// result is deterministic for a given (seed, workers); workers <= 0 uses
// runtime.NumCPU().
func GenerateGalaxyParallel(p GalaxyParams, seed uint64, workers int) (*pointcloud.Cloud, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	chunks := Chunks(p.Count, workers)
	parts := make([]*pointcloud.Cloud, len(chunks))

	var wg sync.WaitGroup
	wg.Add(len(chunks))
	for w, c := range chunks {
		go func(w int, c Chunk) {
			defer wg.Done()
			parts[w] = galaxyRange(p, c.Lo, c.Hi, entropy.Stream(seed, w))
		}(w, c)
	}
	wg.Wait()

	return pointcloud.Concat(parts...)
}
