package scanner

import (
	"math/rand/v2"
	"sync"
)

// Sampler draws uniform random subsets without replacement.
// The zero value uses the global math/rand/v2 source.
type Sampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSampler creates a sampler backed by rng. Pass a seeded source for
// reproducible previews.
func NewSampler(rng *rand.Rand) *Sampler {
	return &Sampler{rng: rng}
}

// Sample returns min(n, len(paths)) distinct elements of paths chosen
// uniformly at random. The result order is the draw order, not input order.
//
// Small draws use rejection sampling over indices. Once n passes half of
// len(paths), collisions become likely, so a partial Fisher-Yates shuffle is
// used instead. Both are uniform; the switch only bounds the work.
func (s *Sampler) Sample(paths []string, n int) []string {
	k := min(n, len(paths))
	if k <= 0 {
		return []string{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var indices []int
	if 2*k <= len(paths) {
		indices = s.rejection(len(paths), k)
	} else {
		indices = s.partialShuffle(len(paths), k)
	}

	out := make([]string, k)
	for i, idx := range indices {
		out[i] = paths[idx]
	}
	return out
}

func (s *Sampler) rejection(size, k int) []int {
	seen := make(map[int]struct{}, k)
	indices := make([]int, 0, k)
	for len(indices) < k {
		idx := s.intN(size)
		if _, dup := seen[idx]; dup {
			continue
		}
		seen[idx] = struct{}{}
		indices = append(indices, idx)
	}
	return indices
}

func (s *Sampler) partialShuffle(size, k int) []int {
	indices := make([]int, size)
	for i := range indices {
		indices[i] = i
	}
	for i := range k {
		j := i + s.intN(size-i)
		indices[i], indices[j] = indices[j], indices[i]
	}
	return indices[:k]
}

func (s *Sampler) intN(n int) int {
	if s.rng == nil {
		return rand.IntN(n)
	}
	return s.rng.IntN(n)
}

var defaultSampler Sampler

// Sample draws from paths with the default sampler.
func Sample(paths []string, n int) []string {
	return defaultSampler.Sample(paths, n)
}
