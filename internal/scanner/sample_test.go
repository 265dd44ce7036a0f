package scanner

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makePaths(n int) []string {
	paths := make([]string, n)
	for i := range paths {
		paths[i] = fmt.Sprintf("/music/%03d.mp3", i)
	}
	return paths
}

func TestSample_SizeAndDistinct(t *testing.T) {
	sampler := NewSampler(rand.New(rand.NewPCG(1, 2)))

	tests := []struct {
		total int
		n     int
		want  int
	}{
		{total: 0, n: 10, want: 0},
		{total: 5, n: 0, want: 0},
		{total: 5, n: -1, want: 0},
		{total: 5, n: 10, want: 5},
		{total: 100, n: 10, want: 10},
		{total: 100, n: 51, want: 51},
		{total: 100, n: 100, want: 100},
		{total: 1, n: 1, want: 1},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_of_%d", tt.n, tt.total), func(t *testing.T) {
			paths := makePaths(tt.total)
			got := sampler.Sample(paths, tt.n)

			require.Len(t, got, tt.want)
			seen := make(map[string]bool)
			for _, p := range got {
				assert.False(t, seen[p], "duplicate %s", p)
				seen[p] = true
				assert.Contains(t, paths, p)
			}
		})
	}
}

func TestSample_EmptyIsNotNil(t *testing.T) {
	got := Sample(nil, 3)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSample_DoesNotMutateInput(t *testing.T) {
	paths := makePaths(10)
	before := append([]string(nil), paths...)

	NewSampler(rand.New(rand.NewPCG(3, 4))).Sample(paths, 9)
	assert.Equal(t, before, paths)
}

func TestSample_Reproducible(t *testing.T) {
	paths := makePaths(50)

	a := NewSampler(rand.New(rand.NewPCG(7, 7))).Sample(paths, 10)
	b := NewSampler(rand.New(rand.NewPCG(7, 7))).Sample(paths, 10)
	assert.Equal(t, a, b)
}

// Every element should be picked about equally often in both regimes.
func TestSample_RoughlyUniform(t *testing.T) {
	sampler := NewSampler(rand.New(rand.NewPCG(42, 99)))
	paths := makePaths(10)

	for _, n := range []int{3, 8} {
		counts := make(map[string]int)
		const rounds = 20000
		for range rounds {
			for _, p := range sampler.Sample(paths, n) {
				counts[p]++
			}
		}

		expected := float64(rounds*n) / float64(len(paths))
		for _, p := range paths {
			assert.InEpsilon(t, expected, float64(counts[p]), 0.05, "n=%d path=%s", n, p)
		}
	}
}
