package vector

import (
	"math"
	"sort"
)

// Dot returns the inner product of a and b. It walks the shorter vector and
// binary-searches the longer one, so cost follows the smaller nonzero count.
// Products are accumulated in ascending index order, making the result reproducible.
func Dot(a, b *SparseVector) float64 {
	if a.Len() == 0 || b.Len() == 0 {
		return 0
	}
	if a.Len() > b.Len() {
		a, b = b, a
	}
	var dot float64
	lo := 0
	for k, i := range a.indices {
		rest := b.indices[lo:]
		j := sort.SearchInts(rest, i)
		if j == len(rest) {
			break
		}
		lo += j
		if b.indices[lo] == i {
			dot += a.values[k] * b.values[lo]
			lo++
		}
		if lo >= len(b.indices) {
			break
		}
	}
	return dot
}

// Cosine returns the cosine similarity of a and b, clamped to [0, 1].
// A zero vector on either side yields 0. Identical vectors yield exactly 1: the dot
// product and the squared norms are summed in the same order, and sqrt(x*x) == x.
func Cosine(a, b *SparseVector) float64 {
	sa, sb := a.normSquared(), b.normSquared()
	if sa == 0 || sb == 0 {
		return 0
	}
	return clamp01(Dot(a, b) / math.Sqrt(sa*sb))
}

// Sum returns the element-wise sum of vs. Nil entries are skipped.
// Each index is summed in the order vs is given.
func Sum(vs []*SparseVector) *SparseVector {
	acc := make(map[int]float64)
	for _, v := range vs {
		v.Each(func(i int, w float64) {
			acc[i] += w
		})
	}
	return New(acc)
}

func sumSquares(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v * v
	}
	return sum
}

func clamp01(x float64) float64 {
	if x < 0 || math.IsNaN(x) {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
