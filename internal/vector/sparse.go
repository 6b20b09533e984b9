// Package vector provides sparse term-weight vectors and similarity helpers.
package vector

import "sort"

// SparseVector is an immutable sparse vector over vocabulary indices.
// Indices are sorted ascending; only nonzero weights are stored.
type SparseVector struct {
	indices []int
	values  []float64
	normSq  float64
}

// New builds a SparseVector from an index -> weight mapping.
// Zero weights are dropped. The mapping is not retained.
func New(weights map[int]float64) *SparseVector {
	indices := make([]int, 0, len(weights))
	for i, w := range weights {
		if w != 0 {
			indices = append(indices, i)
		}
	}
	sort.Ints(indices)
	values := make([]float64, len(indices))
	for k, i := range indices {
		values[k] = weights[i]
	}
	return &SparseVector{
		indices: indices,
		values:  values,
		normSq:  sumSquares(values),
	}
}

// Len returns the number of nonzero entries.
func (v *SparseVector) Len() int {
	if v == nil {
		return 0
	}
	return len(v.indices)
}

func (v *SparseVector) normSquared() float64 {
	if v == nil {
		return 0
	}
	return v.normSq
}

// get returns the weight at index i, or 0 when absent.
func (v *SparseVector) get(i int) float64 {
	if v == nil {
		return 0
	}
	k := sort.SearchInts(v.indices, i)
	if k < len(v.indices) && v.indices[k] == i {
		return v.values[k]
	}
	return 0
}

// Each calls fn for every nonzero entry in ascending index order.
func (v *SparseVector) Each(fn func(index int, weight float64)) {
	if v == nil {
		return
	}
	for k, i := range v.indices {
		fn(i, v.values[k])
	}
}
