package similarity

import "github.com/hyperjump/simcheck/internal/models"

// block is one unit of sentence scoring work: source rows [from, to) of document src
// against every sentence of document dst.
type block struct {
	src, dst int
	from, to int
}

// partitionBlocks splits every document pair (i < j) into row blocks of at most size
// source sentences. Pairs where either side has no sentences produce no blocks.
func partitionBlocks(docs []*models.Document, size int) []block {
	if size <= 0 {
		size = 1
	}
	var blocks []block
	for i := 0; i < len(docs); i++ {
		rows := len(docs[i].Sentences)
		if rows == 0 {
			continue
		}
		for j := i + 1; j < len(docs); j++ {
			if len(docs[j].Sentences) == 0 {
				continue
			}
			for from := 0; from < rows; from += size {
				to := from + size
				if to > rows {
					to = rows
				}
				blocks = append(blocks, block{src: i, dst: j, from: from, to: to})
			}
		}
	}
	return blocks
}

// documentPairs lists every unordered document pair in upload order:
// outer index i, inner index j > i.
func documentPairs(n int) [][2]int {
	if n < 2 {
		return nil
	}
	pairs := make([][2]int, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pairs = append(pairs, [2]int{i, j})
		}
	}
	return pairs
}
