package rpforest

import "math/rand"

// maxSplitRetries bounds how often a degenerate split (all points on one side
// of the sampled plane) is retried before falling back to an oversized leaf.
const maxSplitRetries = 3

// treeBuilder recursively partitions a set of vector indexes into a tree
// using randomly drawn splitting hyperplanes.
type treeBuilder struct {
	maxLeafSize int
	values      [][]float32
	rng         *rand.Rand
}

func (b *treeBuilder) build(indexes []uint32) *node {
	if len(indexes) <= b.maxLeafSize {
		return newLeaf(indexes)
	}

	hp, below, above, ok := b.split(indexes)
	if !ok {
		// No plane separated these points (duplicates or collinear clusters).
		// An oversized leaf trades recall for guaranteed termination.
		return newLeaf(indexes)
	}

	return &node{
		hp:    hp,
		below: b.build(below),
		above: b.build(above),
	}
}

// split samples two distinct member points, builds the separating hyperplane
// and partitions all indexes by side, preserving relative order within each
// partition. Returns ok=false when every attempt left one side empty.
func (b *treeBuilder) split(indexes []uint32) (hyperplane, []uint32, []uint32, bool) {
	for attempt := 0; attempt < maxSplitRetries; attempt++ {
		// Uniform sample of two distinct positions without replacement.
		i := b.rng.Intn(len(indexes))
		j := b.rng.Intn(len(indexes) - 1)
		if j >= i {
			j++
		}

		hp := newHyperplane(b.values[indexes[i]], b.values[indexes[j]])

		below := make([]uint32, 0, len(indexes)/2)
		above := make([]uint32, 0, len(indexes)/2)

		for _, idx := range indexes {
			if hp.pointIsAbove(b.values[idx]) {
				above = append(above, idx)
			} else {
				below = append(below, idx)
			}
		}

		if len(below) == 0 || len(above) == 0 {
			continue
		}

		return hp, below, above, true
	}

	return hyperplane{}, nil, nil, false
}
