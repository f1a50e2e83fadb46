package rpforest

import "github.com/hupe1980/annforest/index"

// Stats returns statistics about the forest.
func (f *RPForest) Stats() index.Stats {
	stats := index.Stats{
		Vectors:     len(f.values),
		Trees:       len(f.trees),
		MaxLeafSize: f.opts.MaxLeafSize,
	}

	for _, tree := range f.trees {
		collectStats(tree, 1, f.opts.MaxLeafSize, &stats)
	}

	return stats
}

func collectStats(n *node, depth, maxLeafSize int, stats *index.Stats) {
	if n == nil {
		return
	}

	if n.isLeaf() {
		stats.Leaves++
		if depth > stats.MaxDepth {
			stats.MaxDepth = depth
		}
		if len(n.indexes) > maxLeafSize {
			stats.OversizedLeaves++
		}
		return
	}

	collectStats(n.below, depth+1, maxLeafSize, stats)
	collectStats(n.above, depth+1, maxLeafSize, stats)
}
