// Package annforest provides an embedded approximate nearest neighbor index
// backed by a forest of randomized projection trees.
//
// The index is built once over a fixed vector set and then serves concurrent
// read-only queries. Queries descend every tree greedily, merge the surfaced
// candidates and re-rank them by exact distance.
package annforest

import (
	"context"
	"time"

	"github.com/hupe1980/annforest/index"
	"github.com/hupe1980/annforest/index/rpforest"
)

// SearchResult represents a search result with the caller's ID and the exact
// distance to the query.
type SearchResult[K comparable] struct {
	ID       K
	Distance float32
}

// Stats describes the shape of a built index.
type Stats = index.Stats

// Index is an immutable ANN index mapping caller-provided IDs to vectors.
// All methods are safe for concurrent use.
type Index[K comparable] struct {
	forest  *rpforest.RPForest
	ids     []K
	logger  *Logger
	metrics MetricsCollector
}

// KNNSearchOptions represents options for a K-nearest-neighbor search.
type KNNSearchOptions struct {
	// Candidates is the per-tree candidate budget. Values above k widen the
	// search and raise recall at the cost of latency. Defaults to k.
	Candidates int
}

// KNNSearch returns up to k IDs ranked by ascending exact distance to the
// query. Fewer than k results are returned when the index holds fewer
// distinct vectors or the forest surfaces fewer candidates.
func (idx *Index[K]) KNNSearch(ctx context.Context, query []float32, k int, optFns ...func(o *KNNSearchOptions)) ([]SearchResult[K], error) {
	opts := KNNSearchOptions{}

	for _, fn := range optFns {
		fn(&opts)
	}

	start := time.Now()

	results, err := idx.forest.KNNSearch(ctx, query, k, &index.SearchOptions{
		Candidates: opts.Candidates,
	})
	err = translateError(err)

	idx.metrics.RecordSearch(k, time.Since(start), err)
	idx.logger.LogSearch(ctx, k, len(results), err)

	if err != nil {
		return nil, err
	}

	out := make([]SearchResult[K], len(results))
	for i, r := range results {
		out[i] = SearchResult[K]{ID: idx.ids[r.ID], Distance: r.Distance}
	}

	return out, nil
}

// Len returns the number of indexed vectors after deduplication.
func (idx *Index[K]) Len() int {
	return idx.forest.Len()
}

// Dimension returns the configured vector dimensionality.
func (idx *Index[K]) Dimension() int {
	return idx.forest.Dimension()
}

// Stats returns structural statistics of the built forest.
func (idx *Index[K]) Stats() Stats {
	return idx.forest.Stats()
}
