// Package annforest provides an embedded approximate nearest neighbor index for Go.
//
// Annforest builds a forest of randomized projection trees over a fixed set of
// vectors and answers K-nearest-neighbor queries by greedily descending every
// tree, merging the surfaced candidates and re-ranking them by exact distance.
//
// # Quick Start
//
//	ctx := context.Background()
//
//	idx, _ := annforest.New[string](128).
//	    SquaredL2().
//	    NumTrees(20).
//	    Build(ctx, vectors, ids)
//
//	results, _ := idx.KNNSearch(ctx, query, 10)
//	for _, r := range results {
//	    fmt.Println(r.ID, r.Distance)
//	}
//
// # Accuracy Tuning
//
// Recall is controlled by two knobs:
//
//	// More trees: better recall, slower builds and queries.
//	annforest.New[string](128).NumTrees(50)
//
//	// Wider candidate budget per query: better recall, slower queries.
//	idx.KNNSearch(ctx, query, 10, func(o *annforest.KNNSearchOptions) {
//	    o.Candidates = 200
//	})
//
// # Immutability
//
// The index is built once and read-only afterwards. Rebuilding from scratch is
// the only update path; queries are safe for unlimited concurrent use.
//
// # Key Features
//
//   - Parallel tree construction and query fan-out
//   - Squared L2 and Cosine metrics
//   - Deterministic builds via RandomSeed
//   - Structured logging and pluggable metrics (Prometheus via the prom subpackage)
package annforest
