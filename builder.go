// Package annforest provides an embedded approximate nearest neighbor index.
//
// This file implements the fluent builder API for constructing Index instances.
// The builder is immutable - each method returns a new builder with the updated
// configuration.
package annforest

import (
	"context"
	"encoding/binary"
	"math"
	"time"

	"github.com/hupe1980/annforest/distance"
	"github.com/hupe1980/annforest/index/rpforest"
)

// New creates a new index builder with the specified dimension.
//
// The builder is immutable - each method returns a new builder with the updated
// configuration. This ensures thread-safety and prevents accidental state sharing.
//
// Example:
//
//	idx, err := annforest.New[string](128).
//	    SquaredL2().
//	    NumTrees(20).
//	    MaxLeafSize(32).
//	    Build(ctx, vectors, ids)
func New[K comparable](dimension int) Builder[K] {
	return Builder[K]{
		dimension:   dimension,
		metric:      distance.MetricL2,
		numTrees:    rpforest.DefaultNumTrees,
		maxLeafSize: rpforest.DefaultMaxLeafSize,
	}
}

// Builder is an immutable fluent builder for creating Index instances.
// Each method returns a new builder with the updated configuration.
type Builder[K comparable] struct {
	dimension   int
	metric      distance.Metric
	numTrees    int
	maxLeafSize int
	randomSeed  *int64
	parallelism int
	logger      *Logger
	metrics     MetricsCollector
}

// SquaredL2 sets the distance metric to Squared Euclidean distance.
func (b Builder[K]) SquaredL2() Builder[K] {
	b.metric = distance.MetricL2
	return b
}

// Cosine sets the distance metric to Cosine similarity (normalized vectors).
func (b Builder[K]) Cosine() Builder[K] {
	b.metric = distance.MetricCosine
	return b
}

// NumTrees sets the number of trees in the forest.
// More trees raise recall but slow down builds and queries.
// Default: 10.
func (b Builder[K]) NumTrees(n int) Builder[K] {
	b.numTrees = n
	return b
}

// MaxLeafSize sets the leaf capacity of each tree.
// Smaller leaves partition finer but deepen the trees.
// Default: 16.
func (b Builder[K]) MaxLeafSize(n int) Builder[K] {
	b.maxLeafSize = n
	return b
}

// RandomSeed sets the seed for deterministic index construction.
// If not set, a random seed (time-based) is used.
func (b Builder[K]) RandomSeed(seed int64) Builder[K] {
	b.randomSeed = &seed
	return b
}

// Parallelism bounds the number of concurrent workers for tree construction
// and query fan-out. Default: GOMAXPROCS.
func (b Builder[K]) Parallelism(n int) Builder[K] {
	b.parallelism = n
	return b
}

// Logger sets the structured logger for operation tracing.
func (b Builder[K]) Logger(l *Logger) Builder[K] {
	b.logger = l
	return b
}

// Metrics sets the metrics collector for monitoring.
func (b Builder[K]) Metrics(mc MetricsCollector) Builder[K] {
	b.metrics = mc
	return b
}

// Build constructs the index from the given vectors and their IDs.
//
// vectors and ids are parallel slices. Exact duplicate vectors are dropped
// before indexing, keeping the first occurrence's ID. The input is copied;
// the caller may reuse the slices afterwards.
func (b Builder[K]) Build(ctx context.Context, vectors [][]float32, ids []K) (*Index[K], error) {
	logger := b.logger
	if logger == nil {
		logger = NoopLogger()
	}

	metrics := b.metrics
	if metrics == nil {
		metrics = NoopMetricsCollector{}
	}

	start := time.Now()

	idx, unique, err := b.build(ctx, vectors, ids)

	metrics.RecordBuild(len(vectors), time.Since(start), err)
	logger.LogBuild(ctx, len(vectors), unique, b.numTrees, err)

	if err != nil {
		return nil, err
	}

	idx.logger = logger
	idx.metrics = metrics

	return idx, nil
}

func (b Builder[K]) build(ctx context.Context, vectors [][]float32, ids []K) (*Index[K], int, error) {
	if len(vectors) != len(ids) {
		return nil, 0, ErrLengthMismatch
	}

	forest, err := rpforest.New(func(o *rpforest.Options) {
		o.Dimension = b.dimension
		o.NumTrees = b.numTrees
		o.MaxLeafSize = b.maxLeafSize
		o.Metric = b.metric
		o.RandomSeed = b.randomSeed
		o.Parallelism = b.parallelism
	})
	if err != nil {
		return nil, 0, translateError(err)
	}

	uniqueVectors, uniqueIDs := dedup(vectors, ids)

	if err := forest.Build(ctx, uniqueVectors); err != nil {
		return nil, 0, translateError(err)
	}

	return &Index[K]{
		forest: forest,
		ids:    uniqueIDs,
	}, len(uniqueVectors), nil
}

// MustBuild constructs the index, panicking on error.
func (b Builder[K]) MustBuild(ctx context.Context, vectors [][]float32, ids []K) *Index[K] {
	idx, err := b.Build(ctx, vectors, ids)
	if err != nil {
		panic(err)
	}
	return idx
}

// dedup drops exact duplicate vectors, keeping the first occurrence and its ID.
func dedup[K comparable](vectors [][]float32, ids []K) ([][]float32, []K) {
	seen := make(map[string]struct{}, len(vectors))

	uniqueVectors := make([][]float32, 0, len(vectors))
	uniqueIDs := make([]K, 0, len(ids))

	for i, v := range vectors {
		key := vectorKey(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		uniqueVectors = append(uniqueVectors, v)
		uniqueIDs = append(uniqueIDs, ids[i])
	}

	return uniqueVectors, uniqueIDs
}

// vectorKey encodes a vector's exact bit pattern as a map key.
// Negative zero compares equal to zero, so its bit pattern is normalized.
func vectorKey(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, x := range v {
		if x == 0 {
			x = 0
		}
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(x))
	}
	return string(buf)
}
