// Package rpforest implements an approximate nearest neighbor index as a
// forest of randomized binary space-partitioning trees.
//
// Each tree recursively splits the vector set with hyperplanes drawn between
// random point pairs. A query greedily descends every tree to gather candidate
// indexes, which are then re-ranked by exact distance. More trees raise recall
// and cost; smaller leaves partition finer.
package rpforest

import (
	"container/heap"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/annforest/distance"
	"github.com/hupe1980/annforest/index"
	"github.com/hupe1980/annforest/internal/candidate"
	"github.com/hupe1980/annforest/internal/queue"
)

const (
	// DefaultNumTrees is the default forest size.
	DefaultNumTrees = 10

	// DefaultMaxLeafSize is the default leaf capacity.
	DefaultMaxLeafSize = 16
)

var (
	// ErrNotBuilt is returned when searching a forest that has not been built.
	ErrNotBuilt = errors.New("rpforest: index not built")

	// ErrAlreadyBuilt is returned when Build is called twice. The forest is
	// immutable once built; rebuilding from scratch is the only update path.
	ErrAlreadyBuilt = errors.New("rpforest: index already built")
)

// Options represents the options for configuring the forest.
type Options struct {
	// Dimension is the fixed vector dimensionality for this index.
	// It must be > 0 and is enforced for all build and search inputs.
	Dimension int

	// NumTrees is the number of independently built trees. More trees raise
	// recall at the cost of build time and query fan-out.
	NumTrees int

	// MaxLeafSize is the leaf capacity. Index sets larger than this are split.
	MaxLeafSize int

	// Metric selects the distance metric. Cosine stores L2-normalized vectors.
	Metric distance.Metric

	// RandomSeed seeds tree construction for deterministic builds.
	// If nil, a time-based seed is used.
	RandomSeed *int64

	// Parallelism bounds the number of concurrent workers for tree
	// construction and query fan-out. 0 means GOMAXPROCS.
	Parallelism int
}

// DefaultOptions contains the default configuration options for the forest.
var DefaultOptions = Options{
	Dimension:   0,
	NumTrees:    DefaultNumTrees,
	MaxLeafSize: DefaultMaxLeafSize,
	Metric:      distance.MetricL2,
}

// RPForest is a forest of randomized projection trees over a shared,
// deduplicated, read-only vector store. It is immutable once built; queries
// are stateless, idempotent reads and safe for concurrent use.
type RPForest struct {
	opts         Options
	distanceFunc distance.Func
	seed         int64

	// populated by Build
	values [][]float32
	trees  []*node
}

// New creates a new forest instance. Configuration errors are reported here,
// before any construction work begins.
func New(optFns ...func(o *Options)) (*RPForest, error) {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	if err := index.ValidateDimension(opts.Dimension); err != nil {
		return nil, err
	}

	if opts.NumTrees <= 0 {
		return nil, index.ErrInvalidNumTrees
	}

	if opts.MaxLeafSize <= 0 {
		return nil, index.ErrInvalidLeafSize
	}

	distanceFunc, err := distance.Provider(opts.Metric)
	if err != nil {
		return nil, err
	}

	seed := time.Now().UnixNano()
	if opts.RandomSeed != nil {
		seed = *opts.RandomSeed
	}

	return &RPForest{
		opts:         opts,
		distanceFunc: distanceFunc,
		seed:         seed,
	}, nil
}

// Build constructs the forest from the given vectors.
//
// Vectors are expected to be deduplicated; exact duplicates degrade splits
// (the builder still terminates, falling back to oversized leaves). Tree
// construction runs in parallel over the shared read-only store, each tree
// with its own seeded random source; the forest is not usable until every
// tree has completed.
func (f *RPForest) Build(ctx context.Context, vectors [][]float32) error {
	if f.trees != nil {
		return ErrAlreadyBuilt
	}

	values := make([][]float32, len(vectors))
	for i, v := range vectors {
		if len(v) != f.opts.Dimension {
			return &index.ErrDimensionMismatch{Expected: f.opts.Dimension, Actual: len(v)}
		}

		if f.opts.Metric == distance.MetricCosine {
			norm, ok := distance.NormalizeL2Copy(v)
			if !ok {
				return fmt.Errorf("rpforest: vector at position %d: %w", i, distance.ErrZeroVector)
			}
			values[i] = norm
		} else {
			stored := make([]float32, len(v))
			copy(stored, v)
			values[i] = stored
		}
	}

	allIndexes := make([]uint32, len(values))
	for i := range allIndexes {
		allIndexes[i] = uint32(i)
	}

	trees := make([]*node, f.opts.NumTrees)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.parallelism())

	for i := range trees {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			b := &treeBuilder{
				maxLeafSize: f.opts.MaxLeafSize,
				values:      values,
				rng:         rand.New(rand.NewSource(f.treeSeed(i))), //nolint:gosec // non-cryptographic splits
			}
			trees[i] = b.build(allIndexes)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	f.values = values
	f.trees = trees

	return nil
}

// treeSeedStride separates per-tree seeds so concurrently built trees draw
// independent split sequences.
const treeSeedStride = 7919

func (f *RPForest) treeSeed(tree int) int64 {
	return f.seed + int64(tree)*treeSeedStride
}

func (f *RPForest) parallelism() int {
	if f.opts.Parallelism > 0 {
		return f.opts.Parallelism
	}
	return runtime.GOMAXPROCS(0)
}

// Len returns the number of stored vectors.
func (f *RPForest) Len() int {
	return len(f.values)
}

// Dimension returns the configured vector dimensionality.
func (f *RPForest) Dimension() int {
	return f.opts.Dimension
}

// Vector returns the stored vector for the given index.
// The returned slice is internal memory and must not be modified.
func (f *RPForest) Vector(idx uint32) ([]float32, bool) {
	if int(idx) >= len(f.values) {
		return nil, false
	}
	return f.values[idx], true
}

// KNNSearch returns up to k stored vector indexes ranked by ascending exact
// distance to the query.
//
// Every tree is searched in parallel with a per-tree candidate budget of
// max(k, opts.Candidates); candidates are merged through a shared
// deduplicating set, re-ranked by exact distance and truncated to k. Fewer
// than k results are returned when the forest surfaces fewer distinct
// candidates.
//
// An empty forest or k <= 0 yields an empty result, not an error.
func (f *RPForest) KNNSearch(ctx context.Context, query []float32, k int, opts *index.SearchOptions) ([]index.SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if f.trees == nil {
		return nil, ErrNotBuilt
	}

	if k <= 0 || len(f.values) == 0 {
		return nil, nil
	}

	if len(query) != f.opts.Dimension {
		return nil, &index.ErrDimensionMismatch{Expected: f.opts.Dimension, Actual: len(query)}
	}

	q := query
	if f.opts.Metric == distance.MetricCosine {
		norm, ok := distance.NormalizeL2Copy(query)
		if !ok {
			return nil, fmt.Errorf("rpforest: query: %w", distance.ErrZeroVector)
		}
		q = norm
	}

	budget := k
	if opts != nil && opts.Candidates > budget {
		budget = opts.Candidates
	}

	candidates := candidate.NewSet()

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(f.parallelism())

	for _, tree := range f.trees {
		tree := tree
		g.Go(func() error {
			searchTree(tree, q, budget, candidates)
			return nil
		})
	}

	// Tree tasks never fail; Wait is the forest-wide barrier.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return f.rank(q, candidates.ToArray(), k), nil
}

// rank computes exact distances for the candidate indexes and keeps the best k.
func (f *RPForest) rank(query []float32, candidates []uint32, k int) []index.SearchResult {
	actualK := k
	if actualK > len(candidates) {
		actualK = len(candidates)
	}
	if actualK == 0 {
		return nil
	}

	topCandidates := queue.NewMax(actualK)
	heap.Init(topCandidates)

	for _, idx := range candidates {
		dist := f.distanceFunc(query, f.values[idx])

		if topCandidates.Len() < actualK {
			heap.Push(topCandidates, queue.PriorityQueueItem{Node: idx, Distance: dist})
			continue
		}

		largest := topCandidates.Top().(queue.PriorityQueueItem)
		if dist < largest.Distance {
			heap.Pop(topCandidates)
			heap.Push(topCandidates, queue.PriorityQueueItem{Node: idx, Distance: dist})
		}
	}

	results := make([]index.SearchResult, topCandidates.Len())
	for i := topCandidates.Len() - 1; i >= 0; i-- {
		item := heap.Pop(topCandidates).(queue.PriorityQueueItem)
		results[i] = index.SearchResult{ID: item.Node, Distance: item.Distance}
	}

	return results
}
