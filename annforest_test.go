package annforest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKNNSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("NearestCluster", func(t *testing.T) {
		// Three points, two of them clustered far from the origin. A query
		// near the cluster must return the two cluster members. Tiny leaves
		// force real splits; the tree count keeps the miss probability
		// negligible for any seed.
		idx, err := New[int](2).
			NumTrees(50).
			MaxLeafSize(1).
			RandomSeed(1234).
			Build(ctx, [][]float32{
				{0, 0},
				{10, 10},
				{10.1, 10.1},
			}, []int{1, 2, 3})
		require.NoError(t, err)

		results, err := idx.KNNSearch(ctx, []float32{9.9, 9.9}, 2)
		require.NoError(t, err)
		require.Len(t, results, 2)

		assert.Equal(t, 2, results[0].ID)
		assert.Equal(t, 3, results[1].ID)
		assert.Less(t, results[0].Distance, results[1].Distance)
	})

	t.Run("TranslatesDimensionMismatch", func(t *testing.T) {
		idx, err := New[string](3).Build(ctx, [][]float32{{1, 2, 3}}, []string{"a"})
		require.NoError(t, err)

		_, err = idx.KNNSearch(ctx, []float32{1, 2}, 1)

		var dimErr *ErrDimensionMismatch

		require.ErrorAs(t, err, &dimErr)
		assert.Equal(t, 3, dimErr.Expected)
		assert.Equal(t, 2, dimErr.Actual)
	})

	t.Run("NonPositiveK", func(t *testing.T) {
		idx, err := New[string](2).Build(ctx, [][]float32{{1, 2}}, []string{"a"})
		require.NoError(t, err)

		results, err := idx.KNNSearch(ctx, []float32{1, 2}, 0)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("Stats", func(t *testing.T) {
		idx, err := New[string](2).NumTrees(3).MaxLeafSize(1).RandomSeed(2).Build(ctx, [][]float32{
			{0, 0},
			{1, 0},
			{0, 1},
		}, []string{"a", "b", "c"})
		require.NoError(t, err)

		stats := idx.Stats()

		assert.Equal(t, 3, stats.Vectors)
		assert.Equal(t, 3, stats.Trees)
		assert.Equal(t, 1, stats.MaxLeafSize)
		assert.Positive(t, stats.Leaves)
	})
}

func TestFluentSearch(t *testing.T) {
	ctx := context.Background()

	newIndex := func(t *testing.T) *Index[string] {
		t.Helper()

		idx, err := New[string](2).RandomSeed(3).Build(ctx, [][]float32{
			{0, 0},
			{5, 5},
			{10, 10},
		}, []string{"near", "mid", "far"})
		require.NoError(t, err)

		return idx
	}

	t.Run("Execute", func(t *testing.T) {
		results, err := newIndex(t).Search([]float32{0.1, 0.1}).
			K(2).
			Candidates(3).
			Execute(ctx)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "near", results[0].ID)
		assert.Equal(t, "mid", results[1].ID)
	})

	t.Run("First", func(t *testing.T) {
		nearest, err := newIndex(t).Search([]float32{9, 9}).Candidates(3).First(ctx)
		require.NoError(t, err)
		assert.Equal(t, "far", nearest.ID)
	})

	t.Run("FirstOnEmptyIndex", func(t *testing.T) {
		idx, err := New[string](2).Build(ctx, nil, nil)
		require.NoError(t, err)

		_, err = idx.Search([]float32{0, 0}).First(ctx)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("CountAndExists", func(t *testing.T) {
		idx := newIndex(t)

		count, err := idx.Search([]float32{0, 0}).K(10).Candidates(3).Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, count)

		ok, err := idx.Search([]float32{0, 0}).Exists(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestMetricsAndLogging(t *testing.T) {
	ctx := context.Background()

	t.Run("BasicCollector", func(t *testing.T) {
		collector := &BasicMetricsCollector{}

		idx, err := New[string](2).
			Metrics(collector).
			Logger(NoopLogger()).
			Build(ctx, [][]float32{{1, 2}, {3, 4}}, []string{"a", "b"})
		require.NoError(t, err)

		_, err = idx.KNNSearch(ctx, []float32{1, 2}, 1)
		require.NoError(t, err)

		_, err = idx.KNNSearch(ctx, []float32{1}, 1)
		require.Error(t, err)

		stats := collector.GetStats()

		assert.Equal(t, int64(1), stats.BuildCount)
		assert.Equal(t, int64(2), stats.BuildVectors)
		assert.Zero(t, stats.BuildErrors)
		assert.Equal(t, int64(2), stats.SearchCount)
		assert.Equal(t, int64(1), stats.SearchErrors)
	})

	t.Run("BuildErrorRecorded", func(t *testing.T) {
		collector := &BasicMetricsCollector{}

		_, err := New[string](0).Metrics(collector).Build(ctx, nil, nil)
		require.Error(t, err)

		stats := collector.GetStats()

		assert.Equal(t, int64(1), stats.BuildCount)
		assert.Equal(t, int64(1), stats.BuildErrors)
	})
}
