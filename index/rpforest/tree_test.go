package rpforest

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeBuilder(t *testing.T) {
	t.Run("LeafBound", func(t *testing.T) {
		const maxLeafSize = 4

		rng := rand.New(rand.NewSource(2))
		values := make([][]float32, 300)
		for i := range values {
			values[i] = []float32{rng.Float32(), rng.Float32()}
		}

		indexes := make([]uint32, len(values))
		for i := range indexes {
			indexes[i] = uint32(i)
		}

		b := &treeBuilder{maxLeafSize: maxLeafSize, values: values, rng: rng}
		root := b.build(indexes)

		total := 0
		walkLeaves(root, func(n *node) {
			// Distinct points always separate, so no oversized fallback here.
			assert.LessOrEqual(t, len(n.indexes), maxLeafSize)
			total += len(n.indexes)
		})
		assert.Equal(t, len(values), total)
	})

	t.Run("SmallInputIsSingleLeaf", func(t *testing.T) {
		values := [][]float32{{1, 1}, {2, 2}}

		b := &treeBuilder{maxLeafSize: 4, values: values, rng: rand.New(rand.NewSource(3))}
		root := b.build([]uint32{0, 1})

		require.True(t, root.isLeaf())
		assert.Equal(t, []uint32{0, 1}, root.indexes)
	})

	t.Run("LeafCopiesInput", func(t *testing.T) {
		values := [][]float32{{1, 1}}
		indexes := []uint32{0}

		b := &treeBuilder{maxLeafSize: 4, values: values, rng: rand.New(rand.NewSource(4))}
		root := b.build(indexes)

		indexes[0] = 99
		assert.Equal(t, []uint32{0}, root.indexes)
	})

	t.Run("DuplicatePointsTerminate", func(t *testing.T) {
		// All identical points: no hyperplane can separate them. The builder
		// must give up after its retry budget and emit one oversized leaf.
		values := make([][]float32, 50)
		for i := range values {
			values[i] = []float32{3, 3, 3}
		}

		indexes := make([]uint32, len(values))
		for i := range indexes {
			indexes[i] = uint32(i)
		}

		b := &treeBuilder{maxLeafSize: 1, values: values, rng: rand.New(rand.NewSource(5))}
		root := b.build(indexes)

		require.True(t, root.isLeaf())
		assert.Len(t, root.indexes, len(values))
	})
}

func walkLeaves(n *node, fn func(*node)) {
	if n.isLeaf() {
		fn(n)
		return
	}
	walkLeaves(n.below, fn)
	walkLeaves(n.above, fn)
}
