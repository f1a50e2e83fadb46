package annforest_test

import (
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/annforest"
)

// Example_builder demonstrates creating an index with the fluent builder.
func Example_builder() {
	ctx := context.Background()

	idx, err := annforest.New[string](3). // 3-dimensional vectors
						SquaredL2().    // Distance function
						NumTrees(20).   // Recall vs speed
						MaxLeafSize(2). // Partition granularity
						RandomSeed(42). // Deterministic construction
						Build(ctx, [][]float32{
			{1.0, 2.0, 3.0},
			{4.0, 5.0, 6.0},
			{7.0, 8.0, 9.0},
		}, []string{"doc-1", "doc-2", "doc-3"})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Indexed %d vectors\n", idx.Len())
	// Output: Indexed 3 vectors
}

// Example_search demonstrates basic KNN search.
func Example_search() {
	ctx := context.Background()

	idx, _ := annforest.New[string](3).
		RandomSeed(42).
		Build(ctx, [][]float32{
			{1.0, 2.0, 3.0},
			{1.1, 2.1, 3.1},
			{9.0, 9.0, 9.0},
		}, []string{"doc-1", "doc-2", "doc-3"})

	results, err := idx.KNNSearch(ctx, []float32{1.0, 2.0, 3.0}, 2)
	if err != nil {
		log.Fatal(err)
	}

	for _, r := range results {
		fmt.Println(r.ID)
	}
	// Output:
	// doc-1
	// doc-2
}

// Example_fluentSearch demonstrates the fluent search API.
func Example_fluentSearch() {
	ctx := context.Background()

	idx, _ := annforest.New[string](2).
		RandomSeed(7).
		Build(ctx, [][]float32{
			{0.0, 0.0},
			{10.0, 10.0},
		}, []string{"origin", "far"})

	nearest, err := idx.Search([]float32{0.5, 0.5}).
		Candidates(2).
		First(ctx)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(nearest.ID)
	// Output: origin
}
