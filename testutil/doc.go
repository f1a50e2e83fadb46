// Package testutil provides testing utilities for annforest.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random vectors, computing exact
// nearest neighbors, and verifying search recall.
//
// # Random Vector Generation
//
//	rng := testutil.NewRNG(seed)
//	vectors := rng.UniformVectors(1000, 128)
//
// # Exact Search (Ground Truth)
//
//	results := testutil.ExactTopK(query, dataset, k)
//
// # Recall Verification
//
//	recall := testutil.ComputeRecall(exactResults, approxResults)
package testutil
