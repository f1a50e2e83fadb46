// Package annforest provides an embedded approximate nearest neighbor index.
//
// This file implements a fluent search API for querying Index instances.
package annforest

import (
	"context"
)

// Search creates a new fluent search builder for the given query vector.
//
// Example:
//
//	results, err := idx.Search(query).
//	    K(10).
//	    Candidates(100).
//	    Execute(ctx)
func (idx *Index[K]) Search(query []float32) *SearchBuilder[K] {
	return &SearchBuilder[K]{
		idx:   idx,
		query: query,
		k:     10, // Default k
	}
}

// SearchBuilder is a fluent builder for constructing search queries.
type SearchBuilder[K comparable] struct {
	idx        *Index[K]
	query      []float32
	k          int
	candidates int
}

// K sets the number of nearest neighbors to return.
func (sb *SearchBuilder[K]) K(k int) *SearchBuilder[K] {
	sb.k = k
	return sb
}

// Candidates sets the per-tree candidate budget.
// Higher values improve recall but slow down search.
func (sb *SearchBuilder[K]) Candidates(n int) *SearchBuilder[K] {
	sb.candidates = n
	return sb
}

// Execute runs the search and returns the results.
func (sb *SearchBuilder[K]) Execute(ctx context.Context) ([]SearchResult[K], error) {
	return sb.idx.KNNSearch(ctx, sb.query, sb.k, func(o *KNNSearchOptions) {
		if sb.candidates > 0 {
			o.Candidates = sb.candidates
		}
	})
}

// MustExecute runs the search, panicking on error.
// Use this only in tests or when you're certain the query is valid.
func (sb *SearchBuilder[K]) MustExecute(ctx context.Context) []SearchResult[K] {
	results, err := sb.Execute(ctx)
	if err != nil {
		panic(err)
	}
	return results
}

// First returns only the nearest result, or an error if none found.
func (sb *SearchBuilder[K]) First(ctx context.Context) (SearchResult[K], error) {
	sb.k = 1
	results, err := sb.Execute(ctx)
	if err != nil {
		return SearchResult[K]{}, err
	}
	if len(results) == 0 {
		return SearchResult[K]{}, ErrNotFound
	}
	return results[0], nil
}

// Count executes the search and returns the number of results.
func (sb *SearchBuilder[K]) Count(ctx context.Context) (int, error) {
	results, err := sb.Execute(ctx)
	if err != nil {
		return 0, err
	}
	return len(results), nil
}

// Exists checks if at least one result matches the search.
func (sb *SearchBuilder[K]) Exists(ctx context.Context) (bool, error) {
	sb.k = 1
	results, err := sb.Execute(ctx)
	if err != nil {
		return false, err
	}
	return len(results) > 0, nil
}
