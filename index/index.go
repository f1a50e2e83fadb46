// Package index provides shared types for vector search indexes.
package index

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidNumTrees is returned when the configured number of trees is not positive.
	ErrInvalidNumTrees = errors.New("number of trees must be positive")

	// ErrInvalidLeafSize is returned when the configured maximum leaf size is not positive.
	ErrInvalidLeafSize = errors.New("max leaf size must be positive")
)

// ErrDimensionMismatch is a named error type for dimension mismatch
type ErrDimensionMismatch struct {
	Expected int // Expected dimensions
	Actual   int // Actual dimensions
}

// Error returns the error message for dimension mismatch
func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// ErrInvalidDimension indicates an invalid configured dimension.
type ErrInvalidDimension struct {
	Dimension int
}

// Error returns the error message for an invalid dimension.
func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("invalid dimension: %d", e.Dimension)
}

// ValidateDimension checks that the configured dimension is usable.
func ValidateDimension(dimension int) error {
	if dimension <= 0 {
		return &ErrInvalidDimension{Dimension: dimension}
	}
	return nil
}

// SearchResult represents a search result.
type SearchResult struct {
	// ID is the internal index of the result vector.
	ID uint32

	// Distance is the distance between the query vector and the result vector.
	Distance float32
}

// SearchOptions contains per-query options.
type SearchOptions struct {
	// Candidates is the per-tree candidate budget. Values below k are ignored;
	// larger values improve recall at the cost of more exact distance
	// computations during re-ranking.
	Candidates int
}

// Stats describes the shape of a built index.
type Stats struct {
	// Vectors is the number of stored (deduplicated) vectors.
	Vectors int

	// Trees is the number of trees in the forest.
	Trees int

	// Leaves is the total leaf count across all trees.
	Leaves int

	// MaxDepth is the deepest leaf over all trees (root = depth 1).
	MaxDepth int

	// MaxLeafSize is the configured leaf capacity.
	MaxLeafSize int

	// OversizedLeaves counts leaves that exceeded MaxLeafSize because no
	// splitting hyperplane could separate their points.
	OversizedLeaves int
}
