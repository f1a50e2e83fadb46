// Package distance provides the vector arithmetic and distance metrics used by
// the index: dot product, squared Euclidean distance, midpoint/difference
// helpers for hyperplane construction, and L2 normalization for cosine search.
package distance
