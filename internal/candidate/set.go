// Package candidate provides a concurrent, deduplicating set of vector indexes.
//
// It is the only shared mutable state at query time: every tree of the forest
// inserts its candidate indexes concurrently, and an index proposed by several
// trees is stored once.
package candidate

import (
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
)

// numShards spreads inserts over independent locks to reduce contention when
// many trees are searched in parallel.
const numShards = 16

type shard struct {
	mu sync.Mutex
	bm *roaring.Bitmap
}

// Set is a mutex-sharded set of uint32 vector indexes backed by Roaring
// Bitmaps. Concurrent inserts never lose or duplicate an index.
type Set struct {
	shards [numShards]shard
}

// NewSet creates an empty set.
func NewSet() *Set {
	s := &Set{}
	for i := range s.shards {
		s.shards[i].bm = roaring.New()
	}
	return s
}

// Add inserts idx into the set. Inserting an existing index is a no-op.
func (s *Set) Add(idx uint32) {
	sh := &s.shards[idx%numShards]
	sh.mu.Lock()
	sh.bm.Add(idx)
	sh.mu.Unlock()
}

// Contains reports whether idx is in the set.
func (s *Set) Contains(idx uint32) bool {
	sh := &s.shards[idx%numShards]
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.bm.Contains(idx)
}

// Cardinality returns the number of distinct indexes in the set.
func (s *Set) Cardinality() uint64 {
	var n uint64
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.Lock()
		n += sh.bm.GetCardinality()
		sh.mu.Unlock()
	}
	return n
}

// ToArray returns all indexes in ascending order.
func (s *Set) ToArray() []uint32 {
	merged := roaring.New()
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.Lock()
		merged.Or(sh.bm)
		sh.mu.Unlock()
	}
	return merged.ToArray()
}
