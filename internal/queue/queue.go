// Package queue provides the bounded priority queue used for top-k selection.
package queue

import "container/heap"

// Compile time check to ensure PriorityQueue satisfies the heap interface.
var _ heap.Interface = (*PriorityQueue)(nil)

// PriorityQueueItem represents an item in the priority queue.
type PriorityQueueItem struct {
	Node     uint32  // Node is the vector index of the item.
	Distance float32 // Distance is the priority of the item in the queue.
}

// PriorityQueue implements heap.Interface over distance-ordered items.
//
// A max-ordered queue of capacity k keeps the k smallest distances seen: the
// worst candidate sits at the top and is evicted when a better one arrives.
type PriorityQueue struct {
	max   bool
	items []PriorityQueueItem
}

// NewMax creates a max-ordered priority queue with the given capacity hint.
func NewMax(capacity int) *PriorityQueue {
	return &PriorityQueue{max: true, items: make([]PriorityQueueItem, 0, capacity)}
}

// NewMin creates a min-ordered priority queue with the given capacity hint.
func NewMin(capacity int) *PriorityQueue {
	return &PriorityQueue{max: false, items: make([]PriorityQueueItem, 0, capacity)}
}

// Len returns the number of elements in the priority queue.
func (pq *PriorityQueue) Len() int { return len(pq.items) }

// Less reports whether the element with index i should sort before the element with index j.
func (pq *PriorityQueue) Less(i, j int) bool {
	if pq.max {
		return pq.items[i].Distance > pq.items[j].Distance
	}
	return pq.items[i].Distance < pq.items[j].Distance
}

// Swap swaps the elements with indexes i and j.
func (pq *PriorityQueue) Swap(i, j int) {
	pq.items[i], pq.items[j] = pq.items[j], pq.items[i]
}

// Push adds x to the priority queue.
func (pq *PriorityQueue) Push(x any) {
	item, _ := x.(PriorityQueueItem)
	pq.items = append(pq.items, item)
}

// Pop removes and returns the top element from the priority queue.
func (pq *PriorityQueue) Pop() any {
	old := pq.items
	n := len(old)
	item := old[n-1]
	pq.items = old[:n-1]
	return item
}

// Top returns the top element of the priority queue.
func (pq *PriorityQueue) Top() any {
	return pq.items[0]
}
