package rpforest

// node is either a leaf holding a bounded bag of vector indexes or an inner
// node splitting space with a hyperplane. Inner nodes always own both
// children; leaves own neither.
type node struct {
	// leaf payload, in partition order; nil for inner nodes
	indexes []uint32

	// inner payload
	hp    hyperplane
	below *node
	above *node
}

func newLeaf(indexes []uint32) *node {
	leaf := make([]uint32, len(indexes))
	copy(leaf, indexes)

	return &node{indexes: leaf}
}

func (n *node) isLeaf() bool {
	return n.below == nil
}
