package rpforest

import "github.com/hupe1980/annforest/internal/candidate"

// searchTree descends a tree gathering up to budget candidate indexes into the
// shared set and returns how many were taken.
//
// The descent is budgeted and greedy: the branch on the query's side of each
// hyperplane is searched first with the full budget, the other branch only for
// the shortfall. A query close to a splitting plane may therefore miss the
// leaf holding its true nearest neighbor; that approximation is the point of
// the structure, not a defect to repair.
func searchTree(n *node, query []float32, budget int, set *candidate.Set) int {
	if n.isLeaf() {
		take := budget
		if take > len(n.indexes) {
			take = len(n.indexes)
		}

		// Leaf order, not distance order: ranking happens later against
		// exact distances.
		for _, idx := range n.indexes[:take] {
			set.Add(idx)
		}

		return take
	}

	primary, alternate := n.below, n.above
	if n.hp.pointIsAbove(query) {
		primary, alternate = n.above, n.below
	}

	found := searchTree(primary, query, budget, set)
	if found < budget {
		found += searchTree(alternate, query, budget-found, set)
	}

	return found
}
