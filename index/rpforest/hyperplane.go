package rpforest

import "github.com/hupe1980/annforest/distance"

// hyperplane is an oriented splitting plane: coefficients·x + constant = 0.
type hyperplane struct {
	coefficients []float32
	constant     float32
}

// newHyperplane builds the plane perpendicular to the segment ab, passing
// through its midpoint.
func newHyperplane(a, b []float32) hyperplane {
	coefficients := distance.Sub(a, b)

	return hyperplane{
		coefficients: coefficients,
		constant:     -distance.Dot(coefficients, distance.Midpoint(a, b)),
	}
}

// pointIsAbove reports whether v lies strictly above the plane.
// Points exactly on the plane classify as below; "not above" is the only
// other side, there is no third category.
func (h hyperplane) pointIsAbove(v []float32) bool {
	return distance.Dot(h.coefficients, v)+h.constant > 0
}
