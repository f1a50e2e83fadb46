package distance

import (
	"errors"
	"fmt"
	"slices"

	"github.com/viant/vec/search"
	"gonum.org/v1/gonum/blas/gonum"
)

// ErrZeroVector is returned when a vector with zero L2 norm is normalized.
var ErrZeroVector = errors.New("distance: zero vector cannot be normalized")

// blasEngine dispatches float32 kernels to SIMD implementations where gonum
// provides them.
var blasEngine = gonum.Implementation{}

// Dot calculates the dot product of two vectors.
// Assumes vectors are the same length (caller's responsibility).
func Dot(a, b []float32) float32 {
	return blasEngine.Sdot(len(a), a, 1, b, 1)
}

// SquaredL2 calculates the squared L2 (Euclidean) distance between two vectors.
// Assumes vectors are the same length (caller's responsibility).
func SquaredL2(a, b []float32) float32 {
	var distance float32
	for i := range a {
		d := a[i] - b[i]
		distance += d * d
	}
	return distance
}

// Sub returns the component-wise difference a - b as a new vector.
func Sub(a, b []float32) []float32 {
	out := make([]float32, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return out
}

// Midpoint returns the component-wise average of a and b as a new vector.
func Midpoint(a, b []float32) []float32 {
	out := make([]float32, len(a))
	for i := range a {
		out[i] = (a[i] + b[i]) / 2
	}
	return out
}

// Magnitude returns the L2 norm of v.
func Magnitude(v []float32) float32 {
	return search.Float32s(v).Magnitude()
}

// NormalizeL2InPlace L2-normalizes v in place.
// Returns false if v has zero L2 norm.
func NormalizeL2InPlace(v []float32) bool {
	if len(v) == 0 {
		return false
	}
	norm := Magnitude(v)
	if norm == 0 {
		return false
	}
	inv := 1 / norm
	for i := range v {
		v[i] *= inv
	}
	return true
}

// NormalizeL2Copy returns a normalized copy of src.
// Returns false if src has zero L2 norm.
func NormalizeL2Copy(src []float32) ([]float32, bool) {
	dst := slices.Clone(src)
	if !NormalizeL2InPlace(dst) {
		return nil, false
	}
	return dst, true
}

// Metric represents the distance metric used for vector comparison.
type Metric int

const (
	MetricL2 Metric = iota
	MetricCosine
)

func (m Metric) String() string {
	switch m {
	case MetricL2:
		return "L2"
	case MetricCosine:
		return "Cosine"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// Func is a function type for distance calculation.
type Func func(a, b []float32) float32

// Provider returns the distance function for the given metric.
//
// Cosine indexes store L2-normalized vectors, so squared L2 ordering is
// equivalent to cosine ordering (d = 2·(1-cosθ) on normalized inputs).
func Provider(m Metric) (Func, error) {
	switch m {
	case MetricL2, MetricCosine:
		return SquaredL2, nil
	default:
		return nil, fmt.Errorf("unsupported metric: %v", m)
	}
}
