package producer

import (
	"math"
	"sort"
)

// Interpolator evaluates a piecewise-linear function through fixed control
// points. Inputs outside [xs[0], xs[n-1]] are rejected, never extrapolated.
type Interpolator struct {
	xs []float64
	ys []float64
}

// NewInterpolator validates and copies the control points.
func NewInterpolator(xs, ys []float64) (*Interpolator, error) {
	if len(xs) != len(ys) {
		return nil, Configf("interpolation table has %d x values but %d y values", len(xs), len(ys))
	}
	if len(xs) < 2 {
		return nil, Configf("interpolation table needs at least two points, got %d", len(xs))
	}
	for i := range xs {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) || math.IsInf(xs[i], 0) || math.IsInf(ys[i], 0) {
			return nil, Configf("interpolation table point %d is not finite", i)
		}
		if i > 0 && xs[i] <= xs[i-1] {
			return nil, Configf("interpolation x values must be strictly ascending, %g follows %g", xs[i], xs[i-1])
		}
	}
	return &Interpolator{
		xs: append([]float64(nil), xs...),
		ys: append([]float64(nil), ys...),
	}, nil
}

// Bounds returns the first and last x control point.
func (t *Interpolator) Bounds() (float64, float64) {
	return t.xs[0], t.xs[len(t.xs)-1]
}

// At returns the interpolated value at x.
func (t *Interpolator) At(x float64) (float64, error) {
	lo, hi := t.Bounds()
	if math.IsNaN(x) || x < lo || x > hi {
		return 0, Domainf("%g is outside the interpolation range [%g, %g]", x, lo, hi)
	}
	// i is the first control point with xs[i] >= x
	i := sort.SearchFloat64s(t.xs, x)
	if t.xs[i] == x {
		return t.ys[i], nil
	}
	x0, x1 := t.xs[i-1], t.xs[i]
	y0, y1 := t.ys[i-1], t.ys[i]
	return y0 + (y1-y0)*(x-x0)/(x1-x0), nil
}
