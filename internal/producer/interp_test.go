package producer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestInterpolator_At(t *testing.T) {
	table, err := NewInterpolator([]float64{0.5, 0.7, 0.8}, []float64{0.5, 0.6, 0.65})
	require.NoError(t, err)

	lo, hi := table.Bounds()
	assert.Equal(t, 0.5, lo)
	assert.Equal(t, 0.8, hi)

	testCases := []struct {
		x, want float64
	}{
		{0.5, 0.5},
		{0.6, 0.55},
		{0.7, 0.6},
		{0.75, 0.625},
		{0.8, 0.65},
	}
	for _, tc := range testCases {
		got, err := table.At(tc.x)
		require.NoError(t, err)
		assert.InDelta(t, tc.want, got, 1e-12, "x=%g", tc.x)
	}

	_, err = table.At(math.NaN())
	assert.ErrorIs(t, err, ErrDomain)
	_, err = table.At(0.81)
	assert.ErrorIs(t, err, ErrDomain)
}

func TestInterpolator_CopiesInput(t *testing.T) {
	xs := []float64{0, 1}
	ys := []float64{0, 10}
	table, err := NewInterpolator(xs, ys)
	require.NoError(t, err)

	xs[1] = 100
	ys[1] = -1

	got, err := table.At(0.5)
	require.NoError(t, err)
	assert.Equal(t, 5.0, got)
}

func TestInterpolator_RejectsNonFinite(t *testing.T) {
	_, err := NewInterpolator([]float64{0, math.Inf(1)}, []float64{0, 1})
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestCoercion(t *testing.T) {
	f, err := Float(cty.StringVal("2.5"))
	require.NoError(t, err)
	assert.Equal(t, 2.5, f)

	b, err := Bool(cty.StringVal("true"))
	require.NoError(t, err)
	assert.True(t, b)

	_, err = Bool(cty.NumberIntVal(1))
	assert.ErrorIs(t, err, ErrDomain)

	s, err := String(cty.StringVal("xhaaa"))
	require.NoError(t, err)
	assert.Equal(t, "xhaaa", s)

	_, err = String(cty.NullVal(cty.String))
	assert.ErrorIs(t, err, ErrDomain)

	list := NumberList([]float64{1, 2})
	assert.Equal(t, 2, list.LengthInt())
	assert.True(t, NumberList(nil).RawEquals(cty.ListValEmpty(cty.Number)))
}
