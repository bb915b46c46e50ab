package producer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/modelopt/internal/edit"
	"github.com/zclconf/go-cty/cty"
)

func TestDirect(t *testing.T) {
	// --- Arrange ---
	p, err := NewDirect("test.nml", "test_grp", "test_param")
	require.NoError(t, err)

	// --- Act ---
	edits, err := p.Produce(cty.NumberIntVal(42))

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, edits, 1)
	assert.Equal(t, "test.nml", edits[0].File)
	assert.Equal(t, "test_grp", edits[0].Group)
	assert.Equal(t, "test_param", edits[0].Key)
	assert.True(t, edits[0].Value.RawEquals(cty.NumberIntVal(42)))
}

func TestDirect_PassesAnyValueThrough(t *testing.T) {
	p, err := NewDirect("f", "g", "k")
	require.NoError(t, err)

	for _, v := range []cty.Value{cty.StringVal("hi"), cty.False, cty.TupleVal([]cty.Value{cty.Zero})} {
		edits, err := p.Produce(v)
		require.NoError(t, err)
		assert.True(t, edits[0].Value.RawEquals(v))
	}
}

func TestConstructorValidation(t *testing.T) {
	testCases := []struct {
		name  string
		build func() error
	}{
		{"direct without file", func() error { _, err := NewDirect("", "g", "k"); return err }},
		{"direct without group", func() error { _, err := NewDirect("f", "", "k"); return err }},
		{"direct without key", func() error { _, err := NewDirect("f", "g", ""); return err }},
		{"fan-out without keys", func() error { _, err := NewFanOut("f", "g"); return err }},
		{"fan-out with empty key", func() error { _, err := NewFanOut("f", "g", "a", ""); return err }},
		{"interpolated missing derived key", func() error {
			_, err := NewInterpolated("f", "g", "a", "", []float64{0, 1}, []float64{0, 1})
			return err
		}},
		{"interpolated descending", func() error {
			_, err := NewInterpolated("f", "g", "a", "b", []float64{1, 0}, []float64{0, 1})
			return err
		}},
		{"interpolated repeated x", func() error {
			_, err := NewInterpolated("f", "g", "a", "b", []float64{0, 0, 1}, []float64{0, 1, 2})
			return err
		}},
		{"interpolated length mismatch", func() error {
			_, err := NewInterpolated("f", "g", "a", "b", []float64{0, 1}, []float64{0})
			return err
		}},
		{"interpolated single point", func() error {
			_, err := NewInterpolated("f", "g", "a", "b", []float64{0}, []float64{0})
			return err
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.build()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfiguration)
		})
	}
}

func TestFanOut(t *testing.T) {
	// --- Arrange ---
	p, err := NewFanOut("CNTLOCN", "SEAICENL", "k1", "k2", "k3")
	require.NoError(t, err)
	v := cty.NumberFloatVal(2.5)

	// --- Act ---
	edits, err := p.Produce(v)

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, edits, 3)
	for i, key := range []string{"k1", "k2", "k3"} {
		assert.Equal(t, key, edits[i].Key)
		assert.Equal(t, "SEAICENL", edits[i].Group)
		assert.True(t, edits[i].Value.RawEquals(v))
	}
}

func TestInterpolated(t *testing.T) {
	p, err := NewInterpolated("config.nml", "POLYNOMIAL", "d", "e", []float64{-10, 0, 10}, []float64{10, 0, -5})
	require.NoError(t, err)

	testCases := []struct {
		name string
		in   cty.Value
		want float64
	}{
		{"lower endpoint", cty.NumberIntVal(-10), 10},
		{"upper endpoint", cty.NumberIntVal(10), -5},
		{"interior control point", cty.Zero, 0},
		{"first segment", cty.NumberFloatVal(-5), 5},
		{"second segment", cty.NumberFloatVal(4), -2},
		{"numeric string", cty.StringVal("5"), -2.5},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			edits, err := p.Produce(tc.in)
			require.NoError(t, err)
			require.Len(t, edits, 2)
			assert.Equal(t, "d", edits[0].Key)
			assert.Equal(t, "e", edits[1].Key)

			x, err := Float(tc.in)
			require.NoError(t, err)
			got0, _ := edits[0].Value.AsBigFloat().Float64()
			assert.Equal(t, x, got0)

			got, _ := edits[1].Value.AsBigFloat().Float64()
			assert.InDelta(t, tc.want, got, 1e-12)
		})
	}
}

func TestInterpolated_OutOfRange(t *testing.T) {
	p, err := NewInterpolated("CNTLATM", "RUNCNST", "ALPHAM", "DTICE", []float64{0.5, 0.57, 0.65}, []float64{10, 5, 2})
	require.NoError(t, err)

	for _, v := range []float64{0.49, 0.651, -1} {
		edits, err := p.Produce(cty.NumberFloatVal(v))
		require.Error(t, err, "value %g", v)
		assert.ErrorIs(t, err, ErrDomain)
		assert.Nil(t, edits)
	}
}

func TestInterpolated_RejectsNonNumbers(t *testing.T) {
	p, err := NewInterpolated("f", "g", "a", "b", []float64{0, 1}, []float64{0, 1})
	require.NoError(t, err)

	for _, v := range []cty.Value{cty.StringVal("abc"), cty.NullVal(cty.Number), cty.UnknownVal(cty.Number)} {
		_, err := p.Produce(v)
		assert.ErrorIs(t, err, ErrDomain)
	}
}

func TestFunc(t *testing.T) {
	var p Producer = Func(func(v cty.Value) ([]edit.Edit, error) {
		return []edit.Edit{{File: "f", Group: "g", Key: "k", Value: v}}, nil
	})
	edits, err := p.Produce(cty.True)
	require.NoError(t, err)
	assert.True(t, edits[0].Value.True())
}

func TestProducersArePure(t *testing.T) {
	p, err := NewInterpolated("f", "g", "a", "b", []float64{1e-04, 2e-04, 2e-03}, []float64{2e-05, 5e-05, 5e-04})
	require.NoError(t, err)

	first, err := p.Produce(cty.NumberFloatVal(1.5e-04))
	require.NoError(t, err)
	second, err := p.Produce(cty.NumberFloatVal(1.5e-04))
	require.NoError(t, err)

	assert.True(t, edit.New(first...).Equal(edit.New(second...)))
}
