package mapping

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/modelopt/internal/edit"
	"github.com/vk/modelopt/internal/namelist"
	"github.com/vk/modelopt/internal/producer"
	"github.com/zclconf/go-cty/cty"
)

func mustDirect(t *testing.T, file, group, key string) producer.Producer {
	t.Helper()
	p, err := producer.NewDirect(file, group, key)
	require.NoError(t, err)
	return p
}

// exampleMapping mirrors a small two-file model.
func exampleMapping(t *testing.T) *Mapping {
	t.Helper()
	m, err := New("ExampleModel", namelist.NewPatcher(), Table{
		"paramA": mustDirect(t, "test1.nml", "grp1", "p1"),
		"paramB": mustDirect(t, "test1.nml", "grp1", "p2"),
		"paramC": mustDirect(t, "test1.nml", "grp2", "p1"),
		"paramD": mustDirect(t, "test2.nml", "grp1", "p1"),
	})
	require.NoError(t, err)
	return m
}

func TestNew_Validation(t *testing.T) {
	_, err := New("", namelist.NewPatcher(), nil)
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = New("m", nil, nil)
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = New("m", namelist.NewPatcher(), Table{"a": nil})
	assert.ErrorIs(t, err, ErrConfiguration)

	assert.Panics(t, func() { Must(New("m", nil, nil)) })
}

func TestNew_CopiesTable(t *testing.T) {
	table := Table{"a": mustDirect(t, "f", "g", "k")}
	m, err := New("m", namelist.NewPatcher(), table)
	require.NoError(t, err)

	table["b"] = mustDirect(t, "f", "g", "k2")
	assert.Equal(t, []string{"a"}, m.Parameters())
}

func TestProcessParams(t *testing.T) {
	// --- Arrange ---
	m := exampleMapping(t)
	params := map[string]cty.Value{
		"paramA": cty.StringVal("hi world"),
		"paramB": cty.False,
		"paramC": cty.NumberIntVal(10),
		"paramD": cty.NumberFloatVal(-5),
	}

	// --- Act ---
	set, err := m.ProcessParams(context.Background(), params)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, []string{"test1.nml", "test2.nml"}, set.Files())
	assert.Equal(t, 4, set.Len())
	assert.True(t, set["test1.nml"]["grp1"]["p1"].RawEquals(cty.StringVal("hi world")))
	assert.True(t, set["test1.nml"]["grp2"]["p1"].RawEquals(cty.NumberIntVal(10)))
	assert.True(t, set["test2.nml"]["grp1"]["p1"].RawEquals(cty.NumberFloatVal(-5)))
}

func TestProcessParams_IsPure(t *testing.T) {
	m := exampleMapping(t)
	params := map[string]cty.Value{"paramA": cty.StringVal("x"), "paramD": cty.NumberFloatVal(1.5)}

	first, err := m.ProcessParams(context.Background(), params)
	require.NoError(t, err)
	second, err := m.ProcessParams(context.Background(), params)
	require.NoError(t, err)

	assert.True(t, first.Equal(second))
}

func TestProcessParams_UnknownParameter(t *testing.T) {
	m := exampleMapping(t)

	set, err := m.ProcessParams(context.Background(), map[string]cty.Value{
		"paramA": cty.StringVal("ok"),
		"ZZ":     cty.StringVal("fail"),
		"AA":     cty.StringVal("fail"),
	})

	require.Error(t, err)
	assert.Nil(t, set)
	assert.ErrorIs(t, err, ErrConfiguration)

	var unknown *UnknownParameterError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, []string{"AA", "ZZ"}, unknown.Names)
	assert.Equal(t, "ExampleModel", unknown.Model)
}

func TestProcessParams_UnknownCheckedBeforeProducers(t *testing.T) {
	called := false
	spy := producer.Func(func(v cty.Value) ([]edit.Edit, error) {
		called = true
		return nil, nil
	})
	m, err := New("m", namelist.NewPatcher(), Table{"a": spy})
	require.NoError(t, err)

	_, err = m.ProcessParams(context.Background(), map[string]cty.Value{"a": cty.True, "b": cty.True})
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.False(t, called, "no producer may run when a parameter is unknown")
}

func TestProcessParams_DomainErrorAborts(t *testing.T) {
	interp, err := producer.NewInterpolated("f.nml", "g", "x", "y", []float64{0, 1}, []float64{0, 1})
	require.NoError(t, err)
	m, err := New("m", namelist.NewPatcher(), Table{
		"a": mustDirect(t, "f.nml", "g", "a"),
		"x": interp,
	})
	require.NoError(t, err)

	set, err := m.ProcessParams(context.Background(), map[string]cty.Value{
		"a": cty.NumberIntVal(1),
		"x": cty.NumberIntVal(2),
	})

	assert.Nil(t, set)
	assert.ErrorIs(t, err, ErrDomain)
	var paramErr *ParameterError
	require.ErrorAs(t, err, &paramErr)
	assert.Equal(t, "x", paramErr.Name)
}

func TestProcessParams_CollisionLastSortedWins(t *testing.T) {
	m, err := New("m", namelist.NewPatcher(), Table{
		"alpha": mustDirect(t, "f.nml", "g", "k"),
		"beta":  mustDirect(t, "f.nml", "g", "k"),
	})
	require.NoError(t, err)

	set, err := m.ProcessParams(context.Background(), map[string]cty.Value{
		"beta":  cty.StringVal("from beta"),
		"alpha": cty.StringVal("from alpha"),
	})
	require.NoError(t, err)
	assert.Equal(t, "from beta", set["f.nml"]["g"]["k"].AsString())
}

func TestProcessParams_Empty(t *testing.T) {
	set, err := exampleMapping(t).ProcessParams(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, set.Len())
}
