package roseconf

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/modelopt/internal/edit"
	"github.com/zclconf/go-cty/cty"
)

const config = `
[file:ATMOSCNTL]
source=namelist:configid namelist:iau_nl (namelist:nlstcall_pp(:))

[namelist:iau_nl]
diagcloud_applycomplimits=.true.
diagcloud_nummaxloops=150
diagcloud_qn_compregimelimit={diagcloud_qn_compregimelimit}
!!iau_cutoff_period=
iau_nontrop_max_p={iau_nontrop_max_p}
!!iau_nontrop_max_q=3.0000e-6

[namelist:items(37619932)]
diagcloud_nummaxloops=7
l_ignore_ancil_grid_check=.false.
`

func render(maxP, compLimit string) string {
	return strings.NewReplacer(
		"{iau_nontrop_max_p}", maxP,
		"{diagcloud_qn_compregimelimit}", compLimit,
	).Replace(config)
}

func iauGroups(values map[string]cty.Value) edit.Groups {
	g := make(edit.Groups)
	for k, v := range values {
		g.Set("iau_nl", k, v)
	}
	return g
}

func TestPatch(t *testing.T) {
	// --- Arrange ---
	src := render("4.0000e+4", "20.000")
	groups := iauGroups(map[string]cty.Value{
		"iau_nontrop_max_p":            cty.NumberFloatVal(50000),
		"diagcloud_qn_compregimelimit": cty.NumberFloatVal(30),
	})

	// --- Act ---
	out, err := Patch(context.Background(), src, groups)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, render("50000.0", "30.0"), out)
}

func TestPatch_OnlyTouchesNamedSection(t *testing.T) {
	src := render("1.0", "2.0")
	groups := iauGroups(map[string]cty.Value{
		"diagcloud_nummaxloops":     cty.NumberIntVal(200),
		"diagcloud_applycomplimits": cty.False,
		"not_there":                 cty.NumberIntVal(1),
	})

	out, err := Patch(context.Background(), src, groups)
	require.NoError(t, err)

	want := strings.Replace(src, "diagcloud_nummaxloops=150", "diagcloud_nummaxloops=200", 1)
	want = strings.Replace(want, "diagcloud_applycomplimits=.true.", "diagcloud_applycomplimits=.false.", 1)
	assert.Equal(t, want, out)
	assert.Contains(t, out, "[namelist:items(37619932)]\ndiagcloud_nummaxloops=7\n")
}

func TestPatch_CommentedKeysUntouched(t *testing.T) {
	src := render("1.0", "2.0")
	groups := iauGroups(map[string]cty.Value{"iau_cutoff_period": cty.NumberIntVal(6)})

	out, err := Patch(context.Background(), src, groups)
	require.NoError(t, err)
	assert.Equal(t, src, out)
}

func TestPatch_LastSection(t *testing.T) {
	src := "[namelist:a]\nx=1\n\n[namelist:b]\nx=1\ny=0.5"
	g := make(edit.Groups)
	g.Set("b", "y", cty.NumberFloatVal(0.75))
	g.Set("b", "x", cty.NumberIntVal(3))

	out, err := Patch(context.Background(), src, g)
	require.NoError(t, err)
	assert.Equal(t, "[namelist:a]\nx=1\n\n[namelist:b]\nx=3\ny=0.75", out)
}

func TestPatch_MissingSection(t *testing.T) {
	src := "[namelist:a]\nx=1\n"
	g := make(edit.Groups)
	g.Set("zz", "x", cty.NumberIntVal(3))

	out, err := Patch(context.Background(), src, g)
	require.NoError(t, err)
	assert.Equal(t, src, out)
}

func TestPatch_TypeError(t *testing.T) {
	src := render("1.0", "2.0")

	for _, v := range []cty.Value{
		cty.StringVal("fifty"),
		cty.ListVal([]cty.Value{cty.Zero}),
		cty.NullVal(cty.Number),
	} {
		_, err := Patch(context.Background(), src, iauGroups(map[string]cty.Value{"iau_nontrop_max_p": v}))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrType)
		assert.Contains(t, err.Error(), "iau_nl[iau_nontrop_max_p]")
	}
}

func TestPatcher_Bytes(t *testing.T) {
	p := NewPatcher()
	assert.Equal(t, ".conf~", p.BackupSuffix())

	out, err := p.Patch(context.Background(), []byte("[namelist:a]\nx=.true.\n"), func() edit.Groups {
		g := make(edit.Groups)
		g.Set("a", "x", cty.False)
		return g
	}())
	require.NoError(t, err)
	assert.Equal(t, "[namelist:a]\nx=.false.\n", string(out))
}
