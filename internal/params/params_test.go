package params

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/modelopt/internal/producer"
	"github.com/zclconf/go-cty/cty"
)

func number(t *testing.T, v cty.Value) float64 {
	t.Helper()
	require.Equal(t, cty.Number, v.Type())
	f, _ := v.AsBigFloat().Float64()
	return f
}

func TestDecode_Formats(t *testing.T) {
	testCases := []struct {
		name string
		file string
		data string
	}{
		{
			name: "json",
			file: "p.json",
			data: `{"gravity": 9.5, "sphIce": true, "runName": "xhaab", "levels": [1, 2.5]}`,
		},
		{
			name: "yaml",
			file: "p.yaml",
			data: "gravity: 9.5\nsphIce: true\nrunName: xhaab\nlevels: [1, 2.5]\n",
		},
		{
			name: "yml",
			file: "P.YML",
			data: "gravity: 9.5\nsphIce: true\nrunName: xhaab\nlevels:\n  - 1\n  - 2.5\n",
		},
		{
			name: "hcl",
			file: "p.hcl",
			data: "gravity = 9.5\nsphIce = true\nrunName = \"xhaab\"\nlevels = [1, 2.5]\n",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// --- Act ---
			values, err := Decode(tc.file, []byte(tc.data))

			// --- Assert ---
			require.NoError(t, err)
			require.Len(t, values, 4)
			assert.Equal(t, 9.5, number(t, values["gravity"]))
			assert.Equal(t, "xhaab", values["runName"].AsString())

			levels := values["levels"]
			require.True(t, levels.Type().IsTupleType())
			require.Equal(t, 2, levels.LengthInt())
			assert.Equal(t, 2.5, number(t, levels.Index(cty.NumberIntVal(1))))
		})
	}
}

func TestDecode_YAMLScalars(t *testing.T) {
	values, err := Decode("p.yaml", []byte("a: true\nb: 42\nc: 1.5e+04\nd: '42'\ne: &x 3\nf: *x\n"))

	require.NoError(t, err)
	assert.True(t, values["a"].RawEquals(cty.True))
	assert.True(t, values["b"].RawEquals(cty.NumberIntVal(42)))
	assert.Equal(t, 1.5e04, number(t, values["c"]))
	assert.True(t, values["d"].RawEquals(cty.StringVal("42")))
	assert.True(t, values["f"].RawEquals(cty.NumberIntVal(3)))
}

func TestDecode_Errors(t *testing.T) {
	testCases := []struct {
		name  string
		file  string
		data  string
		isCfg bool
	}{
		{"json array top level", "p.json", `[1, 2]`, true},
		{"json nested object", "p.json", `{"a": {"b": 1}}`, true},
		{"json null", "p.json", `{"a": null}`, true},
		{"json malformed", "p.json", `{"a": `, false},
		{"yaml sequence top level", "p.yaml", "- 1\n- 2\n", true},
		{"yaml nested mapping", "p.yaml", "a:\n  b: 1\n", true},
		{"yaml duplicate key", "p.yaml", "a: 1\na: 2\n", false},
		{"yaml null", "p.yaml", "a: ~\n", true},
		{"yaml infinity", "p.yaml", "a: .inf\n", true},
		{"hcl block", "p.hcl", "a {\n}\n", false},
		{"hcl object", "p.hcl", "a = { b = 1 }\n", true},
		{"unknown extension", "p.toml", "a = 1", true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.file, []byte(tc.data))

			require.Error(t, err)
			if tc.isCfg {
				assert.ErrorIs(t, err, producer.ErrConfiguration)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"ab": 1.5}`), 0644))

	values, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 1.5, number(t, values["ab"]))

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
