package integration_tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/modelopt/internal/mapping"
	"github.com/vk/modelopt/internal/testutil"
)

const polynomial = `&POLYNOMIAL
  a = 0.0
  b = 0.0
  d = 0.0
  e = 0.0
/
`

// Test for: unknown parameters are all reported and nothing is written
func TestErrorHandling_UnknownParameters_WriteNothing(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"model/config.nml": polynomial,
		"params.json":      `{"ab": 1, "zz": 2, "yy": 3}`,
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, "write", "$ROOT/model", "-t", "DummyModel", "-p", "$ROOT/params.json")

	// --- Assert ---
	require.ErrorIs(t, result.Err, mapping.ErrConfiguration)
	var unknown *mapping.UnknownParameterError
	require.ErrorAs(t, result.Err, &unknown)
	assert.Equal(t, []string{"yy", "zz"}, unknown.Names)
	testutil.AssertFileContent(t, result, "model/config.nml", polynomial)
	testutil.AssertNotExists(t, result, "model/config.nml~")
}

// Test for: out of range values fail the whole write
func TestErrorHandling_OutOfRange_WritesNothing(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"model/config.nml": polynomial,
		"params.json":      `{"ab": 1, "de": 10.5}`,
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, "write", "$ROOT/model", "-t", "DummyModel", "-p", "$ROOT/params.json")

	// --- Assert ---
	require.ErrorIs(t, result.Err, mapping.ErrDomain)
	assert.Contains(t, result.Err.Error(), "de")
	testutil.AssertFileContent(t, result, "model/config.nml", polynomial)
}

// Test for: invalid mapping files are rejected before anything runs
func TestErrorHandling_InvalidMappingFile_IsRejected(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"mappings/broken.hcl": "model \"Broken\" {\n  parameter \"p\" {\n",
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, "models", "--mappings", "$ROOT/mappings")

	// --- Assert ---
	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "failed to parse")
	assert.Empty(t, result.Output)
}

// Test for: a Rose configuration rejects string values
func TestErrorHandling_RoseConfig_RejectsStrings(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	conf := "[namelist:iau_nl]\niau_nontrop_max_p=4.0000e+4\n"
	files := map[string]string{
		"model/app/um/rose-app.conf": conf,
		"params.json":                `{"iau_nontrop_max_p": "high"}`,
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, "write", "$ROOT/model", "-p", "$ROOT/params.json")

	// --- Assert ---
	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "cannot handle value for iau_nl[iau_nontrop_max_p]")
	testutil.AssertFileContent(t, result, "model/app/um/rose-app.conf", conf)
}
