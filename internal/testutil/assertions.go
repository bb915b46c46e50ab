package testutil

import (
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// AssertFileContent compares a file below the harness root with want and
// reports a diff on mismatch.
func AssertFileContent(t *testing.T, result *HarnessResult, rel, want string) {
	t.Helper()
	got, err := os.ReadFile(result.Path(rel))
	require.NoError(t, err)
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("%s mismatch (-want +got):\n%s", rel, diff)
	}
}

// AssertExists fails unless a file exists below the harness root.
func AssertExists(t *testing.T, result *HarnessResult, rel string) {
	t.Helper()
	_, err := os.Stat(result.Path(rel))
	require.NoError(t, err, "expected %s to exist", rel)
}

// AssertNotExists fails if a file exists below the harness root.
func AssertNotExists(t *testing.T, result *HarnessResult, rel string) {
	t.Helper()
	_, err := os.Stat(result.Path(rel))
	require.True(t, os.IsNotExist(err), "expected %s not to exist", rel)
}

// AssertLogged checks that the captured logs contain substring.
func AssertLogged(t *testing.T, result *HarnessResult, substring string) {
	t.Helper()
	require.True(t,
		strings.Contains(result.LogOutput, substring),
		"expected log output to contain %q, got:\n%s", substring, result.LogOutput,
	)
}
