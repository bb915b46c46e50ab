// Package testutil provides the end-to-end harness used by the integration
// tests: it lays out a model directory tree, runs the mo2 command line
// against it and captures output and logs.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/modelopt/internal/cli"
)

// RootToken is replaced by the harness root directory in command arguments.
const RootToken = "$ROOT"

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Root      string
	Output    string
	LogOutput string
	Err       error
}

// Path returns the absolute path of a file below the harness root.
func (r *HarnessResult) Path(rel string) string {
	return filepath.Join(r.Root, filepath.FromSlash(rel))
}

// WriteFiles creates files below a fresh temporary root. Keys are slash
// separated paths relative to the root.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

// RunIntegrationTest writes files below a fresh root and runs the command
// line with args, in which RootToken stands for that root. Logs are captured
// at debug level.
func RunIntegrationTest(t *testing.T, files map[string]string, args ...string) *HarnessResult {
	t.Helper()
	return RunInRoot(t, WriteFiles(t, files), args...)
}

// RunInRoot runs the command line against an existing root.
func RunInRoot(t *testing.T, root string, args ...string) *HarnessResult {
	t.Helper()

	expanded := make([]string, 0, len(args)+2)
	for _, a := range args {
		expanded = append(expanded, strings.ReplaceAll(a, RootToken, root))
	}
	expanded = append(expanded, "--log-level", "debug")

	out := &SafeBuffer{}
	logs := &SafeBuffer{}
	err := cli.Execute(expanded, out, logs)

	if os.Getenv("MO2_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
	}

	return &HarnessResult{
		Root:      root,
		Output:    out.String(),
		LogOutput: logs.String(),
		Err:       err,
	}
}
