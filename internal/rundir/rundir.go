// Package rundir manages the per-run model directories of an optimisation
// study. Each run lives in "run_NNNN" below the study directory, the run with
// the default parameter values in "default", and the run id is recorded in
// an objfun.runid file inside the directory.
package rundir

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vk/modelopt/internal/fsutil"
)

// RunIDFile records the run id inside a run directory.
const RunIDFile = "objfun.runid"

// DefaultName is the directory of the default parameter run.
const DefaultName = "default"

// noRunID is the content of RunIDFile for the default run.
const noRunID = "None"

var (
	// ErrExists is returned when a run directory is created twice.
	ErrExists = errors.New("run directory already exists")
	// ErrNotFound is returned when a run directory or its run id file is missing.
	ErrNotFound = errors.New("run directory not found")
	// ErrRunIDMismatch is returned when the recorded run id differs.
	ErrRunIDMismatch = errors.New("run ID does not match")
)

// Name returns the directory name of a run. A nil or negative id selects the
// default run.
func Name(runID *int) string {
	if runID == nil || *runID < 0 {
		return DefaultName
	}
	return fmt.Sprintf("run_%04d", *runID)
}

// Path returns the directory of a run below base.
func Path(base string, runID *int) string {
	return filepath.Join(base, Name(runID))
}

func runIDText(runID *int) string {
	if runID == nil || *runID < 0 {
		return noRunID
	}
	return strconv.Itoa(*runID)
}

func writeRunID(dir string, runID *int) error {
	return os.WriteFile(filepath.Join(dir, RunIDFile), []byte(runIDText(runID)), 0644)
}

// Create makes an empty run directory and records its run id.
func Create(base string, runID *int) (string, error) {
	dir := Path(base, runID)
	if err := os.Mkdir(dir, 0755); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("%w: %s", ErrExists, dir)
		}
		return "", err
	}
	if err := writeRunID(dir, runID); err != nil {
		return "", err
	}
	return dir, nil
}

// Open checks that the run directory exists and belongs to runID.
func Open(base string, runID *int) (string, error) {
	dir := Path(base, runID)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotFound, dir)
	}
	data, err := os.ReadFile(filepath.Join(dir, RunIDFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: run ID file %s", ErrNotFound, filepath.Join(dir, RunIDFile))
		}
		return "", err
	}
	if got := strings.TrimSpace(string(data)); got != runIDText(runID) {
		return "", fmt.Errorf("%w: %s holds %q", ErrRunIDMismatch, dir, got)
	}
	return dir, nil
}

// Clone copies the model setup src into the run directory of runID below
// base. The run id is only recorded for numbered runs.
func Clone(src, base string, runID *int) (string, error) {
	dir := Path(base, runID)
	if _, err := os.Lstat(dir); err == nil {
		return "", fmt.Errorf("%w: %s", ErrExists, dir)
	}
	info, err := os.Stat(src)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("clone directory %s does not exist", src)
	}
	if err := fsutil.CopyTree(src, dir); err != nil {
		return "", fmt.Errorf("failed to clone %s: %w", src, err)
	}
	if runID != nil && *runID >= 0 {
		if err := writeRunID(dir, runID); err != nil {
			os.RemoveAll(dir)
			return "", err
		}
	}
	return dir, nil
}
