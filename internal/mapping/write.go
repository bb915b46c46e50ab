package mapping

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/modelopt/internal/ctxlog"
	"github.com/vk/modelopt/internal/edit"
	"github.com/vk/modelopt/internal/fsutil"
	"github.com/vk/modelopt/internal/producer"
	"github.com/zclconf/go-cty/cty"
)

// WriteReport lists what WriteParams did, by file name relative to the run
// directory.
type WriteReport struct {
	Written []string
	Skipped []string
	Backups map[string]string
}

// WriteParams translates params and patches the affected files inside dir.
// Every existing target is read and patched in memory before the first one
// is replaced, so a value that cannot be rendered leaves dir untouched. Each
// patched file is first moved to its backup name. Files that do not exist
// are skipped with a warning.
//
// An I/O failure while replacing leaves the earlier files updated. A run
// directory must have a single writer.
func (m *Mapping) WriteParams(ctx context.Context, dir string, params map[string]cty.Value) (*WriteReport, error) {
	ctx = ctxlog.With(ctx, "model", m.name)
	logger := ctxlog.FromContext(ctx)

	set, err := m.ProcessParams(ctx, params)
	if err != nil {
		return nil, err
	}

	for _, file := range set.Files() {
		if !filepath.IsLocal(file) {
			return nil, producer.Configf("model %s targets %s outside the model directory", m.name, file)
		}
	}

	report := &WriteReport{Backups: make(map[string]string)}
	pending, err := m.patchAll(ctx, dir, set, report)
	if err != nil {
		return report, err
	}

	usedBackups := make(map[string]string)
	for _, p := range pending {
		path := filepath.Join(dir, p.file)
		suffix := m.patcher.BackupSuffix()
		// two targets such as "data" and "data.seaice" share a swapped name
		if other, clash := usedBackups[fsutil.BackupPath(path, suffix)]; clash && other != path {
			suffix = filepath.Ext(path) + "~"
		}
		backup, err := fsutil.ReplaceWithBackup(path, suffix, p.content)
		if err != nil {
			return report, err
		}
		usedBackups[backup] = path

		rel, _ := filepath.Rel(dir, backup)
		report.Backups[p.file] = rel
		report.Written = append(report.Written, p.file)
		logger.Info("Wrote namelist file.", "file", path, "backup", backup, "keys", countKeys(set[p.file]))
	}
	return report, nil
}

type patchedFile struct {
	file    string
	content []byte
}

// patchAll reads and patches every existing target of set without writing
// anything. Missing files are recorded in report as skipped.
func (m *Mapping) patchAll(ctx context.Context, dir string, set edit.EditSet, report *WriteReport) ([]patchedFile, error) {
	logger := ctxlog.FromContext(ctx)
	var pending []patchedFile
	for _, file := range set.Files() {
		path := filepath.Join(dir, file)
		exists, err := fsutil.Exists(path)
		if err != nil {
			return nil, fmt.Errorf("failed to inspect %s: %w", path, err)
		}
		if !exists {
			logger.Warn("Target file missing, skipping.", "file", path)
			report.Skipped = append(report.Skipped, file)
			continue
		}

		src, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		patched, err := m.patcher.Patch(ctx, src, set[file])
		if err != nil {
			return nil, fmt.Errorf("failed to patch %s: %w", path, err)
		}
		pending = append(pending, patchedFile{file: file, content: patched})
	}
	return pending, nil
}

func countKeys(groups edit.Groups) int {
	n := 0
	for _, keys := range groups {
		n += len(keys)
	}
	return n
}
