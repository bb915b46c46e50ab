package registry

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vk/modelopt/internal/ctxlog"
)

// Validate checks every registered model for mistakes that would only show
// up while writing a run directory: models without parameters, and target
// file paths that escape the run directory.
func (r *Registry) Validate(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, model := range r.Models() {
		params := model.Mapping.Parameters()
		if len(params) == 0 {
			logger.Warn("Model maps no parameters.", "model", model.Name(), "source", model.Source)
			continue
		}
		for _, files := range model.Files() {
			for _, file := range files {
				if !filepath.IsLocal(file) {
					errs = append(errs, fmt.Sprintf("model '%s': target file '%s' must be relative to the run directory", model.Name(), file))
				}
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
