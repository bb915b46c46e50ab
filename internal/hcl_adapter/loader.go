// Package hcl_adapter loads user supplied model mappings written in HCL and
// translates them into registry models.
package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/modelopt/internal/ctxlog"
	"github.com/vk/modelopt/internal/fsutil"
	"github.com/vk/modelopt/internal/registry"
	"github.com/vk/modelopt/internal/schema"
)

// Loader reads mapping files.
type Loader struct{}

// NewLoader creates a new HCL mapping loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file found under paths and returns the models they
// declare, in file order. Paths may name files or directories; directories
// are searched recursively and missing paths are ignored.
func (l *Loader) Load(ctx context.Context, paths ...string) ([]*registry.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL mapping loader started.", "path_count", len(paths))

	files, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered mapping files.", "count", len(files))

	parser := hclparse.NewParser()
	var models []*registry.Model
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root schema.MappingFile
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, block := range root.Models {
			model, err := l.translateModel(ctx, block)
			if err != nil {
				return nil, fmt.Errorf("in %s: %w", file, err)
			}
			model.Source = file
			models = append(models, model)
		}
	}

	logger.Debug("HCL mapping loading complete.", "models", len(models))
	return models, nil
}

// findAllHCLFiles walks all given paths and returns a flat list of all .hcl
// files found, without duplicates.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})
	for _, path := range paths {
		found, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			if _, wasSeen := seen[f]; !wasSeen {
				allFiles = append(allFiles, f)
				seen[f] = struct{}{}
			}
		}
	}
	return allFiles, nil
}
