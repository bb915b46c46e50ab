package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/modelopt/internal/ctxlog"
	"github.com/vk/modelopt/internal/edit"
	"github.com/vk/modelopt/internal/mapping"
	"github.com/vk/modelopt/internal/namelist"
	"github.com/vk/modelopt/internal/params"
	"github.com/vk/modelopt/internal/rundir"
	"github.com/zclconf/go-cty/cty"
)

func (a *App) load(modelType, paramsPath string) (*mapping.Mapping, map[string]cty.Value, error) {
	model, err := a.registry.Lookup(modelType)
	if err != nil {
		return nil, nil, err
	}
	values, err := params.Load(paramsPath)
	if err != nil {
		return nil, nil, err
	}
	return model.Mapping, values, nil
}

// Write applies the parameters in paramsPath to the model directory dir.
func (a *App) Write(ctx context.Context, modelType, dir, paramsPath string) (*mapping.WriteReport, error) {
	ctx = a.withLogger(ctx)
	m, values, err := a.load(modelType, paramsPath)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("Writing parameters.", "model", modelType, "dir", dir, "count", len(values))
	return m.WriteParams(ctx, dir, values)
}

// Show prints the edits the parameters in paramsPath translate to, grouped
// by file and namelist group, without touching any file.
func (a *App) Show(ctx context.Context, modelType, paramsPath string) error {
	ctx = a.withLogger(ctx)
	m, values, err := a.load(modelType, paramsPath)
	if err != nil {
		return err
	}
	set, err := m.ProcessParams(ctx, values)
	if err != nil {
		return err
	}
	return a.printEdits(set)
}

func (a *App) printEdits(set edit.EditSet) error {
	var b strings.Builder
	for _, file := range set.Files() {
		fmt.Fprintf(&b, "# %s\n", file)
		groups := set[file]
		for _, group := range groups.Names() {
			fmt.Fprintf(&b, "&%s\n", group)
			for _, key := range groups.Keys(group) {
				text, err := namelist.FormatValue(groups[group][key], namelist.KindUnknown)
				if err != nil {
					return fmt.Errorf("%s %s %s: %w", file, group, key, err)
				}
				fmt.Fprintf(&b, "  %s = %s\n", key, text)
			}
			b.WriteString("/\n")
		}
	}
	_, err := fmt.Fprint(a.outW, b.String())
	return err
}

// ConfigureOptions selects the run directory to set up.
type ConfigureOptions struct {
	BaseDir    string // study directory holding the run directories
	Clone      string // model setup copied into the new run directory
	RunID      *int   // nil for the default run
	ModelType  string
	ParamsPath string
}

// Configure clones a model setup into a fresh run directory, applies the
// parameters to it and prints the directory.
func (a *App) Configure(ctx context.Context, opts ConfigureOptions) (string, error) {
	ctx = a.withLogger(ctx)
	logger := ctxlog.FromContext(ctx)

	m, values, err := a.load(opts.ModelType, opts.ParamsPath)
	if err != nil {
		return "", err
	}
	// translate first so a bad parameter leaves no directory behind
	if _, err := m.ProcessParams(ctx, values); err != nil {
		return "", err
	}

	dir, err := rundir.Clone(opts.Clone, opts.BaseDir, opts.RunID)
	if err != nil {
		return "", err
	}
	logger.Info("Cloned model setup.", "from", opts.Clone, "to", dir)

	if _, err := m.WriteParams(ctx, dir, values); err != nil {
		return dir, err
	}
	_, err = fmt.Fprintln(a.outW, dir)
	return dir, err
}

// Locate prints the run directory of runID below base, creating it when
// create is set.
func (a *App) Locate(ctx context.Context, base string, runID *int, create bool) (string, error) {
	ctx = a.withLogger(ctx)
	var (
		dir string
		err error
	)
	if create {
		dir, err = rundir.Create(base, runID)
	} else {
		dir, err = rundir.Open(base, runID)
	}
	if err != nil {
		return "", err
	}
	ctxlog.FromContext(ctx).Debug("Located run directory.", "dir", dir, "created", create)
	_, err = fmt.Fprintln(a.outW, dir)
	return dir, err
}

// ListModels prints every registered model with its parameters.
func (a *App) ListModels() error {
	var b strings.Builder
	for _, m := range a.registry.Models() {
		fmt.Fprintf(&b, "%s\t%s\n", m.Name(), m.Description)
		if m.Source != "" {
			fmt.Fprintf(&b, "  source: %s\n", m.Source)
		}
		files := m.Files()
		for _, p := range m.Mapping.Parameters() {
			if targets := files[p]; len(targets) > 0 {
				fmt.Fprintf(&b, "  %s -> %s\n", p, strings.Join(targets, ", "))
			} else {
				fmt.Fprintf(&b, "  %s\n", p)
			}
		}
	}
	_, err := fmt.Fprint(a.outW, b.String())
	return err
}
