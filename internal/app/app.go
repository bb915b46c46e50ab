package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/modelopt/internal/ctxlog"
	"github.com/vk/modelopt/internal/hcl_adapter"
	"github.com/vk/modelopt/internal/registry"
)

// App encapsulates the application's dependencies and configuration.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
}

// NewApp is the constructor for the main application. Results go to outW and
// logs to logW. The registry holds the built-in models, or modules when
// given, plus every model found under cfg.MappingsPath.
func NewApp(outW, logW io.Writer, cfg *Config, modules ...registry.Module) (*App, error) {
	logger := newLogger(cfg, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.", "level", cfg.LogLevel, "format", cfg.LogFormat)

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All Go modules registered.", "count", len(modules))

	if cfg.MappingsPath != "" {
		models, err := hcl_adapter.NewLoader().Load(ctx, cfg.MappingsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load model mappings: %w", err)
		}
		for _, m := range models {
			if err := reg.Add(m); err != nil {
				return nil, err
			}
		}
		logger.Debug("Model mappings loaded.", "path", cfg.MappingsPath, "count", len(models))
	}

	for _, m := range reg.Models() {
		logger.Debug("Registered model.", "name", m.Name(), "source", m.Source, "parameters", len(m.Mapping.Parameters()))
	}
	if err := reg.Validate(ctx); err != nil {
		return nil, err
	}
	logger.Debug("Registry validation passed.")

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
	}, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

func (a *App) withLogger(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
