// This file translates the HCL schema structs into mappings with concrete
// producers.

package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/vk/modelopt/internal/ctxlog"
	"github.com/vk/modelopt/internal/mapping"
	"github.com/vk/modelopt/internal/namelist"
	"github.com/vk/modelopt/internal/producer"
	"github.com/vk/modelopt/internal/registry"
	"github.com/vk/modelopt/internal/roseconf"
	"github.com/vk/modelopt/internal/schema"
)

const (
	// FormatNamelist selects the Fortran namelist patcher. It is the default.
	FormatNamelist = "namelist"
	// FormatRose selects the Rose configuration patcher.
	FormatRose = "rose"
)

// patcherFor returns the patcher serving format.
func patcherFor(format string) (mapping.Patcher, error) {
	switch format {
	case "", FormatNamelist:
		return namelist.NewPatcher(), nil
	case FormatRose:
		return roseconf.NewPatcher(), nil
	}
	return nil, producer.Configf("unknown file format %q, expected %q or %q", format, FormatNamelist, FormatRose)
}

// translateModel converts a model block into a registry model.
func (l *Loader) translateModel(ctx context.Context, m *schema.Model) (*registry.Model, error) {
	logger := ctxlog.FromContext(ctx).With("model", m.Name)
	logger.Debug("Translating HCL model to mapping.", "parameters", len(m.Parameters))

	patcher, err := patcherFor(m.Format)
	if err != nil {
		return nil, fmt.Errorf("model '%s': %w", m.Name, err)
	}

	table := make(mapping.Table, len(m.Parameters))
	for _, p := range m.Parameters {
		if _, dup := table[p.Name]; dup {
			return nil, producer.Configf("model '%s' declares parameter '%s' more than once", m.Name, p.Name)
		}
		prod, err := translateParameter(p)
		if err != nil {
			return nil, fmt.Errorf("model '%s', parameter '%s': %w", m.Name, p.Name, err)
		}
		table[p.Name] = prod
	}

	mm, err := mapping.New(m.Name, patcher, table)
	if err != nil {
		return nil, err
	}
	return &registry.Model{Mapping: mm, Description: m.Description}, nil
}

// translateParameter builds the producer of the single producer block set on p.
func translateParameter(p *schema.Parameter) (producer.Producer, error) {
	set := 0
	for _, present := range []bool{p.Direct != nil, p.FanOut != nil, p.Interpolated != nil} {
		if present {
			set++
		}
	}
	if set != 1 {
		return nil, producer.Configf("expected exactly one of direct, fanout or interpolated, found %d", set)
	}

	switch {
	case p.Direct != nil:
		d := p.Direct
		return producer.NewDirect(d.File, d.Group, d.Key)
	case p.FanOut != nil:
		f := p.FanOut
		return producer.NewFanOut(f.File, f.Group, f.Keys...)
	default:
		i := p.Interpolated
		return producer.NewInterpolated(i.File, i.Group, i.Key, i.DerivedKey, i.Xs, i.Ys)
	}
}
