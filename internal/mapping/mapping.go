package mapping

import (
	"context"
	"sort"

	"github.com/vk/modelopt/internal/ctxlog"
	"github.com/vk/modelopt/internal/edit"
	"github.com/vk/modelopt/internal/producer"
	"github.com/zclconf/go-cty/cty"
)

// Patcher applies the edits for one file to its current content. It is the
// boundary to the file format.
type Patcher interface {
	Patch(ctx context.Context, src []byte, groups edit.Groups) ([]byte, error)
	// BackupSuffix replaces the file extension when the original is kept.
	BackupSuffix() string
}

// Table maps parameter names to their producers.
type Table map[string]producer.Producer

type target struct {
	file, group, key string
}

// Mapping is the immutable parameter table of one target model.
type Mapping struct {
	name    string
	table   Table
	patcher Patcher
}

// New validates and copies table.
func New(name string, patcher Patcher, table Table) (*Mapping, error) {
	if name == "" {
		return nil, producer.Configf("model mapping needs a name")
	}
	if patcher == nil {
		return nil, producer.Configf("model %s has no patcher", name)
	}
	copied := make(Table, len(table))
	for param, p := range table {
		if param == "" {
			return nil, producer.Configf("model %s maps an empty parameter name", name)
		}
		if p == nil {
			return nil, producer.Configf("model %s: parameter %s has no producer", name, param)
		}
		copied[param] = p
	}
	return &Mapping{name: name, table: copied, patcher: patcher}, nil
}

// Must is like New but panics on error. It is meant for built-in tables.
func Must(m *Mapping, err error) *Mapping {
	if err != nil {
		panic(err)
	}
	return m
}

// Name returns the model name.
func (m *Mapping) Name() string { return m.name }

// Patcher returns the file-format patcher used by WriteParams.
func (m *Mapping) Patcher() Patcher { return m.patcher }

// Parameters returns the mapped parameter names in sorted order.
func (m *Mapping) Parameters() []string {
	names := make([]string, 0, len(m.table))
	for name := range m.table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Producer returns the producer bound to name.
func (m *Mapping) Producer(name string) (producer.Producer, bool) {
	p, ok := m.table[name]
	return p, ok
}

// ProcessParams translates params into an EditSet. All names are checked
// before any producer runs. Parameters are translated in sorted name order,
// so if two of them target the same key the one sorting last wins.
func (m *Mapping) ProcessParams(ctx context.Context, params map[string]cty.Value) (edit.EditSet, error) {
	logger := ctxlog.FromContext(ctx)

	names := make([]string, 0, len(params))
	var unknown []string
	for name := range params {
		if _, ok := m.table[name]; !ok {
			unknown = append(unknown, name)
		}
		names = append(names, name)
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, &UnknownParameterError{Model: m.name, Names: unknown}
	}
	sort.Strings(names)

	set := make(edit.EditSet)
	owner := make(map[target]string)
	for _, name := range names {
		edits, err := m.table[name].Produce(params[name])
		if err != nil {
			return nil, &ParameterError{Name: name, Err: err}
		}
		for _, e := range edits {
			t := target{file: e.File, group: e.Group, key: e.Key}
			if set.Add(e) {
				logger.Warn("Parameter overwrites a key set by another parameter.",
					"parameter", name, "previous", owner[t], "file", e.File, "group", e.Group, "key", e.Key)
			}
			owner[t] = name
		}
		logger.Debug("Translated parameter.", "parameter", name, "edits", len(edits))
	}
	return set, nil
}
