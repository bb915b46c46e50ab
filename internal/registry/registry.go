package registry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vk/modelopt/internal/mapping"
	"github.com/vk/modelopt/internal/producer"
)

// Module is the interface that all built-in models must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Model is one registered target model.
type Model struct {
	Mapping     *mapping.Mapping
	Description string
	// Source is "builtin" or the mapping file the model was loaded from.
	Source string
}

// Name returns the model identifier.
func (m *Model) Name() string { return m.Mapping.Name() }

// Registry holds all models known to a single application instance.
type Registry struct {
	models map[string]*Model
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{models: make(map[string]*Model)}
}

// Add registers model, rejecting duplicates and models without a mapping.
func (r *Registry) Add(model *Model) error {
	if model == nil || model.Mapping == nil {
		return producer.Configf("model has no mapping")
	}
	name := model.Name()
	if existing, exists := r.models[name]; exists {
		return producer.Configf("model '%s' from %s already registered from %s", name, model.Source, existing.Source)
	}
	r.models[name] = model
	return nil
}

// Register adds a built-in model. Built-in tables are fixed at compile time,
// so a duplicate is a programming error and panics.
func (r *Registry) Register(m *mapping.Mapping, description string) {
	if err := r.Add(&Model{Mapping: m, Description: description, Source: "builtin"}); err != nil {
		panic(err)
	}
}

// Lookup returns the model registered under name.
func (r *Registry) Lookup(name string) (*Model, error) {
	model, ok := r.models[name]
	if !ok {
		return nil, producer.Configf("unknown model type '%s' (known: %s)", name, strings.Join(r.Names(), ", "))
	}
	return model, nil
}

// Names returns all registered model identifiers in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Models returns all registered models sorted by name.
func (r *Registry) Models() []*Model {
	models := make([]*Model, 0, len(r.models))
	for _, name := range r.Names() {
		models = append(models, r.models[name])
	}
	return models
}

// Files returns, per parameter, the files its producer writes to. Producers
// that cannot report their targets are omitted.
func (m *Model) Files() map[string][]string {
	files := make(map[string][]string)
	for _, name := range m.Mapping.Parameters() {
		p, _ := m.Mapping.Producer(name)
		t, ok := p.(producer.Targeter)
		if !ok {
			continue
		}
		for _, target := range t.Targets() {
			files[name] = append(files[name], target.File)
		}
	}
	return files
}

func (m *Model) String() string {
	return fmt.Sprintf("%s (%s)", m.Name(), m.Source)
}
