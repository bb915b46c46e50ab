// Package dummy provides a small polynomial model used to exercise the
// tooling end to end without a real climate model.
package dummy

import (
	"github.com/vk/modelopt/internal/mapping"
	"github.com/vk/modelopt/internal/namelist"
	"github.com/vk/modelopt/internal/producer"
	"github.com/vk/modelopt/internal/registry"
)

// Name is the registry identifier of the model.
const Name = "DummyModel"

const (
	configFile = "config.nml"
	group      = "POLYNOMIAL"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the dummy mapping.
func (m *Module) Register(r *registry.Registry) {
	r.Register(mapping.Must(NewMapping()), "polynomial test model")
}

// NewMapping builds the dummy parameter table.
func NewMapping() (*mapping.Mapping, error) {
	ab, err := producer.NewFanOut(configFile, group, "a", "b")
	if err != nil {
		return nil, err
	}
	c, err := producer.NewDirect(configFile, group, "c")
	if err != nil {
		return nil, err
	}
	de, err := producer.NewInterpolated(configFile, group, "d", "e", []float64{-10, 0, 10}, []float64{10, 0, -5})
	if err != nil {
		return nil, err
	}
	f, err := producer.NewDirect(configFile, group, "f")
	if err != nil {
		return nil, err
	}
	return mapping.New(Name, namelist.NewPatcher(), mapping.Table{"ab": ab, "c": c, "de": de, "f": f})
}
