// Package mitgcm maps tuning parameters onto the MITgcm "data" namelist
// files.
package mitgcm

import (
	"github.com/vk/modelopt/internal/mapping"
	"github.com/vk/modelopt/internal/namelist"
	"github.com/vk/modelopt/internal/producer"
	"github.com/vk/modelopt/internal/registry"
)

// Name is the registry identifier of the model.
const Name = "MITgcm"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the MITgcm mapping.
func (m *Module) Register(r *registry.Registry) {
	r.Register(mapping.Must(NewMapping()), "MIT general circulation model")
}

// NewMapping builds the MITgcm parameter table.
func NewMapping() (*mapping.Mapping, error) {
	gravity, err := producer.NewDirect("data", "PARM01", "gravity")
	if err != nil {
		return nil, err
	}
	strength, err := producer.NewDirect("data.seaice", "SEAICE_PARM01", "SEAICE_STRENGTH")
	if err != nil {
		return nil, err
	}
	return mapping.New(Name, namelist.NewPatcher(), mapping.Table{
		"gravity":         gravity,
		"seaice_strength": strength,
	})
}
