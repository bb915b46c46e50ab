// Package hadcm3 maps tuning parameters onto the namelists of the HadCM3
// coupled climate model: atmosphere physics in CNTLATM, run identity in
// CNTLALL/CONTCNTL/INITHIS and sea ice and ocean mixing in CNTLOCN.
package hadcm3

import (
	"fmt"

	"github.com/vk/modelopt/internal/mapping"
	"github.com/vk/modelopt/internal/namelist"
	"github.com/vk/modelopt/internal/producer"
	"github.com/vk/modelopt/internal/registry"
)

// Name is the registry identifier of the model.
const Name = "HadCM3"

// Levels is the number of atmosphere levels of the standard configuration.
const Levels = 19

const (
	atmosphereControl = "CNTLATM"
	oceanControl      = "CNTLOCN"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the HadCM3 mapping.
func (m *Module) Register(r *registry.Registry) {
	r.Register(mapping.Must(NewMapping(Levels)), "HadCM3 coupled atmosphere-ocean model")
}

// NewMapping builds the HadCM3 parameter table for an atmosphere with the
// given number of levels.
func NewMapping(levels int) (*mapping.Mapping, error) {
	table := mapping.Table{
		"sphIce":  NewSphIce(),
		"runName": NewRunName(),
	}
	builders := []struct {
		name  string
		build func() (producer.Producer, error)
	}{
		{"gravityWave", func() (producer.Producer, error) {
			return producer.NewInterpolated(atmosphereControl, "RUNCNST", "KAY_GWAVE", "KAY_LEE_GWAVE",
				[]float64{1e04, 1.5e04, 2e04}, []float64{1.5e05, 2.25e05, 3e05})
		}},
		{"iceAlbedo", func() (producer.Producer, error) {
			return producer.NewInterpolated(atmosphereControl, "RUNCNST", "ALPHAM", "DTICE",
				[]float64{0.5, 0.57, 0.65}, []float64{10, 5, 2})
		}},
		{"cloudWater", func() (producer.Producer, error) {
			return producer.NewInterpolated(atmosphereControl, "RUNCNST", "CW_LAND", "CW_SEA",
				[]float64{1e-04, 2e-04, 2e-03}, []float64{2e-05, 5e-05, 5e-04})
		}},
		{"cloudRHcrit", func() (producer.Producer, error) { return NewCloudRHCrit(levels) }},
		{"cloudEACF", func() (producer.Producer, error) { return NewCloudEACF(levels) }},
		{"diffusion", func() (producer.Producer, error) { return NewDiffusion(DefaultDiffusionConfig(levels)) }},
		{"iceDiff", func() (producer.Producer, error) {
			return producer.NewFanOut(oceanControl, "SEAICENL", "EDDYDIFFN", "EDDYDIFFS")
		}},
		{"iceMaxConc", func() (producer.Producer, error) {
			return producer.NewFanOut(oceanControl, "SEAICENL", "AMXNORTH", "AMXSOUTH")
		}},
		{"ocnIsoDiff", func() (producer.Producer, error) {
			return producer.NewFanOut(oceanControl, "EDDY", "AM0_SI", "AM1_SI")
		}},
	}
	for _, b := range builders {
		p, err := b.build()
		if err != nil {
			return nil, fmt.Errorf("building %s parameter %q: %w", Name, b.name, err)
		}
		table[b.name] = p
	}
	return mapping.New(Name, namelist.NewPatcher(), table)
}
