// Package ukesm maps tuning parameters onto the UK Earth System Model, whose
// namelists live as sections of the Rose suite configuration
// app/um/rose-app.conf.
package ukesm

import (
	"github.com/vk/modelopt/internal/mapping"
	"github.com/vk/modelopt/internal/producer"
	"github.com/vk/modelopt/internal/registry"
	"github.com/vk/modelopt/internal/roseconf"
)

// Name is the registry identifier of the model.
const Name = "UKESM"

// ConfigFile is the Rose application configuration of the atmosphere, relative
// to the model directory.
const ConfigFile = "app/um/rose-app.conf"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the UKESM mapping.
func (m *Module) Register(r *registry.Registry) {
	r.Register(mapping.Must(NewMapping()), "UK Earth System Model (Rose suite)")
}

// NewMapping builds the UKESM parameter table.
func NewMapping() (*mapping.Mapping, error) {
	table := make(mapping.Table)
	for _, key := range []string{"iau_nontrop_max_p", "diagcloud_qn_compregimelimit"} {
		p, err := producer.NewDirect(ConfigFile, "iau_nl", key)
		if err != nil {
			return nil, err
		}
		table[key] = p
	}
	return mapping.New(Name, roseconf.NewPatcher(), table)
}
