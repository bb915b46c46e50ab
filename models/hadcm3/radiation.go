package hadcm3

import (
	"github.com/vk/modelopt/internal/edit"
	"github.com/vk/modelopt/internal/producer"
	"github.com/zclconf/go-cty/cty"
)

type iceOptic struct {
	key   string
	value int64
}

var (
	sphericalIce = []iceOptic{
		{"I_CNV_ICE_LW", 1},
		{"I_ST_ICE_LW", 1},
		{"I_CNV_ICE_SW", 3},
		{"I_ST_ICE_SW", 2},
	}
	nonSphericalIce = []iceOptic{
		{"I_CNV_ICE_LW", 7},
		{"I_ST_ICE_LW", 7},
		{"I_CNV_ICE_SW", 7},
		{"I_ST_ICE_SW", 7},
	}
)

// SphIce selects the ice crystal optical property schemes: spherical ice
// when the value is true, aggregate crystals otherwise.
type SphIce struct {
	producer.Target
}

// NewSphIce returns the ice optics selector.
func NewSphIce() *SphIce {
	return &SphIce{Target: producer.Target{File: atmosphereControl, Group: "R2LWCLNL"}}
}

// Produce implements producer.Producer.
func (s *SphIce) Produce(value cty.Value) ([]edit.Edit, error) {
	spherical, err := producer.Bool(value)
	if err != nil {
		return nil, err
	}
	optics := nonSphericalIce
	if spherical {
		optics = sphericalIce
	}
	edits := make([]edit.Edit, 0, len(optics))
	for _, o := range optics {
		edits = append(edits, s.Edit(o.key, cty.NumberIntVal(o.value)))
	}
	return edits, nil
}
