package hadcm3

import (
	"math"

	"github.com/vk/modelopt/internal/edit"
	"github.com/vk/modelopt/internal/producer"
	"github.com/zclconf/go-cty/cty"
)

// rhcritFloor holds the minimum critical relative humidity of the lowest
// model levels.
var rhcritFloor = []float64{0.95, 0.90, 0.85}

// CloudRHCrit expands a critical relative humidity into a per-level profile.
type CloudRHCrit struct {
	producer.Target
	levels int
}

// NewCloudRHCrit returns a producer for a profile of the given depth.
func NewCloudRHCrit(levels int) (*CloudRHCrit, error) {
	if levels < len(rhcritFloor) {
		return nil, producer.Configf("RHCRIT profile needs at least %d levels, got %d", len(rhcritFloor), levels)
	}
	return &CloudRHCrit{
		Target: producer.Target{File: atmosphereControl, Group: "RUNCNST"},
		levels: levels,
	}, nil
}

// Profile returns the RHCRIT values for base.
func (c *CloudRHCrit) Profile(base float64) []float64 {
	profile := fill(c.levels, base)
	for i, floor := range rhcritFloor {
		profile[i] = math.Max(floor, base)
	}
	return profile
}

// Produce implements producer.Producer.
func (c *CloudRHCrit) Produce(value cty.Value) ([]edit.Edit, error) {
	base, err := producer.Float(value)
	if err != nil {
		return nil, err
	}
	return []edit.Edit{c.Edit("RHCRIT", producer.NumberList(c.Profile(base)))}, nil
}

const (
	eacfMin        = 0.5
	eacfBaseLevels = 5
)

// CloudEACF builds the empirically adjusted cloud fraction profile: the base
// value near the surface, blending into a value interpolated from it aloft.
type CloudEACF struct {
	producer.Target
	levels int
	table  *producer.Interpolator
}

// NewCloudEACF returns a producer for a profile of the given depth.
func NewCloudEACF(levels int) (*CloudEACF, error) {
	if levels < eacfBaseLevels+2 {
		return nil, producer.Configf("EACF profile needs at least %d levels, got %d", eacfBaseLevels+2, levels)
	}
	table, err := producer.NewInterpolator([]float64{0.5, 0.7, 0.8}, []float64{0.5, 0.6, 0.65})
	if err != nil {
		return nil, err
	}
	return &CloudEACF{
		Target: producer.Target{File: atmosphereControl, Group: "SLBC21"},
		levels: levels,
		table:  table,
	}, nil
}

// Profile returns the EACF values for base.
func (c *CloudEACF) Profile(base float64) ([]float64, error) {
	if base < eacfMin {
		return nil, producer.Domainf("EACF must be at least %g, but got %g", eacfMin, base)
	}
	aloft, err := c.table.At(base)
	if err != nil {
		return nil, err
	}
	profile := fill(c.levels, aloft)
	for i := 0; i < eacfBaseLevels; i++ {
		profile[i] = base
	}
	profile[eacfBaseLevels] = (2*base + aloft) / 3
	profile[eacfBaseLevels+1] = (base + 2*aloft) / 3
	return profile, nil
}

// Produce implements producer.Producer.
func (c *CloudEACF) Produce(value cty.Value) ([]edit.Edit, error) {
	base, err := producer.Float(value)
	if err != nil {
		return nil, err
	}
	profile, err := c.Profile(base)
	if err != nil {
		return nil, err
	}
	return []edit.Edit{c.Edit("EACF", producer.NumberList(profile))}, nil
}
