package hadcm3

import (
	"math"

	"github.com/vk/modelopt/internal/edit"
	"github.com/vk/modelopt/internal/producer"
	"github.com/zclconf/go-cty/cty"
)

const (
	// topDiffCoeff and topDiffExp are fixed at the model lid.
	topDiffCoeff = 4e06
	topDiffExp   = 1
	// moistureDiffCoeff and moistureDiffExp apply from moistureBandStart up to
	// the level below the lid for the moisture fields.
	moistureDiffCoeff = 1.5e08
	moistureDiffExp   = 2
	moistureBandStart = 13
)

// DiffusionConfig fixes the grid and time stepping the diffusion profile is
// derived for.
type DiffusionConfig struct {
	Levels   int
	DLat     float64 // latitude spacing in degrees
	Radius   float64 // planetary radius in metres
	Timestep float64 // atmosphere timestep in seconds
	Power    int     // order of the horizontal diffusion operator, 4 or 6
}

// DefaultDiffusionConfig returns the standard HadCM3 atmosphere setup.
func DefaultDiffusionConfig(levels int) DiffusionConfig {
	return DiffusionConfig{
		Levels:   levels,
		DLat:     2.5,
		Radius:   6.37123e06,
		Timestep: 1800,
		Power:    6,
	}
}

// Diffusion turns a damping time in hours into per-level horizontal
// diffusion coefficients and exponents.
type Diffusion struct {
	producer.Target
	cfg DiffusionConfig
	d2q float64
}

// NewDiffusion validates cfg.
func NewDiffusion(cfg DiffusionConfig) (*Diffusion, error) {
	if cfg.Power != 4 && cfg.Power != 6 {
		return nil, producer.Configf("invalid diffusion power %d, must be 4 or 6", cfg.Power)
	}
	if cfg.Levels < 2 {
		return nil, producer.Configf("diffusion profile needs at least 2 levels, got %d", cfg.Levels)
	}
	if cfg.DLat <= 0 || cfg.Radius <= 0 || cfg.Timestep <= 0 {
		return nil, producer.Configf("diffusion grid spacing, radius and timestep must be positive")
	}
	dphi := cfg.DLat * math.Pi / 180
	return &Diffusion{
		Target: producer.Target{File: atmosphereControl, Group: "RUNCNST"},
		cfg:    cfg,
		d2q:    0.25 * cfg.Radius * cfg.Radius * dphi * dphi,
	}, nil
}

// Coefficient returns the diffusion coefficient for a damping time in hours.
func (d *Diffusion) Coefficient(hours float64) float64 {
	dampingSteps := hours * 3600 / d.cfg.Timestep
	en := 1 - math.Exp(-1/dampingSteps)
	endt := en / d.cfg.Timestep
	return d.d2q * math.Pow(endt, 1/(0.5*float64(d.cfg.Power)))
}

// Produce implements producer.Producer.
func (d *Diffusion) Produce(value cty.Value) ([]edit.Edit, error) {
	hours, err := producer.Float(value)
	if err != nil {
		return nil, err
	}
	if hours <= 0 {
		return nil, producer.Domainf("diffusion damping time must be positive, got %g", hours)
	}

	n := d.cfg.Levels
	coeff := d.Coefficient(hours)
	exponent := float64(d.cfg.Power) / 2

	diffCoeff := fill(n, coeff)
	diffCoeffQ := fill(n, coeff)
	diffExp := fill(n, exponent)
	diffExpQ := fill(n, exponent)
	for i := moistureBandStart; i < n-1; i++ {
		diffCoeffQ[i] = moistureDiffCoeff
		diffExpQ[i] = moistureDiffExp
	}
	diffCoeff[n-1], diffCoeffQ[n-1] = topDiffCoeff, topDiffCoeff
	diffExp[n-1], diffExpQ[n-1] = topDiffExp, topDiffExp

	return []edit.Edit{
		d.Edit("DIFF_COEFF", producer.NumberList(diffCoeff)),
		d.Edit("DIFF_COEFF_Q", producer.NumberList(diffCoeffQ)),
		d.Edit("DIFF_EXP", producer.NumberList(diffExp)),
		d.Edit("DIFF_EXP_Q", producer.NumberList(diffExpQ)),
	}, nil
}

func fill(n int, v float64) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = v
	}
	return s
}
