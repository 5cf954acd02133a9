package kmc

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Parameters is the engine configuration consumed by Initialize.
type Parameters struct {
	// EnableLogging gates LogMsg output to the log sink.
	EnableLogging bool `yaml:"enable_logging"`
	// Per-axis periodic boundary conditions.
	EnablePeriodicX bool `yaml:"enable_periodic_x"`
	EnablePeriodicY bool `yaml:"enable_periodic_y"`
	EnablePeriodicZ bool `yaml:"enable_periodic_z"`
	// Lattice extents along x, y, z. Site count is the product.
	Length int `yaml:"length"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	// UnitSize is the physical length per lattice unit, in nm.
	UnitSize float64 `yaml:"unit_size"`
	// Temperature in K, passed through to domain rate formulas.
	Temperature float64 `yaml:"temperature"`
	// EnableRecalc turns on event recalculation within RecalcCutoff, a
	// physical radius converted to lattice units via UnitSize.
	EnableRecalc bool    `yaml:"enable_recalc"`
	RecalcCutoff float64 `yaml:"recalc_cutoff"`
	// Logfile is the sink LogMsg appends to. Not read from YAML.
	Logfile io.Writer `yaml:"-"`
}

// Validate checks the parameter set for values the engine cannot run with.
func (p *Parameters) Validate() error {
	if p.Length < 1 || p.Width < 1 || p.Height < 1 {
		return fmt.Errorf("%w: lattice extents must be positive, got %dx%dx%d", ErrInvalidArgument, p.Length, p.Width, p.Height)
	}
	if p.UnitSize <= 0 {
		return fmt.Errorf("%w: unit_size must be positive, got %g", ErrInvalidArgument, p.UnitSize)
	}
	if p.EnableRecalc && p.RecalcCutoff <= 0 {
		return fmt.Errorf("%w: recalc_cutoff must be positive when recalc is enabled, got %g", ErrInvalidArgument, p.RecalcCutoff)
	}
	return nil
}

// LoadParameters reads a parameter file in YAML format.
func LoadParameters(path string) (Parameters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Parameters{}, fmt.Errorf("reading parameter file: %w", err)
	}
	var params Parameters
	if err := yaml.Unmarshal(data, &params); err != nil {
		return Parameters{}, fmt.Errorf("parsing parameter file: %w", err)
	}
	if err := params.Validate(); err != nil {
		return Parameters{}, err
	}
	return params, nil
}
