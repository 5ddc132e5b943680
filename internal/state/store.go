// Package state holds the user controlled conditions of the reactor and the
// observation log.
package state

import (
	"fmt"
	"math"

	"github.com/san-kum/equilibria/internal/chem"
)

// Change describes what a mutation touched.
type Change int

const (
	// ChangeNone means the stored values did not change.
	ChangeNone Change = iota
	// ChangeControl means temperature or pressure changed; particles survive.
	ChangeControl
	// ChangeStructure means the reaction or a concentration changed and the
	// particle set must be regenerated.
	ChangeStructure
)

func (c Change) String() string {
	switch c {
	case ChangeControl:
		return "control"
	case ChangeStructure:
		return "structure"
	}
	return "none"
}

// Range is an inclusive slider range.
type Range struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

func (r Range) check(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s: %w", name, ErrInvalidValue)
	}
	if v < r.Min || v > r.Max {
		return fmt.Errorf("%s %.2f not in [%.2f, %.2f]: %w", name, v, r.Min, r.Max, ErrOutOfRange)
	}
	return nil
}

// Limits bound the four controls.
type Limits struct {
	Temperature   Range `yaml:"temperature" json:"temperature"`
	Pressure      Range `yaml:"pressure" json:"pressure"`
	Concentration Range `yaml:"concentration" json:"concentration"`
}

func DefaultLimits() Limits {
	return Limits{
		Temperature:   Range{Min: 0, Max: 200},
		Pressure:      Range{Min: 0.1, Max: 5},
		Concentration: Range{Min: 0, Max: 100},
	}
}

// Check validates every control of in against the limits.
func (l Limits) Check(in chem.Input) error {
	if err := l.Temperature.check("temperature", in.Temperature); err != nil {
		return err
	}
	if err := l.Pressure.check("pressure", in.Pressure); err != nil {
		return err
	}
	if err := l.Concentration.check("reactant", in.ReactantConc); err != nil {
		return err
	}
	return l.Concentration.check("product", in.ProductConc)
}

// SystemState is the full reactor state: controls plus the last calculator output.
type SystemState struct {
	Temperature  float64     `json:"temperature"`
	Pressure     float64     `json:"pressure"`
	ReactantConc float64     `json:"reactant"`
	ProductConc  float64     `json:"product"`
	Shift        float64     `json:"shift"`
	Status       chem.Status `json:"status"`
}

// Input returns the calculator view of the state.
func (s SystemState) Input() chem.Input {
	return chem.Input{
		Temperature:  s.Temperature,
		Pressure:     s.Pressure,
		ReactantConc: s.ReactantConc,
		ProductConc:  s.ProductConc,
	}
}

// Store owns the SystemState and the selected reaction. It is not safe for
// concurrent use.
type Store struct {
	state    SystemState
	reaction chem.ReactionType
	limits   Limits
}

// NewStore starts at the baseline of rt.
func NewStore(rt chem.ReactionType, limits Limits) *Store {
	s := &Store{reaction: rt, limits: limits}
	s.applyBaseline(true)
	return s
}

func (s *Store) State() SystemState          { return s.state }
func (s *Store) Reaction() chem.ReactionType { return s.reaction }
func (s *Store) Limits() Limits              { return s.limits }
func (s *Store) Input() chem.Input           { return s.state.Input() }

// SetResult stores the calculator output for the current controls.
func (s *Store) SetResult(shift float64, st chem.Status) {
	s.state.Shift, s.state.Status = shift, st
}

func (s *Store) SetTemperature(v float64) (Change, error) {
	if err := s.limits.Temperature.check("temperature", v); err != nil {
		return ChangeNone, err
	}
	if s.state.Temperature == v {
		return ChangeNone, nil
	}
	s.state.Temperature = v
	return ChangeControl, nil
}

func (s *Store) SetPressure(v float64) (Change, error) {
	if err := s.limits.Pressure.check("pressure", v); err != nil {
		return ChangeNone, err
	}
	if s.state.Pressure == v {
		return ChangeNone, nil
	}
	s.state.Pressure = v
	return ChangeControl, nil
}

// SetReactantConc sets the reactant share; when the sum would exceed 100 the
// product share becomes 100 - v.
func (s *Store) SetReactantConc(v float64) (Change, error) {
	if err := s.limits.Concentration.check("reactant", v); err != nil {
		return ChangeNone, err
	}
	if s.state.ReactantConc == v {
		return ChangeNone, nil
	}
	s.state.ReactantConc = v
	if v+s.state.ProductConc > 100 {
		s.state.ProductConc = 100 - v
	}
	return ChangeStructure, nil
}

// SetProductConc mirrors SetReactantConc.
func (s *Store) SetProductConc(v float64) (Change, error) {
	if err := s.limits.Concentration.check("product", v); err != nil {
		return ChangeNone, err
	}
	if s.state.ProductConc == v {
		return ChangeNone, nil
	}
	s.state.ProductConc = v
	if s.state.ReactantConc+v > 100 {
		s.state.ReactantConc = 100 - v
	}
	return ChangeStructure, nil
}

// SelectReaction switches reaction, applies its default split and restores
// baseline temperature and pressure.
func (s *Store) SelectReaction(rt chem.ReactionType) Change {
	s.reaction = rt
	s.applyBaseline(true)
	return ChangeStructure
}

// Reset restores 25 °C and 1 atm, and the default split when resetConcentrations is set.
func (s *Store) Reset(resetConcentrations bool) Change {
	s.applyBaseline(resetConcentrations)
	return ChangeStructure
}

func (s *Store) applyBaseline(concentrations bool) {
	base := chem.Baseline(s.reaction)
	s.state.Temperature = base.Temperature
	s.state.Pressure = base.Pressure
	if concentrations {
		s.state.ReactantConc = base.ReactantConc
		s.state.ProductConc = base.ProductConc
	}
}
