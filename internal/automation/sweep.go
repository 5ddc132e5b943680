package automation

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/equilibria/internal/chem"
	"github.com/san-kum/equilibria/internal/state"
)

var ErrUnknownControl = errors.New("automation: unknown control")

// Controls lists the names accepted by Sweep and GridSearch.
var Controls = []string{"temperature", "pressure", "reactant", "product"}

// Sweep evaluates the calculator while one control moves from Min to Max.
// The other controls stay at Base, or the reaction's baseline when Base is nil.
type Sweep struct {
	Reaction     chem.ReactionType
	Control      string
	Min, Max     float64
	Steps        int
	Base         *chem.Input
	Coefficients *chem.Coefficients // nil selects chem.DefaultCoefficients
}

type SweepPoint struct {
	Value   float64     `json:"value"`
	Input   chem.Input  `json:"input"`
	Shift   float64     `json:"shift"`
	Status  chem.Status `json:"status"`
	Factors []string    `json:"factors"`
}

func RunSweep(sw Sweep) ([]SweepPoint, error) {
	if sw.Steps < 2 {
		return nil, fmt.Errorf("automation: sweep needs at least 2 steps, got %d", sw.Steps)
	}
	coeffs := chem.DefaultCoefficients()
	if sw.Coefficients != nil {
		coeffs = *sw.Coefficients
	}

	step := (sw.Max - sw.Min) / float64(sw.Steps-1)
	points := make([]SweepPoint, 0, sw.Steps)
	for i := 0; i < sw.Steps; i++ {
		v := sw.Min + float64(i)*step
		if i == sw.Steps-1 {
			v = sw.Max
		}

		in, err := controlsAt(sw.Reaction, sw.Base, map[string]float64{sw.Control: v})
		if err != nil {
			return nil, fmt.Errorf("sweep %s=%.3f: %w", sw.Control, v, err)
		}
		res := coeffs.ComputeShift(in, sw.Reaction)
		points = append(points, SweepPoint{
			Value:   v,
			Input:   in,
			Shift:   res.Shift,
			Status:  res.Status,
			Factors: res.Factors,
		})
	}
	return points, nil
}

// controlsAt builds a store at base and applies overrides through its
// setters so range checks and the concentration invariant hold.
func controlsAt(rt chem.ReactionType, base *chem.Input, overrides map[string]float64) (chem.Input, error) {
	for name := range overrides {
		if !isControl(name) {
			return chem.Input{}, fmt.Errorf("%w %q", ErrUnknownControl, name)
		}
	}

	st := state.NewStore(rt, state.DefaultLimits())
	if base != nil {
		for _, name := range Controls {
			if err := setControl(st, name, inputValue(*base, name)); err != nil {
				return chem.Input{}, err
			}
		}
	}
	for _, name := range Controls {
		v, ok := overrides[name]
		if !ok {
			continue
		}
		if err := setControl(st, name, v); err != nil {
			return chem.Input{}, err
		}
	}
	return st.Input(), nil
}

func setControl(st *state.Store, name string, v float64) error {
	var err error
	switch name {
	case "temperature":
		_, err = st.SetTemperature(v)
	case "pressure":
		_, err = st.SetPressure(v)
	case "reactant":
		_, err = st.SetReactantConc(v)
	case "product":
		_, err = st.SetProductConc(v)
	default:
		err = fmt.Errorf("%w %q", ErrUnknownControl, name)
	}
	return err
}

func inputValue(in chem.Input, name string) float64 {
	switch name {
	case "temperature":
		return in.Temperature
	case "pressure":
		return in.Pressure
	case "reactant":
		return in.ReactantConc
	case "product":
		return in.ProductConc
	}
	return math.NaN()
}

func isControl(name string) bool {
	for _, c := range Controls {
		if c == name {
			return true
		}
	}
	return false
}
