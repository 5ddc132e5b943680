package chem

import "math"

// Coefficients weight each perturbation from baseline.
type Coefficients struct {
	Temperature   float64 `json:"temperature" yaml:"temperature"`
	Concentration float64 `json:"concentration" yaml:"concentration"`
	Pressure      float64 `json:"pressure" yaml:"pressure"`
}

func DefaultCoefficients() Coefficients {
	return Coefficients{
		Temperature:   0.5,
		Concentration: 0.5,
		Pressure:      10,
	}
}

// ComputeShift evaluates in against the baseline of r using the default coefficients.
func ComputeShift(in Input, r ReactionType) Result {
	return DefaultCoefficients().ComputeShift(in, r)
}

type accumulator struct {
	shift   float64
	factors []string
}

func (a *accumulator) add(delta float64, factor string) {
	a.shift += delta
	a.factors = append(a.factors, factor)
}

// ComputeShift evaluates in against the baseline of r. The result is clamped
// to [-MaxShift, MaxShift]; Factors is empty (not nil) when nothing applies.
func (c Coefficients) ComputeShift(in Input, r ReactionType) Result {
	base := Baseline(r)
	acc := &accumulator{factors: make([]string, 0, 3)}

	switch r {
	case Exothermic:
		c.heatReleasing(acc, in, base)
		c.concentration(acc, in, base)
	case Endothermic:
		c.heatAbsorbing(acc, in, base)
		c.concentration(acc, in, base)
	case GasPhase:
		c.pressure(acc, in, base)
		c.heatReleasing(acc, in, base)
		c.concentration(acc, in, base)
	case Dissolution:
		c.dissolutionTemperature(acc, in, base)
		c.dissolutionConcentration(acc, in, base)
	}

	shift := math.Max(-MaxShift, math.Min(MaxShift, acc.shift))
	return Result{
		Shift:   shift,
		Status:  Classify(shift),
		Factors: acc.factors,
	}
}

// heatReleasing treats heat as a product.
func (c Coefficients) heatReleasing(acc *accumulator, in, base Input) {
	switch {
	case in.Temperature > base.Temperature:
		acc.add(-(in.Temperature-base.Temperature)*c.Temperature, "Increased Temperature: System consumes excess heat.")
	case in.Temperature < base.Temperature:
		acc.add((base.Temperature-in.Temperature)*c.Temperature, "Decreased Temperature: System produces heat.")
	}
}

// heatAbsorbing treats heat as a reactant.
func (c Coefficients) heatAbsorbing(acc *accumulator, in, base Input) {
	switch {
	case in.Temperature > base.Temperature:
		acc.add((in.Temperature-base.Temperature)*c.Temperature, "Increased Temperature: System consumes heat.")
	case in.Temperature < base.Temperature:
		acc.add(-(base.Temperature-in.Temperature)*c.Temperature, "Decreased Temperature: System produces heat.")
	}
}

func (c Coefficients) pressure(acc *accumulator, in, base Input) {
	switch {
	case in.Pressure > base.Pressure:
		acc.add((in.Pressure-base.Pressure)*c.Pressure, "Increased Pressure: System reduces total moles.")
	case in.Pressure < base.Pressure:
		acc.add(-(base.Pressure-in.Pressure)*c.Pressure, "Decreased Pressure: System increases total moles.")
	}
}

// concentration applies at most one term; reactant excess wins over product excess.
func (c Coefficients) concentration(acc *accumulator, in, base Input) {
	switch {
	case in.ReactantConc > base.ReactantConc:
		acc.add((in.ReactantConc-base.ReactantConc)*c.Concentration, "Increased Reactant Conc.: System consumes reactants.")
	case in.ProductConc > base.ProductConc:
		acc.add(-(in.ProductConc-base.ProductConc)*c.Concentration, "Increased Product Conc.: System consumes products.")
	}
}

func (c Coefficients) dissolutionTemperature(acc *accumulator, in, base Input) {
	switch {
	case in.Temperature > base.Temperature:
		acc.add((in.Temperature-base.Temperature)*c.Temperature, "Increased Temperature: System favors dissolution.")
	case in.Temperature < base.Temperature:
		acc.add(-(base.Temperature-in.Temperature)*c.Temperature, "Decreased Temperature: System favors precipitation.")
	}
}

func (c Coefficients) dissolutionConcentration(acc *accumulator, in, base Input) {
	switch {
	case in.ProductConc > base.ProductConc:
		acc.add(-(in.ProductConc-base.ProductConc)*c.Concentration, "Increased Aqueous Ions: System favors precipitation.")
	case in.ReactantConc > base.ReactantConc:
		acc.add(-(in.ReactantConc-base.ReactantConc)*c.Concentration, "Increased Solid Amount: System has excess solid.")
	case in.ProductConc < base.ProductConc:
		acc.add((base.ProductConc-in.ProductConc)*c.Concentration, "Decreased Aqueous Ions: System favors dissolution.")
	}
}

// ShiftBarPercent maps a shift to the fill width of a 0-100% bar centred on 50%.
func ShiftBarPercent(shift float64) float64 {
	if shift >= -BalancedThreshold && shift <= BalancedThreshold {
		return 50
	}
	return 50 + shift/2
}

// GaugeFraction maps a temperature in [0, 200] °C to a needle position in [0, 1].
func GaugeFraction(temperature float64) float64 {
	return math.Max(0, math.Min(1, temperature/200))
}
