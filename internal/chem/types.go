package chem

import (
	"fmt"
	"strings"
)

const (
	BaselineTemperature = 25.0
	BaselinePressure    = 1.0

	// MaxShift bounds the shift on both sides.
	MaxShift = 100.0

	// BalancedThreshold is the |shift| below which the system reads as balanced.
	BalancedThreshold = 5.0

	// StrongThreshold is the |shift| above which a shift is reported as strong.
	StrongThreshold = 50.0
)

type ReactionType int

const (
	Exothermic ReactionType = iota
	Endothermic
	GasPhase
	Dissolution
)

var reactionNames = map[ReactionType]string{
	Exothermic:  "exothermic",
	Endothermic: "endothermic",
	GasPhase:    "gas",
	Dissolution: "dissolution",
}

// ReactionTypes lists every reaction in selector order.
func ReactionTypes() []ReactionType {
	return []ReactionType{Exothermic, Endothermic, GasPhase, Dissolution}
}

func (r ReactionType) String() string {
	if name, ok := reactionNames[r]; ok {
		return name
	}
	return fmt.Sprintf("reaction(%d)", int(r))
}

// ParseReactionType accepts the canonical names plus a few aliases
// ("gas_phase", "gasphase", "exo", "endo").
func ParseReactionType(s string) (ReactionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "exothermic", "exo":
		return Exothermic, nil
	case "endothermic", "endo":
		return Endothermic, nil
	case "gas", "gas_phase", "gasphase", "gas-phase":
		return GasPhase, nil
	case "dissolution", "solubility":
		return Dissolution, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownReaction, s)
}

func (r ReactionType) MarshalText() ([]byte, error) {
	if _, ok := reactionNames[r]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownReaction, int(r))
	}
	return []byte(r.String()), nil
}

func (r *ReactionType) UnmarshalText(text []byte) error {
	parsed, err := ParseReactionType(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// DefaultSplit returns the equilibrium reactant and product concentrations.
// For dissolution these are the undissolved solid and dissolved ion shares.
func (r ReactionType) DefaultSplit() (reactant, product float64) {
	if r == Dissolution {
		return 70, 30
	}
	return 50, 50
}

// Equation returns a plain-text rendering of the reaction.
func (r ReactionType) Equation() string {
	switch r {
	case Exothermic:
		return "A(aq) + B(aq) <=> C(aq) + Heat"
	case Endothermic:
		return "A(aq) + B(aq) + Heat <=> C(aq)"
	case GasPhase:
		return "2A(g) <=> B(g)"
	case Dissolution:
		return "Solid <=> Aqueous Ions"
	}
	return ""
}

// SpeciesNames returns display names for the left and right hand sides.
func (r ReactionType) SpeciesNames() (left, right string) {
	if r == Dissolution {
		return "solid", "aqueous"
	}
	return "reactant", "product"
}

// Input is the set of conditions the calculator reads.
type Input struct {
	Temperature  float64 `json:"temperature" yaml:"temperature"`
	Pressure     float64 `json:"pressure" yaml:"pressure"`
	ReactantConc float64 `json:"reactant" yaml:"reactant"`
	ProductConc  float64 `json:"product" yaml:"product"`
}

// Baseline returns the equilibrium conditions for a reaction type.
func Baseline(r ReactionType) Input {
	reactant, product := r.DefaultSplit()
	return Input{
		Temperature:  BaselineTemperature,
		Pressure:     BaselinePressure,
		ReactantConc: reactant,
		ProductConc:  product,
	}
}

// Result is the calculator output.
type Result struct {
	Shift   float64  `json:"shift"`
	Status  Status   `json:"status"`
	Factors []string `json:"factors"`
}
