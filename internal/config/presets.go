package config

import (
	"sort"

	"github.com/san-kum/equilibria/internal/chem"
)

// Preset overrides the controls of a reaction's baseline.
type Preset struct {
	Description string
	Controls    chem.Input
}

var Presets = map[string]map[string]Preset{
	"exothermic": {
		"baseline": {"At equilibrium", chem.Input{Temperature: 25, Pressure: 1, ReactantConc: 50, ProductConc: 50}},
		"heated":   {"Heat pushes the equilibrium left", chem.Input{Temperature: 75, Pressure: 1, ReactantConc: 50, ProductConc: 50}},
		"chilled":  {"Cooling favours the products", chem.Input{Temperature: 0, Pressure: 1, ReactantConc: 50, ProductConc: 50}},
		"flooded":  {"Excess reactant drives the forward reaction", chem.Input{Temperature: 25, Pressure: 1, ReactantConc: 90, ProductConc: 10}},
	},
	"endothermic": {
		"baseline": {"At equilibrium", chem.Input{Temperature: 25, Pressure: 1, ReactantConc: 50, ProductConc: 50}},
		"heated":   {"Heat is consumed by the forward reaction", chem.Input{Temperature: 125, Pressure: 1, ReactantConc: 50, ProductConc: 50}},
		"chilled":  {"Cooling favours the reactants", chem.Input{Temperature: 5, Pressure: 1, ReactantConc: 50, ProductConc: 50}},
	},
	"gas": {
		"baseline":   {"At equilibrium", chem.Input{Temperature: 25, Pressure: 1, ReactantConc: 50, ProductConc: 50}},
		"compressed": {"Higher pressure favours fewer moles", chem.Input{Temperature: 25, Pressure: 3, ReactantConc: 50, ProductConc: 50}},
		"expanded":   {"Lower pressure favours more moles", chem.Input{Temperature: 25, Pressure: 0.2, ReactantConc: 50, ProductConc: 50}},
		"extreme":    {"Compressed and heated at once", chem.Input{Temperature: 150, Pressure: 5, ReactantConc: 50, ProductConc: 50}},
	},
	"dissolution": {
		"baseline":   {"Saturated solution at equilibrium", chem.Input{Temperature: 25, Pressure: 1, ReactantConc: 70, ProductConc: 30}},
		"warm":       {"Heat dissolves more solid", chem.Input{Temperature: 65, Pressure: 1, ReactantConc: 70, ProductConc: 30}},
		"common-ion": {"Extra ions precipitate solid", chem.Input{Temperature: 25, Pressure: 1, ReactantConc: 40, ProductConc: 60}},
		"cold":       {"Cooling crystallises the solute", chem.Input{Temperature: 0, Pressure: 1, ReactantConc: 70, ProductConc: 30}},
	},
}

// GetPreset returns a full config for a preset, or nil if either name is
// unknown. The reaction accepts the same aliases as chem.ParseReactionType.
func GetPreset(reaction, preset string) *Config {
	rt, err := chem.ParseReactionType(reaction)
	if err != nil {
		return nil
	}
	p, ok := Presets[rt.String()][preset]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Reaction = rt.String()
	cfg.Controls = p.Controls
	return cfg
}

func ListPresets(reaction string) []string {
	rt, err := chem.ParseReactionType(reaction)
	if err != nil {
		return nil
	}
	reactionPresets, ok := Presets[rt.String()]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(reactionPresets))
	for name := range reactionPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
