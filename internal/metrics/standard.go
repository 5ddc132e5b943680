package metrics

import (
	"github.com/san-kum/equilibria/internal/chem"
	"github.com/san-kum/equilibria/internal/kinematics"
	"github.com/san-kum/equilibria/internal/sim"
)

// Standard is the metric set reported by headless runs: kinetic energy,
// containment and the centroid of both species of rt.
func Standard(c kinematics.Chamber, rt chem.ReactionType) []sim.Metric {
	left, right := kinematics.Reactant, kinematics.Product
	if rt == chem.Dissolution {
		left, right = kinematics.Solid, kinematics.Aqueous
	}
	return []sim.Metric{
		NewKineticEnergy(),
		NewContainment(c),
		NewSpeciesCentroid(left),
		NewSpeciesCentroid(right),
	}
}

// AllSpecies is Standard with a centroid for every particle kind, for runs
// that switch reaction midway. A centroid only samples ticks where its kind
// is present.
func AllSpecies(c kinematics.Chamber) []sim.Metric {
	return []sim.Metric{
		NewKineticEnergy(),
		NewContainment(c),
		NewSpeciesCentroid(kinematics.Reactant),
		NewSpeciesCentroid(kinematics.Product),
		NewSpeciesCentroid(kinematics.Solid),
		NewSpeciesCentroid(kinematics.Aqueous),
	}
}
