// Package chem computes the equilibrium shift of a reversible reaction.
//
// The package is pure and stateless. It defines:
//
//   - [ReactionType]: the reaction being studied (exothermic, endothermic,
//     gas phase, dissolution)
//   - [Input]: a snapshot of the user controlled conditions
//   - [ComputeShift]: maps an [Input] to a bounded shift and a [Status]
//   - [Coefficients]: the weights applied to each perturbation
//
// # Example
//
//	in := chem.Input{Temperature: 75, Pressure: 1, ReactantConc: 50, ProductConc: 50}
//	res := chem.ComputeShift(in, chem.Exothermic)
//	// res.Shift == -25, res.Status == chem.ShiftingLeft
//
// A positive shift favours products, a negative shift favours reactants.
// Inputs must be finite; callers validate before calling.
package chem
