// Package kinematics moves the reactor particles.
//
// Motion is a cheap visual heuristic: uniform jitter scaled by temperature,
// a horizontal bias toward the favoured side of the reaction, explicit Euler
// integration, damping and containment inside a vertical cylinder. It makes
// no claim to physical accuracy.
//
//	rng := rand.New(rand.NewSource(1))
//	ps := kinematics.Spawn(chem.GasPhase, 50, 50, kinematics.DefaultChamber(), rng, 0)
//	for i := range ps {
//		kinematics.Step(&ps[i], 20, 25, chem.GasPhase, kinematics.DefaultChamber(), rng)
//	}
package kinematics
