package metrics

import "github.com/san-kum/equilibria/internal/kinematics"

// KineticEnergy is the run average of the per-tick mean ½|v|² over mobile
// particles. Solids are skipped.
type KineticEnergy struct {
	name    string
	total   float64
	samples int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (k *KineticEnergy) Name() string { return k.name }

func (k *KineticEnergy) Observe(ps []kinematics.Particle, _ int) {
	sum, n := 0.0, 0
	for _, p := range ps {
		if p.Kind == kinematics.Solid {
			continue
		}
		sum += 0.5 * p.Velocity.Dot(p.Velocity)
		n++
	}
	if n == 0 {
		return
	}
	k.total += sum / float64(n)
	k.samples++
}

func (k *KineticEnergy) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.total / float64(k.samples)
}

func (k *KineticEnergy) Reset() {
	k.total = 0
	k.samples = 0
}
