package kinematics

import (
	"math"

	"github.com/san-kum/equilibria/internal/chem"
)

const (
	baseSpeed       = 0.005
	biasGain        = 5.0
	buoyancy        = 0.0005
	damping         = 0.98
	wallRestitution = 0.7
)

// TemperatureEffect scales the jitter amplitude.
func TemperatureEffect(temperature float64) float64 {
	return temperature/100 + 0.5
}

// Step advances one particle by one frame.
// Solid particles never move and are left untouched.
func Step(p *Particle, shift, temperature float64, rt chem.ReactionType, c Chamber, rng RandSource) {
	if p.Kind == Solid {
		return
	}

	jitter := baseSpeed * TemperatureEffect(temperature)
	p.Velocity.X += (rng.Float64() - 0.5) * jitter
	p.Velocity.Y += (rng.Float64() - 0.5) * jitter
	p.Velocity.Z += (rng.Float64() - 0.5) * jitter

	intensity := math.Abs(shift) / 100
	switch {
	case shift > 0:
		if p.Kind.LeftSide() {
			p.Velocity.X += intensity * baseSpeed * biasGain
		} else {
			p.Velocity.X += (rng.Float64() - 0.5) * baseSpeed * intensity
		}
	case shift < 0:
		if !p.Kind.LeftSide() {
			p.Velocity.X -= intensity * baseSpeed * biasGain
		} else {
			p.Velocity.X -= (rng.Float64() - 0.5) * baseSpeed * intensity
		}
	}

	if rt == chem.Dissolution && p.Kind == Aqueous {
		switch {
		case shift > 0:
			p.Velocity.Y += baseSpeed * intensity
		case shift < 0:
			p.Velocity.Y -= baseSpeed * intensity
			p.Velocity.X += (rng.Float64() - 0.5) * baseSpeed * intensity
			p.Velocity.Z += (rng.Float64() - 0.5) * baseSpeed * intensity
		}
		p.Velocity.Y += buoyancy
	}

	p.Position = p.Position.Add(p.Velocity)
	p.Velocity = p.Velocity.Scale(damping)

	c.Contain(p)
}

// StepAll advances every particle with the same conditions.
func StepAll(ps []Particle, shift, temperature float64, rt chem.ReactionType, c Chamber, rng RandSource) {
	for i := range ps {
		Step(&ps[i], shift, temperature, rt, c, rng)
	}
}
