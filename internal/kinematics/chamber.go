package kinematics

import (
	"fmt"
	"math"
)

// Chamber is a vertical cylinder centred on the y axis.
type Chamber struct {
	Radius  float64 `json:"radius" yaml:"radius"`
	Height  float64 `json:"height" yaml:"height"`
	CenterY float64 `json:"center_y" yaml:"center_y"`
}

func DefaultChamber() Chamber {
	return Chamber{Radius: 7.5, Height: 11, CenterY: 3}
}

func (c Chamber) Validate() error {
	for _, v := range []float64{c.Radius, c.Height, c.CenterY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite value", ErrInvalidChamber)
		}
	}
	if c.Radius <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: radius %.2f height %.2f", ErrInvalidChamber, c.Radius, c.Height)
	}
	// Every particle must fit, or Contain cannot keep it inside.
	if r := MaxParticleRadius(); c.Radius <= r || c.Height < 2*r {
		return fmt.Errorf("%w: radius %.2f height %.2f cannot hold particles of radius %.2f",
			ErrInvalidChamber, c.Radius, c.Height, r)
	}
	return nil
}

func (c Chamber) Floor() float64   { return c.CenterY - c.Height/2 }
func (c Chamber) Ceiling() float64 { return c.CenterY + c.Height/2 }

// EffectiveRadius is the largest horizontal distance the centre of a
// particle of radius r may reach.
func (c Chamber) EffectiveRadius(r float64) float64 { return c.Radius - r }
func (c Chamber) MinY(r float64) float64            { return c.Floor() + r }
func (c Chamber) MaxY(r float64) float64            { return c.Ceiling() - r }

const containTolerance = 1e-9

// Contains reports whether a particle of radius r centred at pos lies fully
// inside the chamber.
func (c Chamber) Contains(pos Vec3, r float64) bool {
	if pos.Horizontal() > c.EffectiveRadius(r)+containTolerance {
		return false
	}
	return pos.Y >= c.MinY(r)-containTolerance && pos.Y <= c.MaxY(r)+containTolerance
}

// Contain pushes p back inside the chamber and bounces its velocity.
// The horizontal bounce reflects about the inward wall normal and keeps 70%
// of the speed; the vertical bounce inverts vy and keeps 70% of it.
func (c Chamber) Contain(p *Particle) {
	eff := c.EffectiveRadius(p.Radius)
	if d := p.Position.Horizontal(); d > eff {
		k := eff / d
		p.Position.X *= k
		p.Position.Z *= k
		normal := Vec3{X: p.Position.X, Z: p.Position.Z}.Normalize()
		p.Velocity = p.Velocity.Reflect(normal).Scale(wallRestitution)
	}

	if maxY := c.MaxY(p.Radius); p.Position.Y > maxY {
		p.Position.Y = maxY
		p.Velocity.Y *= -wallRestitution
	} else if minY := c.MinY(p.Radius); p.Position.Y < minY {
		p.Position.Y = minY
		p.Velocity.Y *= -wallRestitution
	}
}
