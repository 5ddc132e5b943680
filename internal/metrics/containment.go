package metrics

import "github.com/san-kum/equilibria/internal/kinematics"

// Containment is the fraction of ticks in which every particle was inside
// the chamber. 1.0 means nothing ever escaped.
type Containment struct {
	chamber    kinematics.Chamber
	violations int
	samples    int
}

func NewContainment(c kinematics.Chamber) *Containment {
	return &Containment{chamber: c}
}

func (c *Containment) Name() string { return "containment" }

func (c *Containment) Observe(ps []kinematics.Particle, _ int) {
	c.samples++
	for _, p := range ps {
		if !c.chamber.Contains(p.Position, p.Radius) {
			c.violations++
			break
		}
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}
