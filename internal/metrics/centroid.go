package metrics

import "github.com/san-kum/equilibria/internal/kinematics"

// SpeciesCentroid tracks the mean x position of one particle kind. A drift
// to positive x shows the population flowing toward the products.
type SpeciesCentroid struct {
	kind    kinematics.Kind
	current float64
	total   float64
	samples int
}

func NewSpeciesCentroid(kind kinematics.Kind) *SpeciesCentroid {
	return &SpeciesCentroid{kind: kind}
}

func (c *SpeciesCentroid) Name() string { return c.kind.String() + "_centroid_x" }

func (c *SpeciesCentroid) Observe(ps []kinematics.Particle, _ int) {
	sum, n := 0.0, 0
	for _, p := range ps {
		if p.Kind == c.kind {
			sum += p.Position.X
			n++
		}
	}
	if n == 0 {
		return
	}
	c.current = sum / float64(n)
	c.total += c.current
	c.samples++
}

// Current is the centroid at the last observed tick.
func (c *SpeciesCentroid) Current() float64 { return c.current }

func (c *SpeciesCentroid) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.total / float64(c.samples)
}

func (c *SpeciesCentroid) Reset() {
	c.current = 0
	c.total = 0
	c.samples = 0
}
