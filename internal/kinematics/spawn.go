package kinematics

import (
	"math"

	"github.com/san-kum/equilibria/internal/chem"
)

// DefaultParticleCount is the population at 100% total concentration.
const DefaultParticleCount = 200

type shape struct {
	minSize, sizeRange float64
	speed              float64
}

var (
	moleculeShape = shape{minSize: 0.3, sizeRange: 0.2, speed: 0.1}
	gasReactant   = shape{minSize: 0.4, sizeRange: 0.2, speed: 0.15}
	gasProduct    = shape{minSize: 0.5, sizeRange: 0.3, speed: 0.15}
	solidShape    = shape{minSize: 0.5, sizeRange: 0.5}
	aqueousShape  = shape{minSize: 0.2, sizeRange: 0.1, speed: 0.05}
)

// Count is the number of particles a concentration maps to.
func Count(conc float64, total int) int {
	if conc <= 0 {
		return 0
	}
	return int(math.Floor(conc / 100 * float64(total)))
}

// Spawn builds a fresh particle set for the given concentrations.
// total <= 0 selects DefaultParticleCount. For Dissolution the reactant
// concentration drives the solids and the product concentration the
// dissolved ions; solids rest on the floor at rest.
func Spawn(rt chem.ReactionType, reactant, product float64, c Chamber, rng RandSource, total int) []Particle {
	if total <= 0 {
		total = DefaultParticleCount
	}
	nr, np := Count(reactant, total), Count(product, total)
	ps := make([]Particle, 0, nr+np)

	switch rt {
	case chem.Dissolution:
		for i := 0; i < nr; i++ {
			ps = append(ps, spawnSolid(c, rng))
		}
		for i := 0; i < np; i++ {
			ps = append(ps, spawnAqueous(c, rng))
		}
	case chem.GasPhase:
		for i := 0; i < nr; i++ {
			ps = append(ps, spawnLoose(Reactant, gasReactant, c, rng))
		}
		for i := 0; i < np; i++ {
			ps = append(ps, spawnLoose(Product, gasProduct, c, rng))
		}
	default:
		for i := 0; i < nr; i++ {
			ps = append(ps, spawnLoose(Reactant, moleculeShape, c, rng))
		}
		for i := 0; i < np; i++ {
			ps = append(ps, spawnLoose(Product, moleculeShape, c, rng))
		}
	}

	for i := range ps {
		c.Contain(&ps[i])
	}
	return ps
}

func (s shape) size(rng RandSource) float64 { return s.minSize + rng.Float64()*s.sizeRange }
func (s shape) maxSize() float64             { return s.minSize + s.sizeRange }

// MaxParticleRadius bounds the radius of any spawned particle. Solids are
// sized by width, so their radius is half their size.
func MaxParticleRadius() float64 {
	r := solidShape.maxSize() / 2
	for _, s := range []shape{moleculeShape, gasReactant, gasProduct, aqueousShape} {
		r = math.Max(r, s.maxSize())
	}
	return r
}

func (s shape) velocity(rng RandSource) Vec3 {
	return Vec3{
		X: (rng.Float64() - 0.5) * s.speed,
		Y: (rng.Float64() - 0.5) * s.speed,
		Z: (rng.Float64() - 0.5) * s.speed,
	}
}

// spawnLoose scatters a particle through the box bounding the chamber.
// Spawn pulls the corners outside the cylinder back in.
func spawnLoose(k Kind, s shape, c Chamber, rng RandSource) Particle {
	r := s.size(rng)
	pos := Vec3{
		X: (rng.Float64() - 0.5) * c.Radius * 1.8,
		Y: (rng.Float64()-0.5)*c.Height + c.CenterY,
		Z: (rng.Float64() - 0.5) * c.Radius * 1.8,
	}
	return Particle{Kind: k, Position: pos, Velocity: s.velocity(rng), Radius: r}
}

func spawnSolid(c Chamber, rng RandSource) Particle {
	size := solidShape.size(rng)
	angle := rng.Float64() * 2 * math.Pi
	dist := rng.Float64() * math.Max(0, c.Radius-size)
	pos := Vec3{
		X: dist * math.Cos(angle),
		Y: c.Floor() + size/2 + rng.Float64()*0.5,
		Z: dist * math.Sin(angle),
	}
	return Particle{Kind: Solid, Position: pos, Radius: size / 2}
}

func spawnAqueous(c Chamber, rng RandSource) Particle {
	r := aqueousShape.size(rng)
	angle := rng.Float64() * 2 * math.Pi
	dist := rng.Float64() * c.Radius * 0.9
	pos := Vec3{
		X: dist * math.Cos(angle),
		Y: c.Floor() + r + rng.Float64()*c.Height*0.8,
		Z: dist * math.Sin(angle),
	}
	return Particle{Kind: Aqueous, Position: pos, Velocity: aqueousShape.velocity(rng), Radius: r}
}

// CountKinds tallies the particles of each kind.
func CountKinds(ps []Particle) map[Kind]int {
	out := make(map[Kind]int, 4)
	for _, p := range ps {
		out[p.Kind]++
	}
	return out
}
