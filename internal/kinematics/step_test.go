package kinematics_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/equilibria/internal/chem"
	"github.com/san-kum/equilibria/internal/kinematics"
)

// fixedRand always returns the same value and counts draws.
type fixedRand struct {
	v     float64
	draws int
}

func (f *fixedRand) Float64() float64 {
	f.draws++
	return f.v
}

var _ = Describe("Step", func() {
	var (
		chamber kinematics.Chamber
		still   *fixedRand
	)

	BeforeEach(func() {
		chamber = kinematics.DefaultChamber()
		still = &fixedRand{v: 0.5}
	})

	Context("solid particles", func() {
		It("never moves them or draws randomness", func() {
			p := kinematics.Particle{
				Kind:     kinematics.Solid,
				Position: kinematics.Vec3{X: 1, Y: -2, Z: 0.5},
				Radius:   0.4,
			}
			before := p
			for i := 0; i < 100; i++ {
				kinematics.Step(&p, 100, 200, chem.Dissolution, chamber, still)
			}
			Expect(p).To(Equal(before))
			Expect(still.draws).To(BeZero())
		})
	})

	Context("bias toward the favoured side", func() {
		It("pushes reactants right on a positive shift", func() {
			p := kinematics.Particle{Kind: kinematics.Reactant, Position: kinematics.Vec3{Y: chamber.CenterY}, Radius: 0.3}
			kinematics.Step(&p, 100, 25, chem.Exothermic, chamber, still)
			Expect(p.Position.X).To(BeNumerically("~", 0.025, 1e-12))
			Expect(p.Velocity.X).To(BeNumerically("~", 0.025*0.98, 1e-12))
		})

		It("leaves products undriven on a positive shift", func() {
			p := kinematics.Particle{Kind: kinematics.Product, Position: kinematics.Vec3{Y: chamber.CenterY}, Radius: 0.3}
			kinematics.Step(&p, 100, 25, chem.Exothermic, chamber, still)
			Expect(p.Position.X).To(BeNumerically("~", 0, 1e-12))
		})

		It("pulls products left on a negative shift", func() {
			p := kinematics.Particle{Kind: kinematics.Product, Position: kinematics.Vec3{Y: chamber.CenterY}, Radius: 0.3}
			kinematics.Step(&p, -50, 25, chem.GasPhase, chamber, still)
			Expect(p.Position.X).To(BeNumerically("~", -0.0125, 1e-12))
		})

		It("does nothing without a shift", func() {
			p := kinematics.Particle{Kind: kinematics.Reactant, Position: kinematics.Vec3{Y: chamber.CenterY}, Radius: 0.3}
			kinematics.Step(&p, 0, 25, chem.Endothermic, chamber, still)
			Expect(p.Position).To(Equal(kinematics.Vec3{Y: chamber.CenterY}))
		})
	})

	Context("dissolution", func() {
		It("adds buoyancy to aqueous particles", func() {
			p := kinematics.Particle{Kind: kinematics.Aqueous, Position: kinematics.Vec3{Y: chamber.CenterY}, Radius: 0.2}
			kinematics.Step(&p, 0, 25, chem.Dissolution, chamber, still)
			Expect(p.Position.Y - chamber.CenterY).To(BeNumerically("~", 0.0005, 1e-12))
		})

		It("lifts aqueous particles on a positive shift", func() {
			p := kinematics.Particle{Kind: kinematics.Aqueous, Position: kinematics.Vec3{Y: chamber.CenterY}, Radius: 0.2}
			kinematics.Step(&p, 100, 25, chem.Dissolution, chamber, still)
			Expect(p.Position.Y - chamber.CenterY).To(BeNumerically("~", 0.0055, 1e-12))
		})

		It("sinks aqueous particles on a negative shift", func() {
			p := kinematics.Particle{Kind: kinematics.Aqueous, Position: kinematics.Vec3{Y: chamber.CenterY}, Radius: 0.2}
			kinematics.Step(&p, -100, 25, chem.Dissolution, chamber, still)
			Expect(p.Position.Y - chamber.CenterY).To(BeNumerically("~", -0.0045, 1e-12))
		})
	})

	Context("walls", func() {
		It("reflects off the side wall and loses speed", func() {
			eff := chamber.EffectiveRadius(0.5)
			p := kinematics.Particle{
				Kind:     kinematics.Reactant,
				Position: kinematics.Vec3{X: eff - 0.01, Y: chamber.CenterY},
				Velocity: kinematics.Vec3{X: 0.1},
				Radius:   0.5,
			}
			kinematics.Step(&p, 0, 25, chem.Exothermic, chamber, still)
			Expect(p.Position.X).To(BeNumerically("~", eff, 1e-9))
			Expect(p.Velocity.X).To(BeNumerically("~", -0.098*0.7, 1e-12))
		})

		It("bounces off the ceiling", func() {
			maxY := chamber.MaxY(0.5)
			p := kinematics.Particle{
				Kind:     kinematics.Product,
				Position: kinematics.Vec3{Y: maxY - 0.01},
				Velocity: kinematics.Vec3{Y: 0.1},
				Radius:   0.5,
			}
			kinematics.Step(&p, 0, 25, chem.Exothermic, chamber, still)
			Expect(p.Position.Y).To(Equal(maxY))
			Expect(p.Velocity.Y).To(BeNumerically("~", -0.098*0.7, 1e-12))
		})

		It("bounces off the floor", func() {
			minY := chamber.MinY(0.3)
			p := kinematics.Particle{
				Kind:     kinematics.Reactant,
				Position: kinematics.Vec3{Y: minY + 0.01},
				Velocity: kinematics.Vec3{Y: -0.2},
				Radius:   0.3,
			}
			kinematics.Step(&p, 0, 25, chem.Exothermic, chamber, still)
			Expect(p.Position.Y).To(Equal(minY))
			Expect(p.Velocity.Y).To(BeNumerically(">", 0))
		})
	})

	Context("long runs", func() {
		DescribeTable("keeps every particle inside the chamber",
			func(rt chem.ReactionType, shift, temperature float64) {
				rng := rand.New(rand.NewSource(7))
				ps := kinematics.Spawn(rt, 50, 50, chamber, rng, 0)
				for tick := 0; tick < 2000; tick++ {
					kinematics.StepAll(ps, shift, temperature, rt, chamber, rng)
				}
				for _, p := range ps {
					Expect(chamber.Contains(p.Position, p.Radius)).To(BeTrue(), "particle %+v escaped", p)
				}
			},
			Entry("exothermic hot", chem.Exothermic, -100.0, 200.0),
			Entry("endothermic cold", chem.Endothermic, 100.0, 0.0),
			Entry("gas compressed", chem.GasPhase, 100.0, 150.0),
			Entry("dissolution dissolving", chem.Dissolution, 60.0, 200.0),
			Entry("dissolution precipitating", chem.Dissolution, -100.0, 25.0),
		)

		It("is deterministic for a fixed seed", func() {
			run := func() []kinematics.Particle {
				rng := rand.New(rand.NewSource(42))
				ps := kinematics.Spawn(chem.GasPhase, 60, 40, chamber, rng, 0)
				for tick := 0; tick < 300; tick++ {
					kinematics.StepAll(ps, 35, 80, chem.GasPhase, chamber, rng)
				}
				return ps
			}
			Expect(run()).To(Equal(run()))
		})
	})
})
