package kinematics_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/equilibria/internal/chem"
	"github.com/san-kum/equilibria/internal/kinematics"
)

var _ = Describe("Spawn", func() {
	var (
		chamber kinematics.Chamber
		rng     *rand.Rand
	)

	BeforeEach(func() {
		chamber = kinematics.DefaultChamber()
		rng = rand.New(rand.NewSource(1))
	})

	It("maps concentrations onto the default population", func() {
		ps := kinematics.Spawn(chem.Exothermic, 50, 50, chamber, rng, 0)
		counts := kinematics.CountKinds(ps)
		Expect(ps).To(HaveLen(200))
		Expect(counts[kinematics.Reactant]).To(Equal(100))
		Expect(counts[kinematics.Product]).To(Equal(100))
	})

	It("honours a custom population", func() {
		ps := kinematics.Spawn(chem.GasPhase, 25, 50, chamber, rng, 40)
		counts := kinematics.CountKinds(ps)
		Expect(counts[kinematics.Reactant]).To(Equal(10))
		Expect(counts[kinematics.Product]).To(Equal(20))
	})

	It("starts every particle inside the chamber", func() {
		for _, rt := range []chem.ReactionType{chem.Exothermic, chem.GasPhase, chem.Dissolution} {
			for _, p := range kinematics.Spawn(rt, 50, 50, chamber, rng, 0) {
				Expect(chamber.Contains(p.Position, p.Radius)).To(BeTrue(), "%v %v", rt, p.Kind)
			}
		}
	})

	It("produces nothing for empty concentrations", func() {
		Expect(kinematics.Spawn(chem.Endothermic, 0, 0, chamber, rng, 0)).To(BeEmpty())
	})

	It("sizes gas molecules by species", func() {
		for _, p := range kinematics.Spawn(chem.GasPhase, 50, 50, chamber, rng, 0) {
			switch p.Kind {
			case kinematics.Reactant:
				Expect(p.Radius).To(And(BeNumerically(">=", 0.4), BeNumerically("<", 0.6)))
			case kinematics.Product:
				Expect(p.Radius).To(And(BeNumerically(">=", 0.5), BeNumerically("<", 0.8)))
			default:
				Fail("unexpected kind " + p.Kind.String())
			}
		}
	})

	Context("dissolution", func() {
		var ps []kinematics.Particle

		BeforeEach(func() {
			ps = kinematics.Spawn(chem.Dissolution, 70, 30, chamber, rng, 0)
		})

		It("splits into solids and aqueous ions", func() {
			counts := kinematics.CountKinds(ps)
			Expect(counts[kinematics.Solid]).To(Equal(140))
			Expect(counts[kinematics.Aqueous]).To(Equal(60))
		})

		It("rests solids on the floor inside the chamber", func() {
			for _, p := range ps {
				if p.Kind != kinematics.Solid {
					continue
				}
				Expect(p.Velocity).To(Equal(kinematics.Vec3{}))
				Expect(p.Position.Y).To(BeNumerically("<=", chamber.Floor()+p.Radius+0.5))
				Expect(chamber.Contains(p.Position, p.Radius)).To(BeTrue())
			}
		})

		It("places ions inside the liquid", func() {
			for _, p := range ps {
				if p.Kind == kinematics.Aqueous {
					Expect(chamber.Contains(p.Position, p.Radius)).To(BeTrue())
				}
			}
		})
	})
})

var _ = Describe("Chamber", func() {
	It("validates its dimensions", func() {
		Expect(kinematics.DefaultChamber().Validate()).To(Succeed())
		Expect(kinematics.Chamber{Radius: 0, Height: 5}.Validate()).To(MatchError(kinematics.ErrInvalidChamber))
	})

	It("rejects a chamber smaller than its particles", func() {
		r := kinematics.MaxParticleRadius()
		Expect(r).To(BeNumerically("~", 0.8, 1e-9))
		Expect(kinematics.Chamber{Radius: 0.2, Height: 0.4}.Validate()).To(MatchError(kinematics.ErrInvalidChamber))
		Expect(kinematics.Chamber{Radius: r, Height: 5}.Validate()).To(MatchError(kinematics.ErrInvalidChamber))
		Expect(kinematics.Chamber{Radius: 5, Height: 2*r - 0.1}.Validate()).To(MatchError(kinematics.ErrInvalidChamber))
		Expect(kinematics.Chamber{Radius: r + 0.1, Height: 2 * r}.Validate()).To(Succeed())
	})

	It("reports the usable volume for a radius", func() {
		c := kinematics.DefaultChamber()
		Expect(c.EffectiveRadius(0.5)).To(Equal(7.0))
		Expect(c.MinY(0.5)).To(Equal(-2.0))
		Expect(c.MaxY(0.5)).To(Equal(8.0))
		Expect(c.Contains(kinematics.Vec3{X: 7.1, Y: 3}, 0.5)).To(BeFalse())
		Expect(c.Contains(kinematics.Vec3{X: 3, Y: 3, Z: 3}, 0.5)).To(BeTrue())
	})
})

var _ = Describe("Vec3", func() {
	It("reflects about a unit normal", func() {
		v := kinematics.Vec3{X: 1, Y: 2, Z: -1}
		Expect(v.Reflect(kinematics.Vec3{X: 1})).To(Equal(kinematics.Vec3{X: -1, Y: 2, Z: -1}))
	})
})
