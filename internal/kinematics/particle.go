package kinematics

import "fmt"

type Kind int

const (
	Reactant Kind = iota
	Product
	Solid
	Aqueous
)

var kindNames = [...]string{"reactant", "product", "solid", "aqueous"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *Kind) UnmarshalText(text []byte) error {
	for i, n := range kindNames {
		if n == string(text) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("kinematics: unknown particle kind %q", text)
}

// LeftSide reports whether the kind sits on the reactant side of the equation.
func (k Kind) LeftSide() bool { return k == Reactant || k == Solid }

// Particle is a sphere, or for Solid a cube with half-width Radius.
type Particle struct {
	Kind     Kind    `json:"kind"`
	Position Vec3    `json:"position"`
	Velocity Vec3    `json:"velocity"`
	Radius   float64 `json:"radius"`
}

// RandSource yields uniform values in [0,1). *rand.Rand satisfies it.
type RandSource interface {
	Float64() float64
}
