package sim

import (
	"github.com/san-kum/equilibria/internal/chem"
	"github.com/san-kum/equilibria/internal/kinematics"
	"github.com/san-kum/equilibria/internal/state"
)

// Metric accumulates a scalar over the ticks of a run.
type Metric interface {
	Name() string
	Observe(ps []kinematics.Particle, tick int)
	Value() float64
	Reset()
}

// Observer is notified after every tick. ps must not be retained.
type Observer interface {
	OnTick(tick int, ps []kinematics.Particle, st state.SystemState)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(tick int, ps []kinematics.Particle, st state.SystemState)

func (f ObserverFunc) OnTick(tick int, ps []kinematics.Particle, st state.SystemState) {
	f(tick, ps, st)
}

type Config struct {
	Reaction     chem.ReactionType
	Seed         int64
	Particles    int
	Chamber      kinematics.Chamber
	// Coefficients overrides chem.DefaultCoefficients when set. A zero
	// struct is honoured as an explicit override.
	Coefficients *chem.Coefficients
	Limits       state.Limits
	LogCapacity  int
}

func DefaultConfig() Config {
	return Config{
		Reaction:    chem.Exothermic,
		Seed:        1,
		Particles:   kinematics.DefaultParticleCount,
		Chamber:     kinematics.DefaultChamber(),
		Limits:      state.DefaultLimits(),
		LogCapacity: state.DefaultLogCapacity,
	}
}

// Display carries the readout derived from a shift.
type Display struct {
	Label       string  `json:"label"`
	Explanation string  `json:"explanation"`
	Light       string  `json:"light"`
	ShiftBar    float64 `json:"shift_bar"`
	Gauge       float64 `json:"gauge"`
}

func NewDisplay(st state.SystemState) Display {
	return Display{
		Label:       st.Status.Label(),
		Explanation: st.Status.Explanation(),
		Light:       st.Status.Light(),
		ShiftBar:    chem.ShiftBarPercent(st.Shift),
		Gauge:       chem.GaugeFraction(st.Temperature),
	}
}

// Snapshot is the presentation view of the system without particles.
type Snapshot struct {
	Tick     int                     `json:"tick"`
	Reaction chem.ReactionType       `json:"reaction"`
	Equation string                  `json:"equation"`
	State    state.SystemState       `json:"state"`
	Factors  []string                `json:"factors"`
	Display  Display                 `json:"display"`
	Counts   map[kinematics.Kind]int `json:"counts"`
}

// Frame is a Snapshot plus a copy of every particle.
type Frame struct {
	Snapshot
	Particles []kinematics.Particle `json:"particles"`
}

// Result summarises a headless run.
type Result struct {
	Seed    int64              `json:"seed"`
	Ticks   int                `json:"ticks"`
	Final   Snapshot           `json:"final"`
	Metrics map[string]float64 `json:"metrics"`
}
