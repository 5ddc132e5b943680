package sim

import (
	"github.com/san-kum/equilibria/internal/chem"
	"github.com/san-kum/equilibria/internal/kinematics"
	"github.com/san-kum/equilibria/internal/state"
)

// TracePoint is the per-tick record of a headless run. LeftX and RightX are
// the mean x of the reactant-side and product-side particles.
type TracePoint struct {
	Tick        int         `json:"tick"`
	Temperature float64     `json:"temperature"`
	Pressure    float64     `json:"pressure"`
	Reactant    float64     `json:"reactant"`
	Product     float64     `json:"product"`
	Shift       float64     `json:"shift"`
	Status      chem.Status `json:"status"`
	LeftX       float64     `json:"left_x"`
	RightX      float64     `json:"right_x"`
}

// Tracer is an Observer that keeps a TracePoint for every tick.
type Tracer struct {
	points []TracePoint
}

func NewTracer(capacity int) *Tracer {
	return &Tracer{points: make([]TracePoint, 0, capacity)}
}

func (t *Tracer) OnTick(tick int, ps []kinematics.Particle, st state.SystemState) {
	var left, right float64
	var nl, nr int
	for _, p := range ps {
		if p.Kind.LeftSide() {
			left += p.Position.X
			nl++
		} else {
			right += p.Position.X
			nr++
		}
	}
	if nl > 0 {
		left /= float64(nl)
	}
	if nr > 0 {
		right /= float64(nr)
	}

	t.points = append(t.points, TracePoint{
		Tick:        tick,
		Temperature: st.Temperature,
		Pressure:    st.Pressure,
		Reactant:    st.ReactantConc,
		Product:     st.ProductConc,
		Shift:       st.Shift,
		Status:      st.Status,
		LeftX:       left,
		RightX:      right,
	})
}

func (t *Tracer) Points() []TracePoint { return t.points }

// Series extracts one column of the trace, e.g. for plotting.
func (t *Tracer) Series(field func(TracePoint) float64) []float64 {
	out := make([]float64, len(t.points))
	for i, p := range t.points {
		out[i] = field(p)
	}
	return out
}
