package state

import (
	"fmt"

	"github.com/san-kum/equilibria/internal/chem"
)

// DefaultLogCapacity is the number of observations kept before the oldest is evicted.
const DefaultLogCapacity = 10

// Observation is a snapshot of the controls and status at record time.
type Observation struct {
	ID           int               `json:"id"`
	Reaction     chem.ReactionType `json:"reaction"`
	Temperature  float64           `json:"temperature"`
	Pressure     float64           `json:"pressure"`
	ReactantConc float64           `json:"reactant"`
	ProductConc  float64           `json:"product"`
	Shift        float64           `json:"shift"`
	Status       string            `json:"status"`
}

// Summary renders the observation as a spoken-style sentence.
func (o Observation) Summary() string {
	return fmt.Sprintf("Observation recorded. System status: %s. Temperature: %g degrees Celsius, Pressure: %g atmospheres, Reactants: %g percent, Products: %g percent.",
		o.Status, o.Temperature, o.Pressure, o.ReactantConc, o.ProductConc)
}

// Log is a fixed capacity FIFO of observations. IDs keep increasing across
// evictions and restart at 1 after Clear.
type Log struct {
	capacity int
	entries  []Observation
	counter  int
}

func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultLogCapacity
	}
	return &Log{
		capacity: capacity,
		entries:  make([]Observation, 0, capacity),
	}
}

// Record appends a snapshot of st, evicting the oldest entry when full.
func (l *Log) Record(rt chem.ReactionType, st SystemState) Observation {
	l.counter++
	obs := Observation{
		ID:           l.counter,
		Reaction:     rt,
		Temperature:  st.Temperature,
		Pressure:     st.Pressure,
		ReactantConc: st.ReactantConc,
		ProductConc:  st.ProductConc,
		Shift:        st.Shift,
		Status:       st.Status.Label(),
	}
	if len(l.entries) >= l.capacity {
		copy(l.entries, l.entries[1:])
		l.entries = l.entries[:len(l.entries)-1]
	}
	l.entries = append(l.entries, obs)
	return obs
}

// Entries returns the observations oldest first.
func (l *Log) Entries() []Observation {
	out := make([]Observation, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *Log) Len() int      { return len(l.entries) }
func (l *Log) Capacity() int { return l.capacity }

// Clear empties the log and resets the ID counter.
func (l *Log) Clear() {
	l.entries = l.entries[:0]
	l.counter = 0
}
