package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/equilibria/internal/automation"
	"github.com/san-kum/equilibria/internal/sim"
)

// RunExport is the JSON document written for a headless run.
type RunExport struct {
	Reaction string             `json:"reaction"`
	Seed     int64              `json:"seed"`
	Ticks    int                `json:"ticks"`
	Final    sim.Snapshot       `json:"final"`
	Metrics  map[string]float64 `json:"metrics"`
	Trace    []sim.TracePoint   `json:"trace"`
}

func NewRunExport(seed int64, result *sim.Result, trace []sim.TracePoint) RunExport {
	return RunExport{
		Reaction: result.Final.Reaction.String(),
		Seed:     seed,
		Ticks:    result.Ticks,
		Final:    result.Final,
		Metrics:  result.Metrics,
		Trace:    trace,
	}
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func WriteTraceJSON(w io.Writer, data RunExport) error { return writeJSON(w, data) }

func WriteScenarioJSON(w io.Writer, res *automation.ScenarioResult) error {
	return writeJSON(w, res)
}

func WriteSweepJSON(w io.Writer, points []automation.SweepPoint) error {
	return writeJSON(w, points)
}
