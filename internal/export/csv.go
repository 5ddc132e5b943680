package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/san-kum/equilibria/internal/automation"
	"github.com/san-kum/equilibria/internal/sim"
	"github.com/san-kum/equilibria/internal/state"
)

func ftoa(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

func writeAll(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

// WriteTraceCSV writes one row per tick.
func WriteTraceCSV(w io.Writer, trace []sim.TracePoint) error {
	rows := make([][]string, len(trace))
	for i, p := range trace {
		rows[i] = []string{
			strconv.Itoa(p.Tick),
			ftoa(p.Temperature), ftoa(p.Pressure),
			ftoa(p.Reactant), ftoa(p.Product),
			ftoa(p.Shift), p.Status.String(),
			ftoa(p.LeftX), ftoa(p.RightX),
		}
	}
	return writeAll(w, []string{"tick", "temperature", "pressure", "reactant", "product", "shift", "status", "left_x", "right_x"}, rows)
}

func WriteObservationsCSV(w io.Writer, obs []state.Observation) error {
	rows := make([][]string, len(obs))
	for i, o := range obs {
		rows[i] = []string{
			strconv.Itoa(o.ID), o.Reaction.String(),
			ftoa(o.Temperature), ftoa(o.Pressure),
			ftoa(o.ReactantConc), ftoa(o.ProductConc),
			ftoa(o.Shift), o.Status,
		}
	}
	return writeAll(w, []string{"id", "reaction", "temperature", "pressure", "reactant", "product", "shift", "status"}, rows)
}

func WriteSweepCSV(w io.Writer, control string, points []automation.SweepPoint) error {
	rows := make([][]string, len(points))
	for i, p := range points {
		rows[i] = []string{
			ftoa(p.Value),
			ftoa(p.Input.Temperature), ftoa(p.Input.Pressure),
			ftoa(p.Input.ReactantConc), ftoa(p.Input.ProductConc),
			ftoa(p.Shift), p.Status.String(),
		}
	}
	return writeAll(w, []string{control, "temperature", "pressure", "reactant", "product", "shift", "status"}, rows)
}
