package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/san-kum/equilibria/internal/automation"
	"github.com/san-kum/equilibria/internal/chem"
	"github.com/san-kum/equilibria/internal/kinematics"
	"github.com/san-kum/equilibria/internal/sim"
	"github.com/san-kum/equilibria/internal/viz"
)

func TestParseView(t *testing.T) {
	for in, want := range map[string]View{"side": SideView, "TOP": TopView, "": SideView} {
		got, err := ParseView(in)
		if err != nil || got != want {
			t.Errorf("ParseView(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseView("iso"); !errors.Is(err, ErrUnknownView) {
		t.Errorf("expected ErrUnknownView, got %v", err)
	}
}

func TestChamberToSVG(t *testing.T) {
	ps := []kinematics.Particle{
		{Kind: kinematics.Reactant, Position: kinematics.Vec3{Y: 3}, Radius: 0.1},
		{Kind: kinematics.Product, Position: kinematics.Vec3{X: 2, Y: 4, Z: 1}, Radius: 0.1},
	}
	for _, v := range []View{SideView, TopView} {
		svg := ChamberToSVG(ps, kinematics.DefaultChamber(), v, 400, 400)
		if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
			t.Fatalf("%v: malformed document", v)
		}
		for _, k := range []kinematics.Kind{kinematics.Reactant, kinematics.Product} {
			if !strings.Contains(svg, viz.SpeciesHex(k)) {
				t.Errorf("%v: missing colour for %v", v, k)
			}
		}
	}
	if !strings.Contains(ChamberToSVG(ps, kinematics.DefaultChamber(), SideView, 400, 400), "<rect x=") {
		t.Error("side view lacks the chamber outline")
	}
}

func TestChamberToSVGCentresTheAxis(t *testing.T) {
	c := kinematics.DefaultChamber()
	ps := []kinematics.Particle{{Kind: kinematics.Solid, Position: kinematics.Vec3{Y: c.CenterY}, Radius: 0.1}}
	svg := ChamberToSVG(ps, c, SideView, 200, 100)
	if !strings.Contains(svg, `cx="100.0" cy="50.0"`) {
		t.Errorf("particle on the axis not centred:\n%s", svg)
	}
}

func TestCanvasToSVG(t *testing.T) {
	if CanvasToSVG(nil, 2) != "" {
		t.Error("nil canvas should render nothing")
	}
	cv := viz.NewCanvas(2, 1)
	cv.Set(0, 0)
	cv.Set(3, 3)
	svg := CanvasToSVG(cv, 2)
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("got %d dots, want 2", n)
	}
}

func TestSeriesToSVG(t *testing.T) {
	if SeriesToSVG([]Point{{0, 0}}, 100, 100, "#fff") != "" {
		t.Error("single point should render nothing")
	}
	svg := SeriesToSVG([]Point{{0, 0}, {1, 1}, {2, 0}}, 100, 100, "#ff0000")
	if strings.Count(svg, " L") != 2 || !strings.Contains(svg, `stroke="#ff0000"`) {
		t.Errorf("unexpected path: %s", svg)
	}
}

func runTrace(t *testing.T) (*sim.Result, []sim.TracePoint) {
	t.Helper()
	s, err := sim.New(sim.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	tr := sim.NewTracer(5)
	s.AddObserver(tr)
	if err := s.Apply(sim.Temperature(75)); err != nil {
		t.Fatal(err)
	}
	s.Record()
	res, err := s.Run(context.Background(), 5, nil)
	if err != nil {
		t.Fatal(err)
	}
	return res, tr.Points()
}

func TestWriteTraceCSV(t *testing.T) {
	_, trace := runTrace(t)
	var buf bytes.Buffer
	if err := WriteTraceCSV(&buf, trace); err != nil {
		t.Fatal(err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 6 {
		t.Fatalf("got %d rows, want header + 5", len(rows))
	}
	if rows[0][0] != "tick" || rows[1][1] != "75" || rows[1][5] != "-25" {
		t.Errorf("unexpected rows: %v", rows[:2])
	}
}

func TestWriteObservationsCSV(t *testing.T) {
	s, _ := sim.New(sim.DefaultConfig())
	s.Record()
	s.Record()
	var buf bytes.Buffer
	if err := WriteObservationsCSV(&buf, s.Observations()); err != nil {
		t.Fatal(err)
	}
	rows, _ := csv.NewReader(&buf).ReadAll()
	if len(rows) != 3 || rows[2][0] != "2" || rows[1][1] != "exothermic" {
		t.Errorf("rows = %v", rows)
	}
}

func TestWriteSweepCSV(t *testing.T) {
	pts, err := automation.RunSweep(automation.Sweep{Reaction: chem.GasPhase, Control: "pressure", Min: 1, Max: 3, Steps: 3})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteSweepCSV(&buf, "pressure", pts); err != nil {
		t.Fatal(err)
	}
	rows, _ := csv.NewReader(&buf).ReadAll()
	if len(rows) != 4 || rows[0][0] != "pressure" {
		t.Errorf("rows = %v", rows)
	}
}

func TestWriteTraceJSON(t *testing.T) {
	res, trace := runTrace(t)
	var buf bytes.Buffer
	if err := WriteTraceJSON(&buf, NewRunExport(1, res, trace)); err != nil {
		t.Fatal(err)
	}
	var got struct {
		Reaction string `json:"reaction"`
		Ticks    int    `json:"ticks"`
		Trace    []struct {
			Shift float64 `json:"shift"`
		} `json:"trace"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Reaction != "exothermic" || got.Ticks != 5 || len(got.Trace) != 5 || got.Trace[0].Shift != -25 {
		t.Errorf("decoded %+v", got)
	}
}
