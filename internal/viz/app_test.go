package viz

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/equilibria/internal/chem"
	"github.com/san-kum/equilibria/internal/config"
	"github.com/san-kum/equilibria/internal/sim"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	s, err := sim.New(sim.DefaultConfig())
	if err != nil {
		t.Fatalf("sim.New: %v", err)
	}
	return NewApp(s, Options{FPS: 60})
}

func press(m tea.Model, keys ...string) tea.Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		if k == " " {
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		} else {
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ = m.Update(msg)
	}
	return m
}

func TestAppControls(t *testing.T) {
	a := newTestApp(t)
	press(a, "t", "t", "p")
	st := a.sim.State()
	if st.Temperature != 35 || st.Pressure != 1.5 {
		t.Fatalf("state = %+v", st)
	}
	if st.Shift != -5 {
		t.Errorf("shift = %v, want -5", st.Shift)
	}

	press(a, "a")
	if st := a.sim.State(); st.ReactantConc != 55 || st.ProductConc != 45 {
		t.Errorf("concentrations = %v/%v", st.ReactantConc, st.ProductConc)
	}

	press(a, "r")
	if st := a.sim.State(); st.Temperature != 25 || st.Pressure != 1 {
		t.Errorf("reset left %+v", st)
	}
}

func TestAppClampsToLimits(t *testing.T) {
	a := newTestApp(t)
	for i := 0; i < 10; i++ {
		press(a, "T", "P")
	}
	st := a.sim.State()
	if st.Temperature != 0 {
		t.Errorf("temperature = %v, want 0", st.Temperature)
	}
	if st.Pressure != 0.1 {
		t.Errorf("pressure = %v, want 0.1", st.Pressure)
	}
	if a.noticeErr {
		t.Errorf("clamped change reported an error: %s", a.notice)
	}
}

func TestAppSelectReaction(t *testing.T) {
	a := newTestApp(t)
	press(a, "4")
	if a.sim.Reaction() != chem.Dissolution {
		t.Fatalf("reaction = %v", a.sim.Reaction())
	}
	if st := a.sim.State(); st.ReactantConc != 70 || st.ProductConc != 30 {
		t.Errorf("dissolution split = %v/%v", st.ReactantConc, st.ProductConc)
	}
}

func TestAppObservations(t *testing.T) {
	a := newTestApp(t)
	press(a, "o")
	if len(a.sim.Observations()) != 1 {
		t.Fatalf("got %d observations", len(a.sim.Observations()))
	}
	if !strings.HasPrefix(a.notice, "Observation recorded.") {
		t.Errorf("notice = %q", a.notice)
	}
	press(a, "c")
	if len(a.sim.Observations()) != 0 {
		t.Error("clear did not empty the log")
	}
}

func TestAppObservationsShowStatus(t *testing.T) {
	a := newTestApp(t)
	press(a, "o", "t", "t", "o")
	table := a.observationsView()
	if !strings.Contains(table, "System at Equilibrium") {
		t.Errorf("missing balanced entry in %q", table)
	}
	if !strings.Contains(table, "Shifting to the Left") {
		t.Errorf("missing shifted entry in %q", table)
	}
}

func TestAppPauseAndTick(t *testing.T) {
	a := newTestApp(t)
	a.Update(TickMsg{})
	if a.sim.Ticks() != 1 || len(a.shiftHistory) != 1 {
		t.Fatalf("ticks = %d history = %d", a.sim.Ticks(), len(a.shiftHistory))
	}
	press(a, " ")
	a.Update(TickMsg{})
	if a.sim.Ticks() != 1 {
		t.Error("paused app advanced the simulation")
	}
}

func TestAppCameraAndTheme(t *testing.T) {
	a := newTestApp(t)
	rx, zoom := a.camera.RotX, a.camera.Zoom
	press(a, "x", "+", "m")
	if a.camera.RotX <= rx || a.camera.Zoom <= zoom {
		t.Error("camera keys had no effect")
	}
	if a.theme.Name == ThemeLab.Name {
		t.Error("theme did not change")
	}
}

func TestAppQuit(t *testing.T) {
	a := newTestApp(t)
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestAppView(t *testing.T) {
	a := newTestApp(t)
	for i := 0; i < 3; i++ {
		a.Update(TickMsg{})
	}
	v := a.View()
	for _, want := range []string{chem.Exothermic.Equation(), "System at Equilibrium", "Temperature"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestAppHistoryCapped(t *testing.T) {
	xs := make([]float64, 0, historyCapacity)
	for i := 0; i < historyCapacity+10; i++ {
		xs = appendCapped(xs, float64(i))
	}
	if len(xs) != historyCapacity || xs[0] != 10 {
		t.Errorf("len = %d first = %v", len(xs), xs[0])
	}
}

func TestMenuFlow(t *testing.T) {
	m := NewMenu(config.DefaultConfig(), Options{})
	press(m, "j", "j")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != statePreset || m.selected != chem.GasPhase {
		t.Fatalf("state = %d selected = %v", m.state, m.selected)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != stateReaction {
		t.Fatal("esc did not go back")
	}
	press(m, "j", "j")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != stateSim || m.app == nil {
		t.Fatalf("menu did not start the app, err = %v", m.err)
	}
	if m.app.sim.Reaction() != chem.GasPhase {
		t.Errorf("app reaction = %v", m.app.sim.Reaction())
	}
	if !strings.Contains(m.View(), chem.GasPhase.Equation()) {
		t.Error("menu did not delegate View to the app")
	}
}
