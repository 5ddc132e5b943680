package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"go.uber.org/zap"

	"github.com/san-kum/equilibria/internal/chem"
	"github.com/san-kum/equilibria/internal/kinematics"
	"github.com/san-kum/equilibria/internal/sim"
	"github.com/san-kum/equilibria/internal/state"
)

const (
	historyCapacity = 240
	defaultFPS      = 30

	temperatureStep   = 5.0
	pressureStep      = 0.5
	concentrationStep = 5.0
)

type TickMsg time.Time

type Options struct {
	FPS    int
	Theme  string
	Logger *zap.Logger
}

// App is the interactive reactor view. It owns the simulation and drives it
// from Bubble Tea's update loop.
type App struct {
	sim    *sim.Simulation
	logger *zap.Logger
	camera *Camera
	side   *Grid
	top    *Canvas
	theme  Theme
	fps    int

	running      bool
	shiftHistory []float64
	flowHistory  []float64
	notice       string
	noticeErr    bool
}

func NewApp(s *sim.Simulation, opts Options) *App {
	if opts.FPS <= 0 {
		opts.FPS = defaultFPS
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	c := s.Chamber()
	return &App{
		sim:          s,
		logger:       opts.Logger,
		camera:       NewCamera(kinematics.Vec3{Y: c.CenterY}),
		side:         NewGrid(48, 20),
		top:          NewCanvas(24, 10),
		theme:        GetTheme(opts.Theme),
		fps:          opts.FPS,
		running:      true,
		shiftHistory: make([]float64, 0, historyCapacity),
		flowHistory:  make([]float64, 0, historyCapacity),
	}
}

func (a *App) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(a.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (a *App) Init() tea.Cmd { return a.tick() }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		a.handleKey(msg.String())
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
	case TickMsg:
		if a.running {
			a.sim.Tick()
			a.pushHistory()
		}
		return a, a.tick()
	}
	return a, nil
}

func (a *App) resize(w, h int) {
	gw := max(30, min(90, w-62))
	gh := max(12, min(32, h-14))
	if gw != a.side.Width || gh != a.side.Height {
		a.side = NewGrid(gw, gh)
		a.top = NewCanvas(max(16, gw/2), max(8, gh/2))
	}
}

func (a *App) handleKey(key string) {
	st := a.sim.State()
	lim := a.sim.Limits()

	var cmd *sim.Command
	set := func(c sim.Command) { cmd = &c }

	switch key {
	case "1", "2", "3", "4":
		set(sim.Select(chem.ReactionTypes()[key[0]-'1']))
	case "t":
		set(sim.Temperature(clamp(st.Temperature+temperatureStep, lim.Temperature)))
	case "T":
		set(sim.Temperature(clamp(st.Temperature-temperatureStep, lim.Temperature)))
	case "p":
		set(sim.Pressure(clamp(round1(st.Pressure+pressureStep), lim.Pressure)))
	case "P":
		set(sim.Pressure(clamp(round1(st.Pressure-pressureStep), lim.Pressure)))
	case "a":
		set(sim.Reactant(clamp(st.ReactantConc+concentrationStep, lim.Concentration)))
	case "A":
		set(sim.Reactant(clamp(st.ReactantConc-concentrationStep, lim.Concentration)))
	case "b":
		set(sim.Product(clamp(st.ProductConc+concentrationStep, lim.Concentration)))
	case "B":
		set(sim.Product(clamp(st.ProductConc-concentrationStep, lim.Concentration)))
	case "r":
		set(sim.Reset(false))
		a.shiftHistory = a.shiftHistory[:0]
		a.flowHistory = a.flowHistory[:0]
	case "o":
		obs := a.sim.Record()
		a.setNotice(obs.Summary(), false)
	case "c":
		set(sim.ClearObservations())
	case " ":
		a.running = !a.running
	case "x":
		a.camera.RotateX(0.1)
	case "X":
		a.camera.RotateX(-0.1)
	case "y":
		a.camera.RotateY(0.1)
	case "Y":
		a.camera.RotateY(-0.1)
	case "+", "=":
		a.camera.ZoomIn()
	case "-", "_":
		a.camera.ZoomOut()
	case "m":
		a.theme = NextTheme(a.theme)
	}

	if cmd == nil {
		return
	}
	if err := a.sim.Apply(*cmd); err != nil {
		a.logger.Warn("command rejected", zap.Stringer("command", *cmd), zap.Error(err))
		a.setNotice(err.Error(), true)
		return
	}
	a.notice = ""
}

func (a *App) setNotice(text string, isErr bool) {
	a.notice, a.noticeErr = text, isErr
}

func (a *App) pushHistory() {
	st := a.sim.State()
	var left, right float64
	var nl, nr int
	for _, p := range a.sim.Particles() {
		if p.Kind.LeftSide() {
			left += p.Position.X
			nl++
		} else {
			right += p.Position.X
			nr++
		}
	}
	flow := 0.0
	if nl > 0 && nr > 0 {
		flow = left/float64(nl) - right/float64(nr)
	}
	a.shiftHistory = appendCapped(a.shiftHistory, st.Shift)
	a.flowHistory = appendCapped(a.flowHistory, flow)
}

func appendCapped(xs []float64, v float64) []float64 {
	if len(xs) >= historyCapacity {
		copy(xs, xs[1:])
		xs = xs[:len(xs)-1]
	}
	return append(xs, v)
}

func clamp(v float64, r state.Range) float64 { return math.Max(r.Min, math.Min(r.Max, v)) }
func round1(v float64) float64              { return math.Round(v*10) / 10 }

func (a *App) View() string {
	snap := a.sim.Snapshot()
	ps := a.sim.Particles()

	SideView(a.side, ps, a.sim.Chamber(), a.camera, a.theme)
	TopView(a.top, ps, a.sim.Chamber())

	header := GradientText("EQUILIBRIA", a.theme.Primary, a.theme.Accent) + "  " +
		Value(strings.ToUpper(snap.Reaction.String()), a.theme) + "  " +
		Hint(snap.Equation, a.theme)
	if !a.running {
		header += "  " + lipgloss.NewStyle().Foreground(a.theme.Warning).Bold(true).Render("PAUSED")
	}

	top := lipgloss.NewStyle().Foreground(a.theme.Primary).Render(a.top.String())
	left := lipgloss.JoinVertical(lipgloss.Left,
		Panel("Reactor", a.side.String(), a.theme),
		lipgloss.JoinHorizontal(lipgloss.Top,
			Panel("Top view", top, a.theme),
			Panel("Legend", a.legend(snap.Reaction, snap.Counts), a.theme),
		),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		Panel("Status", a.statusView(snap), a.theme),
		Panel("Conditions", a.conditionsView(snap.State), a.theme),
		Panel("Factors", a.factorsView(snap.Factors), a.theme),
		Panel("History", a.historyView(), a.theme),
		Panel("Observations", a.observationsView(), a.theme),
	)

	var b strings.Builder
	b.WriteString(header + "\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right) + "\n")
	if a.notice != "" {
		c := a.theme.Text
		if a.noticeErr {
			c = a.theme.Error
		}
		b.WriteString(lipgloss.NewStyle().Foreground(c).Width(110).Render(a.notice) + "\n")
	}
	b.WriteString(Hint("1-4 reaction  t/T temp  p/P pressure  a/A reactant  b/B product  r reset  o record  c clear  space pause  x/y rotate  +/- zoom  m theme  q quit", a.theme))
	return b.String()
}

func (a *App) legend(rt chem.ReactionType, counts map[kinematics.Kind]int) string {
	kinds := []kinematics.Kind{kinematics.Reactant, kinematics.Product}
	if rt == chem.Dissolution {
		kinds = []kinematics.Kind{kinematics.Solid, kinematics.Aqueous}
	}
	var lines []string
	for _, k := range kinds {
		g := lipgloss.NewStyle().Foreground(SpeciesColor(k)).Render(string(Glyph(k)))
		lines = append(lines, fmt.Sprintf("%s %-9s %3d", g, k, counts[k]))
	}
	return strings.Join(lines, "\n")
}

func (a *App) statusView(snap sim.Snapshot) string {
	d := snap.Display
	left, right := snap.Reaction.SpeciesNames()
	bar := ShiftBar(d.ShiftBar, 36, d.Light, a.theme)
	axis := fmt.Sprintf("%-18s%18s", "◀ "+left+"s", right+"s ▶")
	explanation := lipgloss.NewStyle().Width(40).Foreground(a.theme.Text).Render(d.Explanation)
	return strings.Join([]string{
		StatusLight(d.Light, d.Label, a.theme),
		bar,
		Hint(axis, a.theme),
		Label("Shift", a.theme) + Value(fmt.Sprintf("%+.1f", snap.State.Shift), a.theme),
		explanation,
	}, "\n")
}

func (a *App) conditionsView(st state.SystemState) string {
	return strings.Join([]string{
		Label("Temperature", a.theme) + Value(fmt.Sprintf("%5.1f °C ", st.Temperature), a.theme) +
			GaugeBar(chem.GaugeFraction(st.Temperature), 14, a.theme),
		Label("Pressure", a.theme) + Value(fmt.Sprintf("%5.1f atm", st.Pressure), a.theme),
		Label("Reactant", a.theme) + Value(fmt.Sprintf("%5.1f %%", st.ReactantConc), a.theme),
		Label("Product", a.theme) + Value(fmt.Sprintf("%5.1f %%", st.ProductConc), a.theme),
	}, "\n")
}

func (a *App) factorsView(factors []string) string {
	if len(factors) == 0 {
		return Hint("No perturbation from baseline", a.theme)
	}
	lines := make([]string, len(factors))
	for i, f := range factors {
		lines[i] = lipgloss.NewStyle().Width(40).Foreground(a.theme.Text).Render("• " + f)
	}
	return strings.Join(lines, "\n")
}

func (a *App) historyView() string {
	if len(a.shiftHistory) < 2 {
		return Hint("collecting…", a.theme)
	}
	graph := asciigraph.Plot(a.shiftHistory,
		asciigraph.Height(5),
		asciigraph.Width(34),
		asciigraph.LowerBound(-100),
		asciigraph.UpperBound(100),
		asciigraph.Caption("shift"),
	)
	return lipgloss.NewStyle().Foreground(a.theme.Secondary).Render(graph) + "\n" +
		Label("Flow", a.theme) + SparklineChart(a.flowHistory, 28, a.theme)
}

func (a *App) observationsView() string {
	obs := a.sim.Observations()
	if len(obs) == 0 {
		return Hint("press o to record", a.theme)
	}
	if len(obs) > 5 {
		obs = obs[len(obs)-5:]
	}
	lines := []string{Hint(fmt.Sprintf("%-3s %-6s %-5s %-5s %-5s %-6s %s", "#", "T", "P", "R", "Pr", "shift", "status"), a.theme)}
	for _, o := range obs {
		lines = append(lines, fmt.Sprintf("%-3d %-6.1f %-5.1f %-5.0f %-5.0f %+6.1f %s",
			o.ID, o.Temperature, o.Pressure, o.ReactantConc, o.ProductConc, o.Shift, o.Status))
	}
	return strings.Join(lines, "\n")
}

// Run starts the interactive view with s already configured.
func Run(s *sim.Simulation, opts Options) error {
	_, err := tea.NewProgram(NewApp(s, opts), tea.WithAltScreen()).Run()
	return err
}
