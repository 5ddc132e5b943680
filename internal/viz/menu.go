package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/san-kum/equilibria/internal/chem"
	"github.com/san-kum/equilibria/internal/config"
	"github.com/san-kum/equilibria/internal/sim"
)

var reactionInfo = map[chem.ReactionType]string{
	chem.Exothermic:  "heat released going forward",
	chem.Endothermic: "heat absorbed going forward",
	chem.GasPhase:    "fewer moles on the right",
	chem.Dissolution: "solid in saturated solution",
}

const (
	stateReaction = iota
	statePreset
	stateSim
)

// Menu picks a reaction and a preset, then hands over to an App.
type Menu struct {
	base      *config.Config
	opts      Options
	state     int
	cursor    int
	reactions []chem.ReactionType
	selected  chem.ReactionType
	presets   []string
	app       *App
	err       error
	theme     Theme
}

func NewMenu(base *config.Config, opts Options) *Menu {
	if base == nil {
		base = config.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Menu{
		base:      base,
		opts:      opts,
		reactions: chem.ReactionTypes(),
		theme:     GetTheme(opts.Theme),
	}
}

func (m *Menu) Init() tea.Cmd { return nil }

func (m *Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateSim {
		return m.app.Update(msg)
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.items()-1 {
			m.cursor++
		}
	case "esc", "backspace":
		if m.state == statePreset {
			m.state, m.cursor = stateReaction, 0
		}
	case "enter", " ":
		return m.choose()
	}
	return m, nil
}

func (m *Menu) items() int {
	if m.state == statePreset {
		return len(m.presets)
	}
	return len(m.reactions)
}

func (m *Menu) choose() (tea.Model, tea.Cmd) {
	if m.state == stateReaction {
		m.selected = m.reactions[m.cursor]
		m.presets = config.ListPresets(m.selected.String())
		m.state, m.cursor = statePreset, 0
		return m, nil
	}

	cfg := config.GetPreset(m.selected.String(), m.presets[m.cursor])
	cfg.Seed, cfg.Particles, cfg.Chamber, cfg.Coefficients = m.base.Seed, m.base.Particles, m.base.Chamber, m.base.Coefficients
	cfg.Observations = m.base.Observations
	s, err := cfg.Build(sim.WithLogger(m.opts.Logger))
	if err != nil {
		m.err = err
		return m, nil
	}
	m.opts.Logger.Info("starting reactor",
		zap.String("reaction", m.selected.String()),
		zap.String("preset", m.presets[m.cursor]))
	m.app = NewApp(s, m.opts)
	m.app.theme = m.theme
	m.state = stateSim
	return m, m.app.Init()
}

func (m *Menu) View() string {
	if m.state == stateSim {
		return m.app.View()
	}
	var b strings.Builder
	b.WriteString(GradientText("EQUILIBRIA", m.theme.Primary, m.theme.Accent) + "\n")
	b.WriteString(Hint("Le Chatelier's principle in a box", m.theme) + "\n\n")

	cursor := lipgloss.NewStyle().Foreground(m.theme.Accent).Bold(true)
	if m.state == stateReaction {
		b.WriteString(Label("Select reaction", m.theme) + "\n\n")
		for i, rt := range m.reactions {
			line := fmt.Sprintf("%-12s %s", rt, Hint(reactionInfo[rt], m.theme))
			if i == m.cursor {
				b.WriteString(cursor.Render("▸ ") + Value(line, m.theme) + "\n")
				b.WriteString("    " + Hint(rt.Equation(), m.theme) + "\n")
			} else {
				b.WriteString("  " + line + "\n")
			}
		}
	} else {
		b.WriteString(Label("Preset for "+m.selected.String(), m.theme) + "\n\n")
		for i, name := range m.presets {
			p := config.Presets[m.selected.String()][name]
			line := fmt.Sprintf("%-12s %s", name, Hint(p.Description, m.theme))
			if i == m.cursor {
				b.WriteString(cursor.Render("▸ ") + Value(line, m.theme) + "\n")
			} else {
				b.WriteString("  " + line + "\n")
			}
		}
	}
	if m.err != nil {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(m.theme.Error).Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n" + Hint("↑/↓ move  enter select  esc back  q quit", m.theme))
	return b.String()
}

// RunMenu starts the interactive session at the reaction picker.
func RunMenu(base *config.Config, opts Options) error {
	_, err := tea.NewProgram(NewMenu(base, opts), tea.WithAltScreen()).Run()
	return err
}
