package viz

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/equilibria/internal/kinematics"
)

// Theme defines color scheme for the TUI
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Wall      lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
}

// Species colours match across themes so a reactant always reads the same.
var speciesHex = map[kinematics.Kind]string{
	kinematics.Reactant: "#3498db",
	kinematics.Product:  "#e74c3c",
	kinematics.Solid:    "#95a5a6",
	kinematics.Aqueous:  "#2ecc71",
}

// SpeciesHex returns the display colour of a particle kind as #rrggbb.
func SpeciesHex(k kinematics.Kind) string {
	if h, ok := speciesHex[k]; ok {
		return h
	}
	return "#ffffff"
}

func SpeciesColor(k kinematics.Kind) lipgloss.Color { return lipgloss.Color(SpeciesHex(k)) }

// Available themes
var (
	ThemeLab = Theme{
		Name:      "lab",
		Primary:   lipgloss.Color("#3498db"),
		Secondary: lipgloss.Color("#ecf0f1"),
		Accent:    lipgloss.Color("#f1c40f"),
		Text:      lipgloss.Color("#ecf0f1"),
		Muted:     lipgloss.Color("#7f8c8d"),
		Wall:      lipgloss.Color("#7f8c8d"),
		Success:   lipgloss.Color("#2ecc71"),
		Warning:   lipgloss.Color("#f39c12"),
		Error:     lipgloss.Color("#e74c3c"),
	}

	ThemeCyberpunk = Theme{
		Name:      "cyberpunk",
		Primary:   lipgloss.Color("#ff00ff"), // Magenta
		Secondary: lipgloss.Color("#00ffff"), // Cyan
		Accent:    lipgloss.Color("#ffff00"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#666666"),
		Wall:      lipgloss.Color("#444466"),
		Success:   lipgloss.Color("#00ff00"),
		Warning:   lipgloss.Color("#ff8800"),
		Error:     lipgloss.Color("#ff0000"),
	}

	ThemeRetroGreen = Theme{
		Name:      "retro",
		Primary:   lipgloss.Color("#00ff00"), // Green phosphor
		Secondary: lipgloss.Color("#00cc00"),
		Accent:    lipgloss.Color("#88ff88"),
		Text:      lipgloss.Color("#00ff00"),
		Muted:     lipgloss.Color("#005500"),
		Wall:      lipgloss.Color("#007700"),
		Success:   lipgloss.Color("#88ff88"),
		Warning:   lipgloss.Color("#ffff00"),
		Error:     lipgloss.Color("#ff0000"),
	}

	ThemeOcean = Theme{
		Name:      "ocean",
		Primary:   lipgloss.Color("#0077be"),
		Secondary: lipgloss.Color("#00a8cc"),
		Accent:    lipgloss.Color("#ffd700"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4488aa"),
		Wall:      lipgloss.Color("#336688"),
		Success:   lipgloss.Color("#00ff88"),
		Warning:   lipgloss.Color("#ffcc00"),
		Error:     lipgloss.Color("#ff4444"),
	}

	Themes = []Theme{
		ThemeLab,
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeOcean,
	}
)

// GetTheme returns a theme by name, falling back to the lab theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeLab
}

// NextTheme returns the theme after t in Themes, wrapping around.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// LightColor maps a status light class onto the theme.
func (t Theme) LightColor(light string) lipgloss.Color {
	switch light {
	case "strong-shift":
		return t.Error
	case "shifting":
		return t.Warning
	}
	return t.Success
}
