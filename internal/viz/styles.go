package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().Width(13)

	hintStyle = lipgloss.NewStyle().Italic(true)
)

// Panel wraps content in a rounded border in the theme's muted colour.
func Panel(title, content string, theme Theme) string {
	head := lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary).Render(title)
	return panelStyle.BorderForeground(theme.Muted).Render(head + "\n" + content)
}

func Label(text string, theme Theme) string {
	return labelStyle.Foreground(theme.Muted).Render(text)
}

func Value(text string, theme Theme) string {
	return lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(text)
}

func Hint(text string, theme Theme) string {
	return hintStyle.Foreground(theme.Muted).Render(text)
}

// GradientText creates a gradient effect on text using color interpolation
func GradientText(text string, startColor, endColor lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	if len(runes) == 1 {
		return lipgloss.NewStyle().Foreground(startColor).Render(text)
	}

	sr, sg, sb := parseHex(string(startColor))
	er, eg, eb := parseHex(string(endColor))

	var result strings.Builder
	n := len(runes)
	for i, c := range runes {
		t := float64(i) / float64(n-1)
		r := int(float64(sr) + t*float64(er-sr))
		g := int(float64(sg) + t*float64(eg-sg))
		b := int(float64(sb) + t*float64(eb-sb))
		style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(hexColor(r, g, b)))
		result.WriteString(style.Render(string(c)))
	}
	return result.String()
}

// GaugeBar fills width cells in proportion to frac, colouring cold to hot.
func GaugeBar(frac float64, width int, theme Theme) string {
	filled := int(frac*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	color := theme.Primary
	switch {
	case frac > 0.6:
		color = theme.Error
	case frac > 0.3:
		color = theme.Warning
	}
	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(theme.Muted).Render(strings.Repeat("░", width-filled))
}

// ShiftBar draws a bar that grows from the centre toward the favoured side.
// percent is the bar position in [0,100] with 50 meaning balanced.
func ShiftBar(percent float64, width int, light string, theme Theme) string {
	if width < 3 {
		width = 3
	}
	mid := width / 2
	pos := int(percent/100*float64(width-1) + 0.5)
	if pos < 0 {
		pos = 0
	}
	if pos > width-1 {
		pos = width - 1
	}

	lo, hi := mid, pos
	if pos < mid {
		lo, hi = pos, mid
	}

	fill := lipgloss.NewStyle().Foreground(theme.LightColor(light))
	track := lipgloss.NewStyle().Foreground(theme.Muted)
	var b strings.Builder
	for i := 0; i < width; i++ {
		switch {
		case i == mid:
			b.WriteString(track.Render("│"))
		case i >= lo && i <= hi:
			b.WriteString(fill.Render("█"))
		default:
			b.WriteString(track.Render("─"))
		}
	}
	return b.String()
}

// StatusLight is a coloured dot followed by the status label.
func StatusLight(light, label string, theme Theme) string {
	c := theme.LightColor(light)
	return lipgloss.NewStyle().Foreground(c).Render("●") + " " +
		lipgloss.NewStyle().Foreground(c).Bold(true).Render(label)
}

// SparklineChart renders a mini sparkline from values
func SparklineChart(values []float64, width int, theme Theme) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	start := 0
	if len(values) > width {
		start = len(values) - width
	}

	var result strings.Builder
	for _, v := range values[start:] {
		idx := int((v - lo) / span * float64(len(chars)-1))
		idx = max(0, min(idx, len(chars)-1))
		result.WriteRune(chars[idx])
	}
	return lipgloss.NewStyle().Foreground(theme.Accent).Render(result.String())
}

func Separator(width int, theme Theme) string {
	return lipgloss.NewStyle().Foreground(theme.Muted).Render(strings.Repeat("─", max(width, 0)))
}

func parseHex(hex string) (r, g, b int) {
	if len(hex) != 7 || hex[0] != '#' {
		return 255, 255, 255
	}
	return parseHexByte(hex[1:3]), parseHexByte(hex[3:5]), parseHexByte(hex[5:7])
}

func parseHexByte(s string) int {
	var val int
	for _, c := range s {
		val *= 16
		switch {
		case c >= '0' && c <= '9':
			val += int(c - '0')
		case c >= 'a' && c <= 'f':
			val += int(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			val += int(c - 'A' + 10)
		}
	}
	return val
}

func hexColor(r, g, b int) string {
	return "#" + hexByte(r) + hexByte(g) + hexByte(b)
}

func hexByte(v int) string {
	v = max(0, min(v, 255))
	const hex = "0123456789abcdef"
	return string(hex[v/16]) + string(hex[v%16])
}
