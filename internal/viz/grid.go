package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type cell struct {
	ch    rune
	color lipgloss.Color
}

// Grid is a character buffer where every cell carries its own colour.
type Grid struct {
	Width, Height int
	cells         [][]cell
}

func NewGrid(w, h int) *Grid {
	g := &Grid{Width: w, Height: h, cells: make([][]cell, h)}
	for i := range g.cells {
		g.cells[i] = make([]cell, w)
	}
	g.Clear()
	return g
}

func (g *Grid) Clear() {
	for y := range g.cells {
		for x := range g.cells[y] {
			g.cells[y][x] = cell{ch: ' '}
		}
	}
}

func (g *Grid) Set(x, y int, ch rune, color lipgloss.Color) {
	if x >= 0 && x < g.Width && y >= 0 && y < g.Height {
		g.cells[y][x] = cell{ch: ch, color: color}
	}
}

// At returns the rune stored at (x, y), or a space outside the grid.
func (g *Grid) At(x, y int) rune {
	if x >= 0 && x < g.Width && y >= 0 && y < g.Height {
		return g.cells[y][x].ch
	}
	return ' '
}

func (g *Grid) Line(x1, y1, x2, y2 int, ch rune, color lipgloss.Color) {
	dx, dy := absInt(x2-x1), absInt(y2-y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy
	for {
		g.Set(x1, y1, ch, color)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// Plain renders the grid without colour.
func (g *Grid) Plain() string {
	var b strings.Builder
	for y, row := range g.cells {
		for _, c := range row {
			b.WriteRune(c.ch)
		}
		if y < len(g.cells)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// String renders the grid, styling each run of same-coloured cells once.
func (g *Grid) String() string {
	var b strings.Builder
	var run strings.Builder
	for y, row := range g.cells {
		var cur lipgloss.Color
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if cur == "" {
				b.WriteString(run.String())
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(cur).Render(run.String()))
			}
			run.Reset()
		}
		for _, c := range row {
			if c.color != cur {
				flush()
				cur = c.color
			}
			run.WriteRune(c.ch)
		}
		flush()
		if y < len(g.cells)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
