package viz

import (
	"math"
	"sort"

	"github.com/san-kum/equilibria/internal/kinematics"
)

var glyphs = map[kinematics.Kind]rune{
	kinematics.Reactant: '●',
	kinematics.Product:  '◆',
	kinematics.Solid:    '■',
	kinematics.Aqueous:  '•',
}

func Glyph(k kinematics.Kind) rune {
	if g, ok := glyphs[k]; ok {
		return g
	}
	return '?'
}

func chamberExtent(c kinematics.Chamber) float64 {
	return math.Max(c.Radius, c.Height/2) * 1.15
}

// SideView draws the chamber wireframe and the particles, far ones first,
// through the camera.
func SideView(g *Grid, ps []kinematics.Particle, c kinematics.Chamber, cam *Camera, theme Theme) {
	g.Clear()
	extent := chamberExtent(c)

	for _, e := range ChamberWireframe(c, 32, 4) {
		x1, y1, _, v1 := cam.Project(e.Start, g.Width, g.Height, extent)
		x2, y2, _, v2 := cam.Project(e.End, g.Width, g.Height, extent)
		if v1 || v2 {
			g.Line(x1, y1, x2, y2, '·', theme.Wall)
		}
	}

	type projected struct {
		x, y  int
		depth float64
		kind  kinematics.Kind
	}
	pts := make([]projected, 0, len(ps))
	for _, p := range ps {
		x, y, d, ok := cam.Project(p.Position, g.Width, g.Height, extent)
		if ok {
			pts = append(pts, projected{x, y, d, p.Kind})
		}
	}
	sort.Slice(pts, func(i, j int) bool { return pts[i].depth < pts[j].depth })
	for _, p := range pts {
		g.Set(p.x, p.y, Glyph(p.kind), SpeciesColor(p.kind))
	}
}

// TopView plots particles on the x-z plane inside the chamber outline.
func TopView(cv *Canvas, ps []kinematics.Particle, c kinematics.Chamber) {
	cv.Clear()
	w, h := cv.PixelWidth(), cv.PixelHeight()
	unit := math.Min(float64(w), float64(h)) / 2 / (c.Radius * 1.05)
	cx, cy := w/2, h/2

	cv.DrawEllipse(cx, cy, c.Radius*unit, c.Radius*unit)
	for _, p := range ps {
		x := cx + int(math.Round(p.Position.X*unit))
		y := cy + int(math.Round(p.Position.Z*unit))
		cv.Set(x, y)
	}
}
