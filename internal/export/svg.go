package export

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/san-kum/equilibria/internal/kinematics"
	"github.com/san-kum/equilibria/internal/viz"
)

var ErrUnknownView = errors.New("export: unknown view")

// View selects the projection used by ChamberToSVG.
type View int

const (
	// SideView projects onto the x-y plane.
	SideView View = iota
	// TopView projects onto the x-z plane.
	TopView
)

func ParseView(s string) (View, error) {
	switch strings.ToLower(s) {
	case "side", "":
		return SideView, nil
	case "top":
		return TopView, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownView, s)
}

func (v View) String() string {
	if v == TopView {
		return "top"
	}
	return "side"
}

const background = "#0a0a0a"

func header(sb *strings.Builder, w, h float64) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, w, h, w, h, background)
}

// CanvasToSVG converts a Braille canvas to SVG format
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	var sb strings.Builder
	header(&sb, float64(canvas.PixelWidth())*scale, float64(canvas.PixelHeight())*scale)
	sb.WriteString(`<g fill="#00ff00">` + "\n")

	dotRadius := scale * 0.4
	for y := 0; y < canvas.PixelHeight(); y++ {
		for x := 0; x < canvas.PixelWidth(); x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f"/>`+"\n", cx, cy, dotRadius)
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// ChamberToSVG draws the chamber outline and every particle in its species
// colour. Particles further from the viewer are drawn first.
func ChamberToSVG(ps []kinematics.Particle, c kinematics.Chamber, view View, width, height int) string {
	w, h := float64(width), float64(height)
	var sb strings.Builder
	header(&sb, w, h)

	// world extent of the visible plane, with a margin
	spanX := 2 * c.Radius * 1.1
	spanY := c.Height * 1.1
	if view == TopView {
		spanY = spanX
	}
	unit := math.Min(w/spanX, h/spanY)
	ox, oy := w/2, h/2

	if view == TopView {
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="#555555" stroke-width="2"/>`+"\n",
			ox, oy, c.Radius*unit)
	} else {
		fmt.Fprintf(&sb, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="#555555" stroke-width="2"/>`+"\n",
			ox-c.Radius*unit, oy-c.Height/2*unit, 2*c.Radius*unit, c.Height*unit)
	}

	type dot struct {
		x, y, r, depth float64
		kind           kinematics.Kind
	}
	dots := make([]dot, len(ps))
	for i, p := range ps {
		d := dot{r: math.Max(1.5, p.Radius*unit), kind: p.Kind}
		d.x = ox + p.Position.X*unit
		if view == TopView {
			d.y = oy + p.Position.Z*unit
			d.depth = p.Position.Y
		} else {
			d.y = oy - (p.Position.Y-c.CenterY)*unit
			d.depth = -p.Position.Z
		}
		dots[i] = d
	}
	sort.SliceStable(dots, func(i, j int) bool { return dots[i].depth < dots[j].depth })

	for _, d := range dots {
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n", d.x, d.y, d.r, viz.SpeciesHex(d.kind))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// Point is one sample of a 2D series.
type Point struct{ X, Y float64 }

// SeriesToSVG plots points as a polyline scaled to fill the image.
func SeriesToSVG(points []Point, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder
	header(&sb, float64(width), float64(height))
	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor)
	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}
	sb.WriteString(`"/>` + "\n</svg>")
	return sb.String()
}
