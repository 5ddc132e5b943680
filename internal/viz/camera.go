package viz

import (
	"math"

	"github.com/san-kum/equilibria/internal/kinematics"
)

// Camera orbits a target point and projects world coordinates onto a
// character grid. Aspect is the height of a terminal cell over its width.
type Camera struct {
	Target     kinematics.Vec3
	Distance   float64
	RotX, RotY float64
	Zoom       float64
	Aspect     float64
}

func NewCamera(target kinematics.Vec3) *Camera {
	return &Camera{Target: target, Distance: 60, RotX: 0.25, Zoom: 1, Aspect: 2}
}

func (c *Camera) RotateX(a float64) { c.RotX = math.Max(-math.Pi/2, math.Min(math.Pi/2, c.RotX+a)) }
func (c *Camera) RotateY(a float64) { c.RotY = math.Mod(c.RotY+a, 2*math.Pi) }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(4, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.25, c.Zoom/1.2) }

// RotatePoint turns p about the target, yaw first then pitch.
func (c *Camera) RotatePoint(p kinematics.Vec3) kinematics.Vec3 {
	p = p.Sub(c.Target)
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	return p
}

// Project maps p onto a sw x sh grid so that a sphere of radius extent
// around the target fills the smaller dimension. It returns the cell, the
// depth (larger is nearer) and whether the cell is on screen.
func (c *Camera) Project(p kinematics.Vec3, sw, sh int, extent float64) (int, int, float64, bool) {
	rot := c.RotatePoint(p)
	if rot.Z >= c.Distance-0.1 {
		return 0, 0, 0, false
	}
	persp := c.Distance / (c.Distance - rot.Z)
	unit := math.Min(float64(sw)/2, float64(sh)*c.Aspect/2) / extent * c.Zoom
	sx := int(math.Round(rot.X*persp*unit)) + sw/2
	sy := int(math.Round(-rot.Y*persp*unit/c.Aspect)) + sh/2
	return sx, sy, rot.Z, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

type Edge struct {
	Start, End kinematics.Vec3
}

// ChamberWireframe outlines the cylinder with its rims and a few uprights.
func ChamberWireframe(c kinematics.Chamber, segments, uprights int) []Edge {
	edges := make([]Edge, 0, 2*segments+uprights)
	rim := func(y float64, i int) kinematics.Vec3 {
		a := 2 * math.Pi * float64(i) / float64(segments)
		return kinematics.Vec3{X: c.Radius * math.Cos(a), Y: y, Z: c.Radius * math.Sin(a)}
	}
	for _, y := range []float64{c.Floor(), c.Ceiling()} {
		for i := 0; i < segments; i++ {
			edges = append(edges, Edge{rim(y, i), rim(y, i+1)})
		}
	}
	for i := 0; i < uprights; i++ {
		k := i * segments / uprights
		edges = append(edges, Edge{rim(c.Floor(), k), rim(c.Ceiling(), k)})
	}
	return edges
}
