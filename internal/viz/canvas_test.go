package viz

import (
	"strings"
	"testing"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(4, 2)
	if c.PixelWidth() != 8 || c.PixelHeight() != 8 {
		t.Fatalf("pixel size = %dx%d", c.PixelWidth(), c.PixelHeight())
	}
	c.Set(0, 0)
	c.Set(1, 3)
	if c.Grid[0][0] != brailleBlank|0x1|0x80 {
		t.Errorf("cell = %U", c.Grid[0][0])
	}
	if !c.IsSet(0, 0) || !c.IsSet(1, 3) || c.IsSet(1, 0) {
		t.Error("IsSet disagrees with Set")
	}

	c.Set(-1, 0)
	c.Set(100, 100)
	if c.IsSet(-1, 0) || c.IsSet(100, 100) {
		t.Error("out of range pixels should be ignored")
	}

	c.Clear()
	if c.IsSet(0, 0) {
		t.Error("Clear left a pixel set")
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(4, 1)
	c.DrawLine(0, 2, 7, 2)
	for x := 0; x < 8; x++ {
		if !c.IsSet(x, 2) {
			t.Errorf("pixel (%d, 2) not set", x)
		}
	}
	if c.IsSet(0, 0) {
		t.Error("line leaked to another row")
	}
}

func TestCanvasEllipseIsClosed(t *testing.T) {
	c := NewCanvas(20, 10)
	c.DrawEllipse(20, 20, 10, 10)
	for _, p := range [][2]int{{30, 20}, {10, 20}, {20, 10}, {20, 30}} {
		if !c.IsSet(p[0], p[1]) {
			t.Errorf("ellipse misses %v", p)
		}
	}
	if c.IsSet(20, 20) {
		t.Error("ellipse filled its centre")
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(3, 2)
	lines := strings.Split(c.String(), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines", len(lines))
	}
	if len([]rune(lines[0])) != 3 {
		t.Errorf("line width = %d", len([]rune(lines[0])))
	}
}

func TestGrid(t *testing.T) {
	g := NewGrid(5, 3)
	g.Set(1, 1, 'x', "#ffffff")
	g.Set(9, 9, 'y', "")
	if g.At(1, 1) != 'x' {
		t.Errorf("At(1,1) = %q", g.At(1, 1))
	}
	if g.At(9, 9) != ' ' {
		t.Error("out of range Set should be ignored")
	}

	g.Line(0, 2, 4, 2, '-', "")
	want := "     \n x   \n-----"
	if got := g.Plain(); got != want {
		t.Errorf("Plain() = %q, want %q", got, want)
	}

	g.Clear()
	if g.At(1, 1) != ' ' {
		t.Error("Clear left a cell")
	}
}
