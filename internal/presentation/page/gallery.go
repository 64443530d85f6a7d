// Package page holds the landing page's small interaction state machines.
// Each is mounted on its own and shares nothing with the others.
package page

import (
	"fmt"
	"math"
)

const (
	MinScale  = 1.0
	MaxScale  = 3.0
	ScaleStep = 0.1
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Gallery tracks the product image viewer: current image, zoom and pan.
type Gallery struct {
	images  []string
	current int

	scale    float64
	pan      Point
	dragging bool
	grab     Point
}

func MountGallery(images ...string) *Gallery {
	g := &Gallery{images: append([]string(nil), images...)}
	g.reset()
	return g
}

func (g *Gallery) Image() string {
	if len(g.images) == 0 {
		return ""
	}
	return g.images[g.current]
}

func (g *Gallery) Scale() float64 { return g.scale }

func (g *Gallery) Pan() Point { return g.pan }

// ZoomLabel is the percentage shown next to the zoom buttons, e.g. "130%".
func (g *Gallery) ZoomLabel() string {
	return fmt.Sprintf("%d%%", int(math.Round(g.scale*100)))
}

func (g *Gallery) ZoomIn() {
	g.setScale(g.scale + ScaleStep)
}

func (g *Gallery) ZoomOut() {
	g.setScale(g.scale - ScaleStep)
}

// Wheel zooms in for upward scrolls (negative delta) and out otherwise.
func (g *Gallery) Wheel(deltaY float64) {
	if deltaY < 0 {
		g.ZoomIn()
		return
	}
	g.ZoomOut()
}

func (g *Gallery) StartDrag(pointer Point) {
	g.dragging = true
	g.grab = Point{X: pointer.X - g.pan.X, Y: pointer.Y - g.pan.Y}
}

// Drag pans the image only while a drag is active and the image is zoomed.
func (g *Gallery) Drag(pointer Point) bool {
	if !g.dragging || g.scale <= MinScale {
		return false
	}
	g.pan = Point{X: pointer.X - g.grab.X, Y: pointer.Y - g.grab.Y}
	return true
}

func (g *Gallery) EndDrag() {
	g.dragging = false
}

// ChangeImage selects a thumbnail and resets zoom and pan. Out of range
// indexes are ignored.
func (g *Gallery) ChangeImage(index int) bool {
	if index < 0 || index >= len(g.images) {
		return false
	}
	g.current = index
	g.reset()
	return true
}

func (g *Gallery) setScale(s float64) {
	s = math.Round(s*10) / 10
	g.scale = math.Min(math.Max(s, MinScale), MaxScale)
	if g.scale == MinScale {
		g.pan = Point{}
	}
}

func (g *Gallery) reset() {
	g.scale = MinScale
	g.pan = Point{}
	g.dragging = false
}
