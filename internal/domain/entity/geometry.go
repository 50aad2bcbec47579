package entity

import "math"

// Rect is a rectangle in host coordinates (pixels or terminal cells).
type Rect struct {
	X, Y float64
	W, H float64
}

// Right returns the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Center returns the center point of the rectangle.
func (r Rect) Center() (cx, cy float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Contains reports whether the point lies inside the rectangle.
// The right and bottom edges are exclusive.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Empty reports whether the rectangle has no area or holds NaN values.
func (r Rect) Empty() bool {
	return !(r.W > 0) || !(r.H > 0) || math.IsNaN(r.X) || math.IsNaN(r.Y)
}

// PanelRect pairs a panel id with its rendered geometry.
// Used for directional navigation between panels.
type PanelRect struct {
	PanelID string
	Rect
}
