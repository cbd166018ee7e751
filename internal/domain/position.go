package domain

// Device geometry on the canvas. Every device occupies the same box.
const (
	NodeWidth  = 100
	NodeHeight = 50
)

// Position is the top-left anchor of a device on the canvas
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// NewPosition creates a new position
func NewPosition(x, y float64) Position {
	return Position{X: x, Y: y}
}

// Point is an arbitrary canvas coordinate
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Center returns the center point of a device box anchored at p
func (p Position) Center() Point {
	return Point{X: p.X + NodeWidth/2, Y: p.Y + NodeHeight/2}
}

// Contains reports whether (x, y) falls inside the device box anchored at p
func (p Position) Contains(x, y float64) bool {
	return x >= p.X && x <= p.X+NodeWidth && y >= p.Y && y <= p.Y+NodeHeight
}
