package render

import (
	"math"

	"netcanvas/internal/domain"
)

// DefaultDragThreshold is the pointer travel, in canvas units, that turns a
// press into a drag
const DefaultDragThreshold = 3

// Sink receives the events a gesture resolves to. The topology editor
// implements it.
type Sink interface {
	DragEnd(id string, x, y float64) bool
	Click(id string) *domain.Link
	BackgroundClick()
}

// Outcome is what a completed gesture produced
type Outcome string

const (
	OutcomeNone       Outcome = "none"
	OutcomeClick      Outcome = "click"
	OutcomeDrag       Outcome = "drag"
	OutcomeBackground Outcome = "background"
)

// Gesture tracks one pointer from press to release. It emits exactly one of
// DragEnd, Click or BackgroundClick per press, or nothing when the pointer was
// dragged across empty canvas.
type Gesture struct {
	sink      Sink
	threshold float64

	pressed  bool
	deviceID string
	origin   domain.Position
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	dragging bool
}

// NewGesture creates a gesture tracker. A non-positive threshold falls back
// to DefaultDragThreshold.
func NewGesture(sink Sink, threshold float64) *Gesture {
	if threshold <= 0 {
		threshold = DefaultDragThreshold
	}
	return &Gesture{sink: sink, threshold: threshold}
}

// Press starts a gesture at (x, y) on the given scene. A press while another
// gesture is active restarts it.
func (g *Gesture) Press(scene Scene, x, y float64) {
	g.reset()
	g.pressed = true
	g.startX, g.startY = x, y
	g.lastX, g.lastY = x, y
	if n, ok := scene.HitTest(x, y); ok {
		g.deviceID = n.DeviceID
		g.origin = domain.NewPosition(n.Rect.X, n.Rect.Y)
	}
}

// Move tracks the pointer. Once the threshold is crossed the gesture stays a
// drag even if the pointer returns to where it started.
func (g *Gesture) Move(x, y float64) {
	if !g.pressed {
		return
	}
	g.lastX, g.lastY = x, y
	if chebyshev(x-g.startX, y-g.startY) >= g.threshold {
		g.dragging = true
	}
}

// Release completes the gesture and emits its event
func (g *Gesture) Release(x, y float64) Outcome {
	if !g.pressed {
		return OutcomeNone
	}
	g.Move(x, y)
	defer g.reset()

	switch {
	case g.deviceID == "" && g.dragging:
		return OutcomeNone
	case g.deviceID == "":
		g.sink.BackgroundClick()
		return OutcomeBackground
	case g.dragging:
		pos := g.dropPosition()
		g.sink.DragEnd(g.deviceID, pos.X, pos.Y)
		return OutcomeDrag
	default:
		g.sink.Click(g.deviceID)
		return OutcomeClick
	}
}

// Cancel abandons the gesture without emitting anything
func (g *Gesture) Cancel() {
	g.reset()
}

// Active reports whether a press is in progress
func (g *Gesture) Active() bool {
	return g.pressed
}

// Preview returns where the pressed device would land if released now. It is
// false unless a device is being dragged.
func (g *Gesture) Preview() (string, domain.Position, bool) {
	if !g.pressed || !g.dragging || g.deviceID == "" {
		return "", domain.Position{}, false
	}
	return g.deviceID, g.dropPosition(), true
}

func (g *Gesture) dropPosition() domain.Position {
	return domain.NewPosition(g.origin.X+g.lastX-g.startX, g.origin.Y+g.lastY-g.startY)
}

func (g *Gesture) reset() {
	sink, threshold := g.sink, g.threshold
	*g = Gesture{sink: sink, threshold: threshold}
}

func chebyshev(dx, dy float64) float64 {
	return math.Max(math.Abs(dx), math.Abs(dy))
}
