// Package render projects editor state onto drawable shapes and turns raw
// pointer input into editor events. It owns no model state.
package render

import (
	"netcanvas/internal/domain"
	"netcanvas/internal/editor"
)

// NodeState is how a node is highlighted
type NodeState string

const (
	StateNormal     NodeState = "normal"
	StateLinkSource NodeState = "link_source"
	StateEditing    NodeState = "editing"
)

// Rect is an axis-aligned box in canvas units
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Contains reports whether (x, y) lies inside r, edges included
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Node is the drawable form of one device
type Node struct {
	DeviceID string          `json:"device_id"`
	Label    string          `json:"label"`
	Category domain.Category `json:"category"`
	Rect     Rect            `json:"rect"`
	State    NodeState       `json:"state"`
}

// NodeFor builds the fixed-size labeled box for a device
func NodeFor(d domain.Device) Node {
	return Node{
		DeviceID: d.ID,
		Label:    d.Name,
		Category: d.Category,
		Rect:     Rect{X: d.Position.X, Y: d.Position.Y, W: domain.NodeWidth, H: domain.NodeHeight},
		State:    StateNormal,
	}
}

// Scene is everything needed to draw the canvas. Nodes are in draw order.
type Scene struct {
	Width     float64              `json:"width"`
	Height    float64              `json:"height"`
	Nodes     []Node               `json:"nodes"`
	Links     []domain.LinkSegment `json:"links"`
	Highlight editor.SelectionView `json:"highlight"`
}

// BuildScene derives a scene from an editor snapshot
func BuildScene(snap editor.Snapshot, width, height float64) Scene {
	view := editor.Describe(snap.Selection)

	var devices []domain.Device
	if snap.Topology != nil {
		devices = snap.Topology.Devices
	}

	nodes := make([]Node, 0, len(devices))
	for _, d := range devices {
		n := NodeFor(d)
		switch d.ID {
		case view.LinkSource:
			n.State = StateLinkSource
		case view.EditingTarget:
			n.State = StateEditing
		}
		nodes = append(nodes, n)
	}

	links := snap.Segments
	if links == nil {
		links = []domain.LinkSegment{}
	}

	return Scene{
		Width:     width,
		Height:    height,
		Nodes:     nodes,
		Links:     links,
		Highlight: view,
	}
}

// HitTest returns the topmost node under (x, y). Later nodes are drawn over
// earlier ones, so the last match wins.
func (s Scene) HitTest(x, y float64) (Node, bool) {
	for i := len(s.Nodes) - 1; i >= 0; i-- {
		if s.Nodes[i].Rect.Contains(x, y) {
			return s.Nodes[i], true
		}
	}
	return Node{}, false
}

// Node returns the node for a device
func (s Scene) Node(id string) (Node, bool) {
	for _, n := range s.Nodes {
		if n.DeviceID == id {
			return n, true
		}
	}
	return Node{}, false
}
