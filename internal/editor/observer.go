package editor

import "netcanvas/internal/domain"

// ChangeKind identifies what an editor operation changed
type ChangeKind string

const (
	ChangeDeviceAdded      ChangeKind = "device_added"
	ChangeDeviceMoved      ChangeKind = "device_moved"
	ChangeDeviceUpdated    ChangeKind = "device_updated"
	ChangeLinkCreated      ChangeKind = "link_created"
	ChangeSelectionChanged ChangeKind = "selection_changed"
)

// Change describes one state change. Device is set for device changes, Link
// for link creation. Selection always carries the state after the change.
type Change struct {
	Kind      ChangeKind     `json:"kind"`
	Device    *domain.Device `json:"device,omitempty"`
	Link      *domain.Link   `json:"link,omitempty"`
	Selection SelectionView  `json:"selection"`
}

// Observer is notified after each state change, once the operation that
// caused it has completed. Observers must not call back into the editor.
type Observer interface {
	EditorChanged(change Change)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(change Change)

// EditorChanged calls f
func (f ObserverFunc) EditorChanged(change Change) {
	f(change)
}

// TargetSink receives the current editing target snapshot, or nil when
// nothing is being edited. The property editor implements it.
type TargetSink interface {
	Show(target *domain.Device)
}

// Recorder receives one call per handled event. Outcome is "applied",
// "ignored" or, for clicks, the resulting selection kind.
type Recorder interface {
	RecordEvent(event, outcome string)
	RecordTopology(devices, links int)
}
