package editor

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"netcanvas/internal/domain"
)

// ErrUnknownDevice is returned by hosts when an event names a device that
// does not exist. The editor itself treats such events as no-ops.
var ErrUnknownDevice = errors.New("device not found")

// Default placement for added devices
const (
	DefaultDeviceX = 100
	DefaultDeviceY = 100
)

// Editor owns the topology and the interaction state. It is not safe for
// concurrent use; every method runs to completion before the next call.
type Editor struct {
	topo      *domain.Topology
	sel       Selection
	ids       domain.IDGenerator
	observers []Observer
	sinks     []TargetSink
	recorder  Recorder
	logger    *slog.Logger
}

// Option configures an Editor
type Option func(*Editor)

// WithIDGenerator sets the identifier source for devices and links
func WithIDGenerator(ids domain.IDGenerator) Option {
	return func(e *Editor) {
		e.ids = ids
	}
}

// WithTopology starts the editor from a copy of topo
func WithTopology(topo *domain.Topology) Option {
	return func(e *Editor) {
		if topo != nil {
			e.topo = topo.Clone()
		}
	}
}

// WithLogger sets the logger used for transition records
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithRecorder sets the metrics recorder
func WithRecorder(r Recorder) Option {
	return func(e *Editor) {
		e.recorder = r
	}
}

// New creates an editor in the Idle state
func New(opts ...Option) *Editor {
	e := &Editor{
		topo:   domain.NewTopology(),
		sel:    Idle{},
		ids:    domain.NewCounterGenerator(1),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.recorder != nil {
		e.recorder.RecordTopology(len(e.topo.Devices), len(e.topo.Links))
	}
	return e
}

// Subscribe registers an observer for state changes
func (e *Editor) Subscribe(o Observer) {
	e.observers = append(e.observers, o)
}

// Bind registers a property editor and pushes the current target to it
func (e *Editor) Bind(sink TargetSink) {
	e.sinks = append(e.sinks, sink)
	sink.Show(e.targetSnapshot())
}

// AddDevice appends a device with a fresh ID and default attributes
func (e *Editor) AddDevice() domain.Device {
	name := fmt.Sprintf("Device-%d", len(e.topo.Devices))
	device := domain.NewDevice(e.newID(domain.DevicePrefix), name, domain.CategoryPC,
		domain.NewPosition(DefaultDeviceX, DefaultDeviceY))
	e.topo.AddDevice(*device)

	e.logger.Debug("device added", "device_id", device.ID, "name", device.Name)
	e.record("add_device", "applied")
	e.emit(Change{Kind: ChangeDeviceAdded, Device: copyDevice(*device)})
	return *device
}

// DragEnd moves a device to an absolute position. Nothing but the position
// changes. Unknown IDs are ignored.
func (e *Editor) DragEnd(id string, x, y float64) bool {
	i := e.topo.IndexOf(id)
	if i < 0 {
		e.record("drag_end", "ignored")
		return false
	}
	e.topo.Devices[i] = e.topo.Devices[i].MovedTo(x, y)

	e.logger.Debug("device moved", "device_id", id, "x", x, "y", y)
	e.record("drag_end", "applied")
	e.emit(Change{Kind: ChangeDeviceMoved, Device: copyDevice(e.topo.Devices[i])})
	if target, ok := EditingTargetOf(e.sel); ok && target == id {
		e.push()
	}
	return true
}

// Click runs the click state machine for a device and returns the link it
// created, if any. Unknown IDs are ignored.
func (e *Editor) Click(id string) *domain.Link {
	if e.topo.IndexOf(id) < 0 {
		e.record("click", "ignored")
		return nil
	}

	prev := e.sel
	next, req := Transition(e.sel, id)
	e.sel = next

	var changes []Change
	var created *domain.Link
	if req != nil {
		link, err := domain.NewLink(e.newID(domain.LinkPrefix), req.SourceID, req.TargetID)
		if err != nil {
			// Transition never pairs a device with itself
			e.logger.Error("link rejected", "source", req.SourceID, "target", req.TargetID, "error", err)
		} else {
			e.topo.AddLink(*link)
			created = link
			l := *link
			changes = append(changes, Change{Kind: ChangeLinkCreated, Link: &l})
		}
	}
	changes = append(changes, Change{Kind: ChangeSelectionChanged})

	e.logger.Debug("device clicked", "device_id", id, "from", prev.Kind(), "to", next.Kind())
	e.record("click", string(next.Kind()))
	e.emit(changes...)
	e.push()
	return created
}

// UpdateProperties replaces the name, category and properties of a device.
// Position and ID are untouched. Applying the same record twice is the same as
// applying it once. Unknown IDs are ignored.
func (e *Editor) UpdateProperties(id string, record domain.DeviceRecord) bool {
	i := e.topo.IndexOf(id)
	if i < 0 {
		e.record("update_properties", "ignored")
		return false
	}
	e.topo.Devices[i] = e.topo.Devices[i].WithRecord(record)

	e.logger.Debug("device updated", "device_id", id, "name", record.Name, "category", record.Category)
	e.record("update_properties", "applied")
	e.emit(Change{Kind: ChangeDeviceUpdated, Device: copyDevice(e.topo.Devices[i])})
	if target, ok := EditingTargetOf(e.sel); ok && target == id {
		e.push()
	}
	return true
}

// Deselect clears the link source and the editing target
func (e *Editor) Deselect() {
	e.sel = Idle{}
	e.logger.Debug("selection cleared")
	e.record("deselect", "applied")
	e.emit(Change{Kind: ChangeSelectionChanged})
	e.push()
}

// BackgroundClick handles a click on empty canvas. It is the same as Deselect.
func (e *Editor) BackgroundClick() {
	e.Deselect()
}

// Selection returns the current interaction state
func (e *Editor) Selection() Selection {
	return e.sel
}

// LinkSource returns the armed device ID, if any
func (e *Editor) LinkSource() (string, bool) {
	return LinkSourceOf(e.sel)
}

// EditingTarget returns a snapshot of the device open in the property editor
func (e *Editor) EditingTarget() (domain.Device, bool) {
	id, ok := EditingTargetOf(e.sel)
	if !ok {
		return domain.Device{}, false
	}
	return e.topo.Device(id)
}

// Device returns a snapshot of one device
func (e *Editor) Device(id string) (domain.Device, bool) {
	return e.topo.Device(id)
}

// Devices returns a copy of the device list in insertion order
func (e *Editor) Devices() []domain.Device {
	return e.topo.Clone().Devices
}

// Links returns a copy of the link list
func (e *Editor) Links() []domain.Link {
	return e.topo.Clone().Links
}

// LinkSegments derives drawable link endpoints from the current devices
func (e *Editor) LinkSegments() []domain.LinkSegment {
	return e.topo.Segments()
}

// Topology returns a deep copy of the topology. Interaction state is not
// part of it.
func (e *Editor) Topology() *domain.Topology {
	return e.topo.Clone()
}

// Snapshot is a consistent copy of everything a host needs to render
type Snapshot struct {
	Topology  *domain.Topology
	Selection Selection
	Segments  []domain.LinkSegment
}

// Snapshot returns a consistent copy of the editor state
func (e *Editor) Snapshot() Snapshot {
	return Snapshot{
		Topology:  e.topo.Clone(),
		Selection: e.sel,
		Segments:  e.topo.Segments(),
	}
}

func (e *Editor) newID(prefix string) string {
	for {
		id := e.ids.NewID(prefix)
		if e.topo.IndexOf(id) < 0 && !e.topo.HasLink(id) {
			return id
		}
	}
}

func (e *Editor) targetSnapshot() *domain.Device {
	target, ok := e.EditingTarget()
	if !ok {
		return nil
	}
	return &target
}

func (e *Editor) push() {
	for _, sink := range e.sinks {
		sink.Show(e.targetSnapshot())
	}
}

func (e *Editor) emit(changes ...Change) {
	view := Describe(e.sel)
	for _, change := range changes {
		change.Selection = view
		for _, o := range e.observers {
			o.EditorChanged(change)
		}
	}
}

func (e *Editor) record(event, outcome string) {
	if e.recorder == nil {
		return
	}
	e.recorder.RecordEvent(event, outcome)
	e.recorder.RecordTopology(len(e.topo.Devices), len(e.topo.Links))
}

func copyDevice(d domain.Device) *domain.Device {
	return &d
}
