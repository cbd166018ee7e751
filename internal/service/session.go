package service

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"netcanvas/internal/codec"
	"netcanvas/internal/domain"
	"netcanvas/internal/editor"
	"netcanvas/internal/propedit"
	"netcanvas/internal/render"
)

// ErrNothingSelected is returned when a form action needs an editing target
var ErrNothingSelected = errors.New("no device is being edited")

// PointerKind is a raw pointer event type
type PointerKind string

const (
	PointerPress   PointerKind = "press"
	PointerMove    PointerKind = "move"
	PointerRelease PointerKind = "release"
)

// Canvas is the drawing surface size and gesture tuning of a session
type Canvas struct {
	Width         float64
	Height        float64
	DragThreshold float64
}

// Session serializes access to one editor and its property form
type Session struct {
	mu      sync.Mutex
	editor  *editor.Editor
	form    *propedit.Form
	gesture *render.Gesture
	canvas  Canvas
	bus     *EventBus
	logger  *slog.Logger
	pending []Event
}

// NewSession binds a property form to ed and takes ownership of it. Callers
// must not use ed directly afterwards.
func NewSession(ed *editor.Editor, bus *EventBus, canvas Canvas, logger *slog.Logger) *Session {
	if bus == nil {
		bus = NewEventBus()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s := &Session{
		editor:  ed,
		canvas:  canvas,
		bus:     bus,
		logger:  logger,
		gesture: render.NewGesture(ed, canvas.DragThreshold),
	}
	s.form = propedit.New(ed)
	ed.Subscribe(editor.ObserverFunc(func(c editor.Change) {
		s.pending = append(s.pending, EventFromChange(c))
	}))
	ed.Bind(s.form)
	return s
}

// Events returns the bus changes are published on
func (s *Session) Events() *EventBus {
	return s.bus
}

// do runs fn under the session lock and publishes what it produced once the
// lock is released
func (s *Session) do(fn func()) {
	s.mu.Lock()
	fn()
	events := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, e := range events {
		s.bus.Publish(e)
	}
}

// Topology returns a copy of devices and links
func (s *Session) Topology() *domain.Topology {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor.Topology()
}

// Selection returns the interaction state
func (s *Session) Selection() editor.SelectionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return editor.Describe(s.editor.Selection())
}

// Scene returns the derived drawing of the canvas
func (s *Session) Scene() render.Scene {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scene()
}

func (s *Session) scene() render.Scene {
	return render.BuildScene(s.editor.Snapshot(), s.canvas.Width, s.canvas.Height)
}

// AddDevice adds a device with default attributes
func (s *Session) AddDevice() domain.Device {
	var d domain.Device
	s.do(func() {
		d = s.editor.AddDevice()
	})
	s.logger.Info("device added", "device_id", d.ID)
	return d
}

// Drag moves a device to an absolute position
func (s *Session) Drag(id string, x, y float64) (domain.Device, error) {
	var (
		d  domain.Device
		ok bool
	)
	s.do(func() {
		if s.editor.DragEnd(id, x, y) {
			d, ok = s.editor.Device(id)
		}
	})
	if !ok {
		return domain.Device{}, fmt.Errorf("drag %s: %w", id, editor.ErrUnknownDevice)
	}
	return d, nil
}

// Click runs the click state machine. The returned link is nil unless the
// click completed one.
func (s *Session) Click(id string) (*domain.Link, editor.SelectionView, error) {
	var (
		link    *domain.Link
		view    editor.SelectionView
		unknown bool
	)
	s.do(func() {
		if _, ok := s.editor.Device(id); !ok {
			unknown = true
			return
		}
		link = s.editor.Click(id)
		view = editor.Describe(s.editor.Selection())
	})
	if unknown {
		return nil, editor.SelectionView{}, fmt.Errorf("click %s: %w", id, editor.ErrUnknownDevice)
	}
	if link != nil {
		s.logger.Info("link created", "link_id", link.ID, "source", link.SourceID, "target", link.TargetID)
	}
	return link, view, nil
}

// BackgroundClick clears the selection as a click on empty canvas does
func (s *Session) BackgroundClick() editor.SelectionView {
	var view editor.SelectionView
	s.do(func() {
		s.editor.BackgroundClick()
		view = editor.Describe(s.editor.Selection())
	})
	return view
}

// Pointer feeds one raw pointer event through the canvas gesture. Presses
// hit-test the scene as it is at that moment.
func (s *Session) Pointer(kind PointerKind, x, y float64) (render.Outcome, error) {
	outcome := render.OutcomeNone
	var err error
	s.do(func() {
		switch kind {
		case PointerPress:
			s.gesture.Press(s.scene(), x, y)
		case PointerMove:
			s.gesture.Move(x, y)
		case PointerRelease:
			outcome = s.gesture.Release(x, y)
		default:
			err = fmt.Errorf("unknown pointer event %q", kind)
		}
	})
	return outcome, err
}

// DragPreview returns where the dragged device would land if the pointer
// were released now
func (s *Session) DragPreview() (string, domain.Position, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gesture.Preview()
}

// Form returns the property editor view
func (s *Session) Form() propedit.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form.View()
}

// SetField edits one draft field of the property form
func (s *Session) SetField(field, value string) (propedit.View, error) {
	f, err := propedit.ParseField(field)
	if err != nil {
		return propedit.View{}, err
	}

	var view propedit.View
	s.do(func() {
		if _, ok := s.form.Editing(); !ok {
			err = ErrNothingSelected
			return
		}
		err = s.form.SetField(f, value)
		view = s.form.View()
		s.pending = append(s.pending, Event{Type: EventFormChanged, Payload: view})
	})
	return view, err
}

// Submit sends the draft to the editor
func (s *Session) Submit() (propedit.View, error) {
	var (
		view propedit.View
		err  error
	)
	s.do(func() {
		if !s.form.Submit() {
			err = ErrNothingSelected
			return
		}
		view = s.form.View()
		s.pending = append(s.pending, Event{Type: EventFormChanged, Payload: view})
	})
	return view, err
}

// Deselect clears the selection from the property form
func (s *Session) Deselect() editor.SelectionView {
	var view editor.SelectionView
	s.do(func() {
		s.form.Deselect()
		view = editor.Describe(s.editor.Selection())
	})
	return view
}

// Export writes the topology in the given format
func (s *Session) Export(format string, w io.Writer) error {
	exp, err := codec.ForFormat(format)
	if err != nil {
		return err
	}
	return exp.Export(s.Topology(), w)
}
