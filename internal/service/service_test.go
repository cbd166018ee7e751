package service

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netcanvas/internal/domain"
	"netcanvas/internal/editor"
	"netcanvas/internal/propedit"
	"netcanvas/internal/render"
)

func newTestSession(t *testing.T) (*Session, chan Event) {
	t.Helper()
	ed := editor.New(
		editor.WithIDGenerator(domain.NewCounterGenerator(1)),
		editor.WithTopology(domain.DefaultSeed(domain.NewCounterGenerator(100))),
	)
	bus := NewEventBus()
	events := make(chan Event, 64)
	bus.Subscribe(events)
	return NewSession(ed, bus, Canvas{Width: 800, Height: 600, DragThreshold: 3}, nil), events
}

func drain(ch chan Event) []EventType {
	var types []EventType
	for {
		select {
		case e := <-ch:
			types = append(types, e.Type)
		default:
			return types
		}
	}
}

func TestEventBus(t *testing.T) {
	t.Run("delivers to every subscriber", func(t *testing.T) {
		bus := NewEventBus()
		a := make(chan Event, 1)
		b := make(chan Event, 1)
		bus.Subscribe(a)
		bus.Subscribe(b)

		bus.Publish(Event{Type: EventDeviceAdded})

		if (<-a).Type != EventDeviceAdded || (<-b).Type != EventDeviceAdded {
			t.Error("expected both subscribers to receive the event")
		}
	})

	t.Run("slow subscribers are skipped", func(t *testing.T) {
		bus := NewEventBus()
		full := make(chan Event)
		bus.Subscribe(full)
		bus.Publish(Event{Type: EventLinkCreated})
	})

	t.Run("unsubscribe stops delivery", func(t *testing.T) {
		bus := NewEventBus()
		ch := make(chan Event, 1)
		bus.Subscribe(ch)
		bus.Unsubscribe(ch)
		bus.Publish(Event{Type: EventLinkCreated})
		if len(ch) != 0 {
			t.Errorf("expected no events after unsubscribe, got %d", len(ch))
		}
	})
}

func TestSessionClick(t *testing.T) {
	s, events := newTestSession(t)
	devices := s.Topology().Devices
	router, sw := devices[0], devices[1]

	link, view, err := s.Click(router.ID)
	require.NoError(t, err)
	assert.Nil(t, link)
	assert.Equal(t, editor.KindLinkPending, view.State)
	assert.Equal(t, "Edit: Router0", s.Form().Title)

	link, view, err = s.Click(sw.ID)
	require.NoError(t, err)
	require.NotNil(t, link)
	assert.Equal(t, router.ID, link.SourceID)
	assert.Equal(t, editor.KindIdle, view.State)
	assert.True(t, s.Form().Placeholder)

	assert.Equal(t, []EventType{EventSelectionChanged, EventLinkCreated, EventSelectionChanged}, drain(events))

	t.Run("unknown device", func(t *testing.T) {
		_, _, err := s.Click("ghost")
		assert.True(t, errors.Is(err, editor.ErrUnknownDevice))
		assert.Empty(t, drain(events))
	})
}

func TestSessionDrag(t *testing.T) {
	s, events := newTestSession(t)
	router := s.Topology().Devices[0]

	moved, err := s.Drag(router.ID, 400, 300)
	require.NoError(t, err)
	assert.Equal(t, domain.NewPosition(400, 300), moved.Position)
	assert.Equal(t, []EventType{EventDeviceMoved}, drain(events))

	_, err = s.Drag("ghost", 1, 1)
	assert.ErrorIs(t, err, editor.ErrUnknownDevice)
}

func TestSessionForm(t *testing.T) {
	s, events := newTestSession(t)
	router := s.Topology().Devices[0]

	_, err := s.SetField("name", "core")
	assert.ErrorIs(t, err, ErrNothingSelected)
	_, err = s.Submit()
	assert.ErrorIs(t, err, ErrNothingSelected)

	_, _, err = s.Click(router.ID)
	require.NoError(t, err)
	drain(events)

	_, err = s.SetField("colour", "red")
	assert.ErrorIs(t, err, propedit.ErrUnknownField)

	view, err := s.SetField("name", "core")
	require.NoError(t, err)
	assert.True(t, view.Dirty)

	view, err = s.Submit()
	require.NoError(t, err)
	assert.False(t, view.Dirty)
	assert.Equal(t, "Edit: core", view.Title)
	assert.Equal(t, "core", s.Topology().Devices[0].Name)

	assert.Equal(t, []EventType{EventFormChanged, EventDeviceUpdated, EventFormChanged}, drain(events))

	sel := s.Deselect()
	assert.Equal(t, editor.KindIdle, sel.State)
	assert.True(t, s.Form().Placeholder)
}

func TestSessionPointer(t *testing.T) {
	s, _ := newTestSession(t)
	router := s.Topology().Devices[0]

	_, err := s.Pointer(PointerPress, 60, 60)
	require.NoError(t, err)
	_, err = s.Pointer(PointerMove, 90, 60)
	require.NoError(t, err)
	id, at, ok := s.DragPreview()
	require.True(t, ok)
	assert.Equal(t, router.ID, id)
	assert.Equal(t, domain.NewPosition(80, 50), at)
	out, err := s.Pointer(PointerRelease, 110, 70)
	require.NoError(t, err)
	assert.Equal(t, render.OutcomeDrag, out)

	d := s.Topology().Devices[0]
	assert.Equal(t, router.ID, d.ID)
	assert.Equal(t, domain.NewPosition(100, 60), d.Position)

	_, err = s.Pointer(PointerPress, 700, 500)
	require.NoError(t, err)
	out, err = s.Pointer(PointerRelease, 700, 500)
	require.NoError(t, err)
	assert.Equal(t, render.OutcomeBackground, out)

	_, err = s.Pointer("hover", 0, 0)
	assert.Error(t, err)
}

func TestSessionScene(t *testing.T) {
	s, _ := newTestSession(t)
	scene := s.Scene()

	assert.Equal(t, 800.0, scene.Width)
	assert.Len(t, scene.Nodes, 2)
	assert.Empty(t, scene.Links)
}

func TestSessionExport(t *testing.T) {
	s, _ := newTestSession(t)

	var buf bytes.Buffer
	require.NoError(t, s.Export("yaml", &buf))
	assert.Contains(t, buf.String(), "name: Router0")

	assert.Error(t, s.Export("xml", &buf))
}

func TestSessionConcurrentUse(t *testing.T) {
	s, _ := newTestSession(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				d := s.AddDevice()
				_, _, _ = s.Click(d.ID)
				_ = s.Scene()
			}
		}()
	}
	wg.Wait()

	topo := s.Topology()
	assert.Len(t, topo.Devices, 2+8*25)
	for _, l := range topo.Links {
		assert.NotEqual(t, l.SourceID, l.TargetID)
	}
}
