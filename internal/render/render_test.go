package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netcanvas/internal/domain"
	"netcanvas/internal/editor"
)

type event struct {
	kind string
	id   string
	x, y float64
}

type fakeSink struct {
	events []event
}

func (s *fakeSink) DragEnd(id string, x, y float64) bool {
	s.events = append(s.events, event{kind: "drag", id: id, x: x, y: y})
	return true
}

func (s *fakeSink) Click(id string) *domain.Link {
	s.events = append(s.events, event{kind: "click", id: id})
	return nil
}

func (s *fakeSink) BackgroundClick() {
	s.events = append(s.events, event{kind: "background"})
}

func testScene() Scene {
	topo := domain.NewTopology()
	topo.AddDevice(*domain.NewDevice("a", "Alpha", domain.CategoryRouter, domain.NewPosition(0, 0)))
	topo.AddDevice(*domain.NewDevice("b", "Beta", domain.CategorySwitch, domain.NewPosition(60, 25)))
	topo.AddDevice(*domain.NewDevice("c", "Gamma", domain.CategoryPC, domain.NewPosition(300, 200)))
	topo.AddLink(domain.Link{ID: "l1", SourceID: "a", TargetID: "c"})

	snap := editor.Snapshot{Topology: topo, Selection: editor.LinkPending{Source: "a"}, Segments: topo.Segments()}
	return BuildScene(snap, 800, 600)
}

func TestBuildScene(t *testing.T) {
	s := testScene()

	assert.Equal(t, 800.0, s.Width)
	require.Len(t, s.Nodes, 3)
	assert.Equal(t, Rect{X: 0, Y: 0, W: 100, H: 50}, s.Nodes[0].Rect)
	assert.Equal(t, "Alpha", s.Nodes[0].Label)
	assert.Equal(t, StateLinkSource, s.Nodes[0].State)
	assert.Equal(t, StateNormal, s.Nodes[1].State)
	require.Len(t, s.Links, 1)
	assert.Equal(t, domain.Point{X: 350, Y: 225}, s.Links[0].To)
	assert.Equal(t, editor.KindLinkPending, s.Highlight.State)

	t.Run("editing only highlights the target", func(t *testing.T) {
		snap := editor.Snapshot{Topology: domain.NewTopology(), Selection: editor.EditingOnly{Target: "x"}}
		snap.Topology.AddDevice(*domain.NewDevice("x", "X", domain.CategoryPC, domain.NewPosition(0, 0)))
		scene := BuildScene(snap, 100, 100)
		assert.Equal(t, StateEditing, scene.Nodes[0].State)
		assert.NotNil(t, scene.Links)
	})
}

func TestHitTest(t *testing.T) {
	s := testScene()

	tests := []struct {
		name   string
		x, y   float64
		want   string
		wantOK bool
	}{
		{"inside first", 10, 10, "a", true},
		{"overlap picks topmost", 80, 30, "b", true},
		{"edge is inside", 100, 50, "b", true},
		{"empty canvas", 500, 500, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := s.HitTest(tt.x, tt.y)
			if ok != tt.wantOK || n.DeviceID != tt.want {
				t.Errorf("HitTest(%v, %v) = (%q, %v), want (%q, %v)", tt.x, tt.y, n.DeviceID, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestGesture(t *testing.T) {
	s := testScene()

	t.Run("press and release is a click", func(t *testing.T) {
		sink := &fakeSink{}
		g := NewGesture(sink, 3)

		g.Press(s, 310, 210)
		out := g.Release(311, 211)

		assert.Equal(t, OutcomeClick, out)
		assert.Equal(t, []event{{kind: "click", id: "c"}}, sink.events)
		assert.False(t, g.Active())
	})

	t.Run("travel past the threshold is a drag to an absolute position", func(t *testing.T) {
		sink := &fakeSink{}
		g := NewGesture(sink, 3)

		g.Press(s, 310, 210)
		g.Move(330, 250)
		id, pos, ok := g.Preview()
		require.True(t, ok)
		assert.Equal(t, "c", id)
		assert.Equal(t, domain.NewPosition(320, 240), pos)

		out := g.Release(350, 260)

		assert.Equal(t, OutcomeDrag, out)
		assert.Equal(t, []event{{kind: "drag", id: "c", x: 340, y: 250}}, sink.events)
	})

	t.Run("drag back to the start still drags", func(t *testing.T) {
		sink := &fakeSink{}
		g := NewGesture(sink, 3)

		g.Press(s, 10, 10)
		g.Move(40, 10)
		out := g.Release(10, 10)

		assert.Equal(t, OutcomeDrag, out)
		assert.Equal(t, []event{{kind: "drag", id: "a", x: 0, y: 0}}, sink.events)
	})

	t.Run("background click", func(t *testing.T) {
		sink := &fakeSink{}
		g := NewGesture(sink, 3)

		g.Press(s, 700, 500)
		out := g.Release(700, 500)

		assert.Equal(t, OutcomeBackground, out)
		assert.Equal(t, []event{{kind: "background"}}, sink.events)
	})

	t.Run("drag across empty canvas emits nothing", func(t *testing.T) {
		sink := &fakeSink{}
		g := NewGesture(sink, 3)

		g.Press(s, 700, 500)
		out := g.Release(750, 550)

		assert.Equal(t, OutcomeNone, out)
		assert.Empty(t, sink.events)
	})

	t.Run("release without press", func(t *testing.T) {
		sink := &fakeSink{}
		g := NewGesture(sink, 3)

		assert.Equal(t, OutcomeNone, g.Release(10, 10))
		assert.Empty(t, sink.events)
	})

	t.Run("cancel drops the gesture", func(t *testing.T) {
		sink := &fakeSink{}
		g := NewGesture(sink, 0)

		g.Press(s, 10, 10)
		g.Cancel()
		g.Release(10, 10)

		assert.Empty(t, sink.events)
	})
}

func TestGestureDrivesEditor(t *testing.T) {
	e := editor.New(editor.WithTopology(domain.DefaultSeed(domain.NewCounterGenerator(1))))
	g := NewGesture(e, DefaultDragThreshold)
	scene := func() Scene { return BuildScene(e.Snapshot(), 800, 600) }

	router := e.Devices()[0]
	sw := e.Devices()[1]

	g.Press(scene(), 60, 60)
	g.Release(60, 60)
	assert.Equal(t, editor.LinkPending{Source: router.ID}, e.Selection())

	g.Press(scene(), 210, 160)
	g.Release(210, 160)
	require.Len(t, e.Links(), 1)
	assert.Equal(t, editor.Idle{}, e.Selection())

	g.Press(scene(), 210, 160)
	g.Release(260, 160)
	moved, _ := e.Device(sw.ID)
	assert.Equal(t, domain.NewPosition(250, 150), moved.Position)
	assert.Equal(t, editor.Idle{}, e.Selection(), "a drag never clicks")
}

func TestWriteSVG(t *testing.T) {
	s := testScene()
	s.Nodes[1].Label = "<b&b>"

	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, s))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" width="800" height="600"`))
	assert.Equal(t, 3, strings.Count(out, "<rect "))
	assert.Equal(t, 1, strings.Count(out, "<line "))
	assert.Contains(t, out, `x1="50" y1="25" x2="350" y2="225"`)
	assert.Contains(t, out, "&lt;b&amp;b&gt;")
	assert.Contains(t, out, `fill="#ffd27f"`)
	assert.True(t, strings.Index(out, "<line ") < strings.Index(out, "<rect "), "links are drawn under devices")
}

func TestGrid(t *testing.T) {
	topo := domain.NewTopology()
	topo.AddDevice(*domain.NewDevice("a", "Core", domain.CategoryRouter, domain.NewPosition(0, 0)))
	topo.AddDevice(*domain.NewDevice("b", "Edge", domain.CategorySwitch, domain.NewPosition(200, 0)))
	topo.AddLink(domain.Link{ID: "l", SourceID: "a", TargetID: "b"})
	scene := BuildScene(editor.Snapshot{Topology: topo, Selection: editor.Idle{}, Segments: topo.Segments()}, 400, 100)

	g := NewGrid(scene)

	assert.Equal(t, 40, g.Cols)
	assert.Equal(t, 4, g.Rows)

	lines := strings.Split(g.String(), "\n")
	require.Len(t, lines, 4)
	blank := strings.Repeat(" ", 10)
	assert.Equal(t, "   Core   "+blank+"   Edge   "+blank, lines[0])
	assert.Equal(t, "  Router  ----------  Switch  "+blank, lines[1])

	assert.Equal(t, CellNode, g.At(0, 0).Kind)
	assert.Equal(t, "a", g.At(0, 0).DeviceID)
	assert.Equal(t, CellLink, g.At(12, 1).Kind)
	assert.Equal(t, CellEmpty, g.At(12, 0).Kind)
	assert.Equal(t, CellEmpty, g.At(39, 3).Kind)
	assert.Equal(t, ' ', g.At(-1, 0).Ch)

	t.Run("cell centers map back onto nodes", func(t *testing.T) {
		x, y := ToCanvas(9, 1)
		n, ok := scene.HitTest(x, y)
		require.True(t, ok)
		assert.Equal(t, "a", n.DeviceID)

		x, y = ToCanvas(10, 1)
		_, ok = scene.HitTest(x, y)
		assert.False(t, ok)
	})
}
