package propedit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netcanvas/internal/domain"
	"netcanvas/internal/editor"
)

type recordedUpdate struct {
	id     string
	record domain.DeviceRecord
}

type fakeIntents struct {
	updates   []recordedUpdate
	deselects int
}

func (f *fakeIntents) UpdateProperties(id string, record domain.DeviceRecord) bool {
	f.updates = append(f.updates, recordedUpdate{id: id, record: record})
	return true
}

func (f *fakeIntents) Deselect() {
	f.deselects++
}

func router() *domain.Device {
	d := domain.NewDevice("r1", "Router0", domain.CategoryRouter, domain.NewPosition(50, 50))
	d.Properties = domain.Properties{NumPorts: 4, TotalBandwidth: 1000, ThroughputPerPort: 250, EstimatedLoad: 100}
	return d
}

func TestPlaceholder(t *testing.T) {
	f := New(&fakeIntents{})

	view := f.View()
	assert.True(t, view.Placeholder)
	assert.Equal(t, "Click a device to edit its properties.", view.Prompt)
	assert.Empty(t, view.Fields)

	_, ok := f.Draft()
	assert.False(t, ok)
}

func TestShow(t *testing.T) {
	t.Run("loads the snapshot into the draft", func(t *testing.T) {
		f := New(&fakeIntents{})
		f.Show(router())

		draft, ok := f.Draft()
		require.True(t, ok)
		assert.Equal(t, router().Record(), draft)
		assert.False(t, f.Dirty())

		view := f.View()
		assert.Equal(t, "Edit: Router0", view.Title)
		require.Len(t, view.Fields, len(Fields))
		assert.Equal(t, "Router", view.Fields[1].Value)
		assert.Equal(t, "4", view.Fields[2].Value)
		assert.Equal(t, []string{"Router", "Switch", "PC", "Server", "Firewall"}, view.Fields[1].Options)
	})

	t.Run("nil clears the draft", func(t *testing.T) {
		f := New(&fakeIntents{})
		f.Show(router())
		require.NoError(t, f.SetField(FieldName, "edited"))

		f.Show(nil)

		assert.True(t, f.View().Placeholder)
		assert.False(t, f.Dirty())
	})

	t.Run("another device discards unsaved edits", func(t *testing.T) {
		f := New(&fakeIntents{})
		f.Show(router())
		require.NoError(t, f.SetField(FieldName, "edited"))

		other := domain.NewDevice("s1", "Switch0", domain.CategorySwitch, domain.NewPosition(200, 150))
		f.Show(other)

		draft, _ := f.Draft()
		assert.Equal(t, "Switch0", draft.Name)
		assert.Equal(t, domain.CategorySwitch, draft.Category)
		assert.False(t, f.Dirty())
	})

	t.Run("same device refresh keeps unsaved edits", func(t *testing.T) {
		f := New(&fakeIntents{})
		f.Show(router())
		require.NoError(t, f.SetField(FieldName, "edited"))

		moved := router().MovedTo(400, 400)
		f.Show(&moved)

		draft, _ := f.Draft()
		assert.Equal(t, "edited", draft.Name)
		target, _ := f.Target()
		assert.Equal(t, domain.NewPosition(400, 400), target.Position)
	})

	t.Run("same device refresh reloads a clean draft", func(t *testing.T) {
		f := New(&fakeIntents{})
		f.Show(router())

		renamed := *router()
		renamed.Name = "core"
		f.Show(&renamed)

		draft, _ := f.Draft()
		assert.Equal(t, "core", draft.Name)
		assert.Equal(t, "Edit: core", f.View().Title)
	})

	t.Run("snapshot is copied", func(t *testing.T) {
		f := New(&fakeIntents{})
		d := router()
		f.Show(d)
		d.Name = "mutated"

		target, _ := f.Target()
		assert.Equal(t, "Router0", target.Name)
	})
}

func TestSetField(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		raw   string
		check func(t *testing.T, r domain.DeviceRecord)
	}{
		{"name verbatim", FieldName, "  edge  ", func(t *testing.T, r domain.DeviceRecord) {
			assert.Equal(t, "  edge  ", r.Name)
		}},
		{"category ignores case", FieldCategory, "firewall", func(t *testing.T, r domain.DeviceRecord) {
			assert.Equal(t, domain.CategoryFirewall, r.Category)
		}},
		{"unknown category is ignored", FieldCategory, "Toaster", func(t *testing.T, r domain.DeviceRecord) {
			assert.Equal(t, domain.CategoryRouter, r.Category)
		}},
		{"number parses", FieldNumPorts, "48", func(t *testing.T, r domain.DeviceRecord) {
			assert.Equal(t, 48.0, r.Properties.NumPorts)
		}},
		{"fraction parses", FieldTotalBandwidth, "2.5", func(t *testing.T, r domain.DeviceRecord) {
			assert.Equal(t, 2.5, r.Properties.TotalBandwidth)
		}},
		{"empty becomes zero", FieldThroughputPerPort, "", func(t *testing.T, r domain.DeviceRecord) {
			assert.Zero(t, r.Properties.ThroughputPerPort)
		}},
		{"garbage becomes zero", FieldEstimatedLoad, "lots", func(t *testing.T, r domain.DeviceRecord) {
			assert.Zero(t, r.Properties.EstimatedLoad)
		}},
		{"negative becomes zero", FieldEstimatedLoad, "-7", func(t *testing.T, r domain.DeviceRecord) {
			assert.Zero(t, r.Properties.EstimatedLoad)
		}},
		{"NaN becomes zero", FieldNumPorts, "NaN", func(t *testing.T, r domain.DeviceRecord) {
			assert.Zero(t, r.Properties.NumPorts)
		}},
		{"infinity becomes zero", FieldNumPorts, "+Inf", func(t *testing.T, r domain.DeviceRecord) {
			assert.Zero(t, r.Properties.NumPorts)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New(&fakeIntents{})
			f.Show(router())
			require.NoError(t, f.SetField(tt.field, tt.raw))
			draft, _ := f.Draft()
			tt.check(t, draft)
		})
	}

	t.Run("unknown field", func(t *testing.T) {
		f := New(&fakeIntents{})
		f.Show(router())
		err := f.SetField("colour", "red")
		assert.True(t, errors.Is(err, ErrUnknownField))
	})

	t.Run("placeholder ignores edits", func(t *testing.T) {
		f := New(&fakeIntents{})
		require.NoError(t, f.SetField(FieldName, "x"))
		assert.True(t, f.View().Placeholder)
	})

	t.Run("marks the edited field dirty", func(t *testing.T) {
		f := New(&fakeIntents{})
		f.Show(router())
		require.NoError(t, f.SetField(FieldNumPorts, "16"))

		view := f.View()
		assert.True(t, view.Dirty)
		assert.False(t, view.Fields[0].Dirty)
		assert.True(t, view.Fields[2].Dirty)
	})
}

func TestParseField(t *testing.T) {
	f, err := ParseField(" Estimated_Load ")
	require.NoError(t, err)
	assert.Equal(t, FieldEstimatedLoad, f)

	_, err = ParseField("ports")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestSubmit(t *testing.T) {
	t.Run("emits the complete draft", func(t *testing.T) {
		intents := &fakeIntents{}
		f := New(intents)
		f.Show(router())
		require.NoError(t, f.SetField(FieldName, "edge"))
		require.NoError(t, f.SetField(FieldCategory, "Firewall"))

		require.True(t, f.Submit())

		require.Len(t, intents.updates, 1)
		got := intents.updates[0]
		assert.Equal(t, "r1", got.id)
		assert.Equal(t, "edge", got.record.Name)
		assert.Equal(t, domain.CategoryFirewall, got.record.Category)
		assert.Equal(t, router().Properties, got.record.Properties)
		assert.False(t, f.Dirty())
	})

	t.Run("placeholder does nothing", func(t *testing.T) {
		intents := &fakeIntents{}
		f := New(intents)

		assert.False(t, f.Submit())
		assert.Empty(t, intents.updates)
	})
}

func TestDeselect(t *testing.T) {
	intents := &fakeIntents{}
	f := New(intents)
	f.Show(router())

	f.Deselect()

	assert.Equal(t, 1, intents.deselects)
	assert.Empty(t, intents.updates)
}

func TestBoundToEditor(t *testing.T) {
	e := editor.New(editor.WithTopology(domain.DefaultSeed(domain.NewCounterGenerator(1))))
	f := New(e)
	e.Bind(f)

	require.True(t, f.View().Placeholder)

	router := e.Devices()[0]
	e.Click(router.ID)
	require.Equal(t, "Edit: Router0", f.View().Title)

	t.Run("drag keeps the unsaved draft", func(t *testing.T) {
		require.NoError(t, f.SetField(FieldNumPorts, "12"))
		e.DragEnd(router.ID, 10, 20)

		assert.Equal(t, "12", f.Value(FieldNumPorts))
		target, _ := f.Target()
		assert.Equal(t, domain.NewPosition(10, 20), target.Position)
	})

	t.Run("submit merges and reloads", func(t *testing.T) {
		require.NoError(t, f.SetField(FieldName, "core"))
		require.True(t, f.Submit())

		merged, _ := e.Device(router.ID)
		assert.Equal(t, "core", merged.Name)
		assert.Equal(t, 12.0, merged.Properties.NumPorts)
		assert.Equal(t, domain.NewPosition(10, 20), merged.Position)
		assert.Equal(t, "Edit: core", f.View().Title)
		assert.False(t, f.Dirty())
	})

	t.Run("deselect returns to placeholder", func(t *testing.T) {
		f.Deselect()
		assert.True(t, f.View().Placeholder)
		assert.Equal(t, editor.Idle{}, e.Selection())
	})
}
