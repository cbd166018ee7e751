// Package propedit implements the property editor: a form bound to exactly one
// device snapshot at a time, with a transient draft that is submitted back to
// the topology editor as a full record.
package propedit

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"netcanvas/internal/domain"
)

// Placeholder is shown when no device is being edited
const Placeholder = "Click a device to edit its properties."

// ErrUnknownField is returned by SetField for names outside the field list
var ErrUnknownField = errors.New("unknown field")

// Field names a draft attribute
type Field string

const (
	FieldName              Field = "name"
	FieldCategory          Field = "category"
	FieldNumPorts          Field = "num_ports"
	FieldTotalBandwidth    Field = "total_bandwidth"
	FieldThroughputPerPort Field = "throughput_per_port"
	FieldEstimatedLoad     Field = "estimated_load"
)

// Fields lists the form fields in display order
var Fields = []Field{
	FieldName,
	FieldCategory,
	FieldNumPorts,
	FieldTotalBandwidth,
	FieldThroughputPerPort,
	FieldEstimatedLoad,
}

var labels = map[Field]string{
	FieldName:              "Name",
	FieldCategory:          "Type",
	FieldNumPorts:          "Number of Ports",
	FieldTotalBandwidth:    "Total Bandwidth (Mbps)",
	FieldThroughputPerPort: "Throughput per Port (Mbps)",
	FieldEstimatedLoad:     "Estimated Load (Mbps)",
}

// Label returns the display label for a field
func (f Field) Label() string {
	return labels[f]
}

// ParseField matches a field name, ignoring case and surrounding space
func ParseField(s string) (Field, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, f := range Fields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// Intents receives the form's outgoing events. The topology editor
// implements it.
type Intents interface {
	UpdateProperties(id string, record domain.DeviceRecord) bool
	Deselect()
}

// Form holds the snapshot being edited and the unsaved draft
type Form struct {
	intents Intents
	target  *domain.Device
	base    domain.DeviceRecord
	draft   domain.DeviceRecord
}

// New creates a form in the placeholder state
func New(intents Intents) *Form {
	return &Form{intents: intents}
}

// Show binds the form to a snapshot, or to nothing when target is nil.
// A different device resets the draft. A refresh of the same device only
// reloads the draft when it has no unsaved edits.
func (f *Form) Show(target *domain.Device) {
	if target == nil {
		f.target = nil
		f.base = domain.DeviceRecord{}
		f.draft = domain.DeviceRecord{}
		return
	}

	snapshot := *target
	sameDevice := f.target != nil && f.target.ID == snapshot.ID
	dirty := f.Dirty()
	f.target = &snapshot
	if sameDevice && dirty {
		return
	}
	f.base = snapshot.Record()
	f.draft = f.base
}

// Editing returns the ID of the bound device
func (f *Form) Editing() (string, bool) {
	if f.target == nil {
		return "", false
	}
	return f.target.ID, true
}

// Target returns the bound snapshot
func (f *Form) Target() (domain.Device, bool) {
	if f.target == nil {
		return domain.Device{}, false
	}
	return *f.target, true
}

// Draft returns the unsaved record
func (f *Form) Draft() (domain.DeviceRecord, bool) {
	if f.target == nil {
		return domain.DeviceRecord{}, false
	}
	return f.draft, true
}

// Dirty reports whether the draft differs from the last loaded or submitted
// values
func (f *Form) Dirty() bool {
	return f.target != nil && f.draft != f.base
}

// SetField updates one draft attribute from raw text input. Numbers that are
// empty, unparsable or negative become 0. Unknown category names leave the
// draft unchanged. Setting a field in the placeholder state does nothing.
func (f *Form) SetField(field Field, raw string) error {
	if _, ok := labels[field]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	if f.target == nil {
		return nil
	}

	switch field {
	case FieldName:
		f.draft.Name = raw
	case FieldCategory:
		if c, ok := domain.ParseCategory(raw); ok {
			f.draft.Category = c
		}
	case FieldNumPorts:
		f.draft.Properties.NumPorts = parseNumber(raw)
	case FieldTotalBandwidth:
		f.draft.Properties.TotalBandwidth = parseNumber(raw)
	case FieldThroughputPerPort:
		f.draft.Properties.ThroughputPerPort = parseNumber(raw)
	case FieldEstimatedLoad:
		f.draft.Properties.EstimatedLoad = parseNumber(raw)
	}
	return nil
}

// Submit sends the complete draft to the editor. The draft is marked clean
// first so the refresh that follows loads the merged values.
func (f *Form) Submit() bool {
	if f.target == nil || f.intents == nil {
		return false
	}
	id := f.target.ID
	record := f.draft
	f.base = f.draft
	return f.intents.UpdateProperties(id, record)
}

// Deselect asks the editor to clear the selection
func (f *Form) Deselect() {
	if f.intents != nil {
		f.intents.Deselect()
	}
}

// Value returns the draft value of a field as display text
func (f *Form) Value(field Field) string {
	return fieldValue(f.draft, field)
}

func parseNumber(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return domain.NonNegative(v)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func fieldValue(r domain.DeviceRecord, field Field) string {
	switch field {
	case FieldName:
		return r.Name
	case FieldCategory:
		return string(r.Category)
	case FieldNumPorts:
		return formatNumber(r.Properties.NumPorts)
	case FieldTotalBandwidth:
		return formatNumber(r.Properties.TotalBandwidth)
	case FieldThroughputPerPort:
		return formatNumber(r.Properties.ThroughputPerPort)
	case FieldEstimatedLoad:
		return formatNumber(r.Properties.EstimatedLoad)
	}
	return ""
}
