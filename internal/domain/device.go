package domain

import (
	"math"
	"strings"
)

// Category represents the kind of network device
type Category string

const (
	CategoryRouter   Category = "Router"
	CategorySwitch   Category = "Switch"
	CategoryPC       Category = "PC"
	CategoryServer   Category = "Server"
	CategoryFirewall Category = "Firewall"
)

// Categories lists every category in display order
var Categories = []Category{
	CategoryRouter,
	CategorySwitch,
	CategoryPC,
	CategoryServer,
	CategoryFirewall,
}

// ParseCategory matches s against the known categories, ignoring case
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(string(c), s) {
			return c, true
		}
	}
	return "", false
}

// Valid reports whether c is exactly one of the known categories
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Properties holds the numeric attributes of a device
type Properties struct {
	NumPorts          float64 `json:"num_ports" yaml:"num_ports" validate:"gte=0"`
	TotalBandwidth    float64 `json:"total_bandwidth" yaml:"total_bandwidth" validate:"gte=0"`
	ThroughputPerPort float64 `json:"throughput_per_port" yaml:"throughput_per_port" validate:"gte=0"`
	EstimatedLoad     float64 `json:"estimated_load" yaml:"estimated_load" validate:"gte=0"`
}

// DefaultProperties returns the properties assigned to a freshly added device
func DefaultProperties() Properties {
	return Properties{
		NumPorts:          1,
		TotalBandwidth:    100,
		ThroughputPerPort: 100,
		EstimatedLoad:     10,
	}
}

// Clamped returns a copy with every negative or non-finite value replaced by 0
func (p Properties) Clamped() Properties {
	return Properties{
		NumPorts:          NonNegative(p.NumPorts),
		TotalBandwidth:    NonNegative(p.TotalBandwidth),
		ThroughputPerPort: NonNegative(p.ThroughputPerPort),
		EstimatedLoad:     NonNegative(p.EstimatedLoad),
	}
}

// NonNegative maps NaN, infinities and negative numbers to 0
func NonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// Device represents a network element placed on the canvas
type Device struct {
	ID         string     `json:"id" yaml:"id"`
	Name       string     `json:"name" yaml:"name"`
	Position   Position   `json:"position" yaml:"position"`
	Category   Category   `json:"category" yaml:"category"`
	Properties Properties `json:"properties" yaml:"properties"`
}

// NewDevice creates a device with default properties
func NewDevice(id, name string, category Category, pos Position) *Device {
	return &Device{
		ID:         id,
		Name:       name,
		Position:   pos,
		Category:   category,
		Properties: DefaultProperties(),
	}
}

// Center returns the canvas point links attach to
func (d Device) Center() Point {
	return d.Position.Center()
}

// Record returns the editable attributes of the device
func (d Device) Record() DeviceRecord {
	return DeviceRecord{
		Name:       d.Name,
		Category:   d.Category,
		Properties: d.Properties,
	}
}

// MovedTo returns a copy of the device at a new position
func (d Device) MovedTo(x, y float64) Device {
	d.Position = Position{X: x, Y: y}
	return d
}

// WithRecord returns a copy with name, category and properties replaced by rec.
// Identity and position are kept. Unknown categories keep the current one and
// numeric values are clamped to be non-negative.
func (d Device) WithRecord(rec DeviceRecord) Device {
	d.Name = rec.Name
	if c, ok := ParseCategory(string(rec.Category)); ok {
		d.Category = c
	}
	d.Properties = rec.Properties.Clamped()
	return d
}
