package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"netcanvas/internal/domain"
)

// JSONCodec handles JSON import/export
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// Parse reads a topology from JSON
func (c *JSONCodec) Parse(r io.Reader) (*domain.Topology, error) {
	var topo domain.Topology
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&topo); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	for i, d := range topo.Devices {
		category, ok := domain.ParseCategory(string(d.Category))
		if !ok {
			return nil, fmt.Errorf("device %s: unknown category %q", d.ID, d.Category)
		}
		topo.Devices[i].Category = category
		topo.Devices[i].Properties = d.Properties.Clamped()
	}
	for i, l := range topo.Links {
		if l.ID == "" {
			topo.Links[i].ID = linkID(l)
		}
	}
	if topo.Devices == nil {
		topo.Devices = []domain.Device{}
	}
	if topo.Links == nil {
		topo.Links = []domain.Link{}
	}

	if err := check(&topo); err != nil {
		return nil, fmt.Errorf("invalid topology: %w", err)
	}
	return &topo, nil
}

// Export writes the topology as indented JSON
func (c *JSONCodec) Export(topo *domain.Topology, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(topo); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
