package codec

import (
	"errors"
	"fmt"
	"io"

	"netcanvas/internal/domain"

	"gopkg.in/yaml.v3"
)

// YAMLCodec handles YAML import/export. It also reads seed files, where
// device IDs, positions and properties may be omitted.
type YAMLCodec struct {
	ids domain.IDGenerator
}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// WithIDs returns a codec that assigns generated IDs to devices that have
// none, instead of rejecting them
func (c *YAMLCodec) WithIDs(ids domain.IDGenerator) *YAMLCodec {
	return &YAMLCodec{ids: ids}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// yamlTopology represents the YAML structure for topology data
type yamlTopology struct {
	Devices []yamlDevice `yaml:"devices"`
	Links   []yamlLink   `yaml:"links"`
}

type yamlDevice struct {
	ID         string             `yaml:"id,omitempty"`
	Name       string             `yaml:"name"`
	Category   string             `yaml:"category"`
	Position   *domain.Position   `yaml:"position,omitempty"`
	Properties *domain.Properties `yaml:"properties,omitempty"`
}

type yamlLink struct {
	ID     string `yaml:"id,omitempty"`
	Source string `yaml:"source"`
	Target string `yaml:"target"`
}

// Parse reads a topology from YAML. Omitted positions default to the add
// device placement and omitted properties to the add device defaults.
func (c *YAMLCodec) Parse(r io.Reader) (*domain.Topology, error) {
	var yt yamlTopology
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&yt); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	topo := domain.NewTopology()

	// Convert devices
	for _, yd := range yt.Devices {
		category, ok := domain.ParseCategory(yd.Category)
		if !ok {
			return nil, fmt.Errorf("device %q: unknown category %q", yd.Name, yd.Category)
		}
		id := yd.ID
		if id == "" && c.ids != nil {
			id = c.ids.NewID(domain.DevicePrefix)
		}
		pos := domain.NewPosition(100, 100)
		if yd.Position != nil {
			pos = *yd.Position
		}
		device := domain.NewDevice(id, yd.Name, category, pos)
		if yd.Properties != nil {
			device.Properties = yd.Properties.Clamped()
		}
		topo.AddDevice(*device)
	}

	// Convert links
	for _, yl := range yt.Links {
		link := domain.Link{ID: yl.ID, SourceID: yl.Source, TargetID: yl.Target}
		if link.ID == "" {
			link.ID = linkID(link)
		}
		topo.AddLink(link)
	}

	if err := check(topo); err != nil {
		return nil, fmt.Errorf("invalid topology: %w", err)
	}
	return topo, nil
}

// Export writes the topology as YAML
func (c *YAMLCodec) Export(topo *domain.Topology, w io.Writer) error {
	yt := yamlTopology{
		Devices: make([]yamlDevice, 0, len(topo.Devices)),
		Links:   make([]yamlLink, 0, len(topo.Links)),
	}

	// Convert devices
	for _, d := range topo.Devices {
		pos := d.Position
		props := d.Properties
		yt.Devices = append(yt.Devices, yamlDevice{
			ID:         d.ID,
			Name:       d.Name,
			Category:   string(d.Category),
			Position:   &pos,
			Properties: &props,
		})
	}

	// Convert links
	for _, l := range topo.Links {
		yt.Links = append(yt.Links, yamlLink{
			ID:     l.ID,
			Source: l.SourceID,
			Target: l.TargetID,
		})
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(&yt); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}
