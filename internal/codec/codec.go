package codec

import (
	"fmt"
	"io"
	"strings"

	"netcanvas/internal/domain"
)

// Importer interface for reading a topology from various formats
type Importer interface {
	Parse(r io.Reader) (*domain.Topology, error)
	Format() string
}

// Exporter interface for writing a topology to various formats. Interaction
// state is never part of the output.
type Exporter interface {
	Export(topo *domain.Topology, w io.Writer) error
	Format() string
}

// ForFormat returns the exporter for a format name
func ForFormat(format string) (Exporter, error) {
	switch strings.ToLower(format) {
	case "json":
		return NewJSONCodec(), nil
	case "yaml", "yml":
		return NewYAMLCodec(), nil
	}
	return nil, fmt.Errorf("unsupported format %q, must be 'json' or 'yaml'", format)
}

// check verifies the structural rules of a parsed topology: unique device
// IDs and links between two distinct existing devices
func check(topo *domain.Topology) error {
	seen := make(map[string]bool, len(topo.Devices))
	for _, d := range topo.Devices {
		if d.ID == "" {
			return fmt.Errorf("device %q has no id", d.Name)
		}
		if seen[d.ID] {
			return fmt.Errorf("duplicate device id %s", d.ID)
		}
		seen[d.ID] = true
	}
	for _, l := range topo.Links {
		if l.SourceID == l.TargetID {
			return fmt.Errorf("link %s: %w", l.ID, domain.ErrSelfLink)
		}
		if !seen[l.SourceID] || !seen[l.TargetID] {
			return fmt.Errorf("link %s references unknown device", l.ID)
		}
		if seen[l.ID] {
			return fmt.Errorf("duplicate id %s", l.ID)
		}
		seen[l.ID] = true
	}
	return nil
}

func linkID(l domain.Link) string {
	return fmt.Sprintf("%s-%s-%s", domain.LinkPrefix, l.SourceID, l.TargetID)
}
