package domain

// Topology is the device and link collection being edited.
// Device order is insertion order.
type Topology struct {
	Devices []Device `json:"devices" yaml:"devices"`
	Links   []Link   `json:"links" yaml:"links"`
}

// NewTopology creates an empty topology
func NewTopology() *Topology {
	return &Topology{
		Devices: make([]Device, 0),
		Links:   make([]Link, 0),
	}
}

// AddDevice appends a device
func (t *Topology) AddDevice(device Device) {
	t.Devices = append(t.Devices, device)
}

// AddLink appends a link
func (t *Topology) AddLink(link Link) {
	t.Links = append(t.Links, link)
}

// IndexOf returns the position of the device with the given ID, or -1
func (t *Topology) IndexOf(id string) int {
	for i := range t.Devices {
		if t.Devices[i].ID == id {
			return i
		}
	}
	return -1
}

// Device returns a copy of the device with the given ID
func (t *Topology) Device(id string) (Device, bool) {
	if i := t.IndexOf(id); i >= 0 {
		return t.Devices[i], true
	}
	return Device{}, false
}

// HasLink reports whether a link with the given ID exists
func (t *Topology) HasLink(id string) bool {
	for _, l := range t.Links {
		if l.ID == id {
			return true
		}
	}
	return false
}

// Segments resolves every link to the centers of its endpoints. Links whose
// source or target no longer resolves are skipped.
func (t *Topology) Segments() []LinkSegment {
	segments := make([]LinkSegment, 0, len(t.Links))
	for _, link := range t.Links {
		source, ok := t.Device(link.SourceID)
		if !ok {
			continue
		}
		target, ok := t.Device(link.TargetID)
		if !ok {
			continue
		}
		segments = append(segments, LinkSegment{
			LinkID: link.ID,
			From:   source.Center(),
			To:     target.Center(),
		})
	}
	return segments
}

// Clone returns a deep copy
func (t *Topology) Clone() *Topology {
	clone := &Topology{
		Devices: make([]Device, len(t.Devices)),
		Links:   make([]Link, len(t.Links)),
	}
	copy(clone.Devices, t.Devices)
	copy(clone.Links, t.Links)
	return clone
}

// DefaultSeed returns the two-device topology a new canvas starts with
func DefaultSeed(ids IDGenerator) *Topology {
	topo := NewTopology()

	router := NewDevice(ids.NewID(DevicePrefix), "Router0", CategoryRouter, NewPosition(50, 50))
	router.Properties = Properties{NumPorts: 4, TotalBandwidth: 1000, ThroughputPerPort: 250, EstimatedLoad: 100}
	topo.AddDevice(*router)

	sw := NewDevice(ids.NewID(DevicePrefix), "Switch0", CategorySwitch, NewPosition(200, 150))
	sw.Properties = Properties{NumPorts: 8, TotalBandwidth: 1000, ThroughputPerPort: 100, EstimatedLoad: 50}
	topo.AddDevice(*sw)

	return topo
}
