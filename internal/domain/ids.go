package domain

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// ID prefixes for generated identifiers
const (
	DevicePrefix = "device"
	LinkPrefix   = "link"
)

// IDGenerator produces opaque identifiers that are never handed out twice
type IDGenerator interface {
	NewID(prefix string) string
}

// CounterGenerator hands out <prefix>-<n> with a single monotonic counter
// shared across prefixes
type CounterGenerator struct {
	next atomic.Uint64
}

// NewCounterGenerator creates a counter generator whose first ID uses start
func NewCounterGenerator(start uint64) *CounterGenerator {
	g := &CounterGenerator{}
	g.next.Store(start)
	return g
}

// NewID returns the next identifier
func (g *CounterGenerator) NewID(prefix string) string {
	n := g.next.Add(1) - 1
	return fmt.Sprintf("%s-%d", prefix, n)
}

// UUIDGenerator hands out <prefix>-<uuid v4>
type UUIDGenerator struct{}

// NewUUIDGenerator creates a UUID generator
func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// NewID returns a random identifier
func (g *UUIDGenerator) NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// NewIDGenerator selects a generator by name: "counter" or "uuid"
func NewIDGenerator(kind string) (IDGenerator, error) {
	switch kind {
	case "counter":
		return NewCounterGenerator(1), nil
	case "uuid", "":
		return NewUUIDGenerator(), nil
	}
	return nil, fmt.Errorf("unknown id generator %q, must be 'counter' or 'uuid'", kind)
}
