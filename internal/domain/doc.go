// Package domain defines the core types of the netcanvas topology editor.
//
// This package contains the value types that make up a drawn network
// topology: devices placed on a canvas, links between them, and the
// identifiers that tie the two together.
//
// # Core Types
//
// Device represents a network element (router, switch, PC, server, firewall)
// with a display name, a canvas position, a category, and a fixed set of
// numeric properties.
//
// Link represents an undirected connection between two device IDs. Links are
// never mutated after creation.
//
// Topology is the ordered device list plus the link list. It is the only
// structure that gets encoded; interaction state lives in the editor and is
// never part of it.
//
// # Identity
//
// IDGenerator produces opaque, never-reused identifiers. CounterGenerator is
// deterministic and suited to tests; UUIDGenerator is the default for hosts.
//
// # Design Principles
//
// - Value semantics: devices and links are copied, not shared
// - No rendering, transport, or storage dependencies
// - Defensive derivation: dangling link endpoints are skipped, not reported
package domain
