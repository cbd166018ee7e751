// Package editor implements the topology editor: the authoritative device and
// link lists, the click/link state machine, and reconciliation of drag and
// property-update events.
//
// # State Machine
//
// Interaction state is a Selection with three variants: Idle, LinkPending and
// EditingOnly. Clicks are resolved by Transition, a pure function, so the
// state machine can be exercised without any rendering surface.
//
// # Data Flow
//
// Renderers report DragEnd and Click; the property editor reports
// UpdateProperties and Deselect. After each operation the editor pushes the
// current editing target to every bound TargetSink and notifies observers.
// Components never talk to each other directly.
//
// # Concurrency
//
// An Editor is single-threaded. Hosts that accept input on several goroutines
// serialize access themselves (see service.Session).
package editor
