// Package service hosts an editing session for multi-goroutine front ends.
//
// A Session owns one topology editor, the property form bound to it, and the
// pointer gesture of the shared canvas. Every request takes the session lock,
// runs one editor operation to completion, and only then publishes the
// resulting changes on the EventBus, so subscribers never observe a partial
// update and never re-enter the editor.
//
// # Event System
//
// Editor changes are published as events of the same name (device_added,
// device_moved, device_updated, link_created, selection_changed). Property
// form edits publish form_changed with the form view as payload. The HTTP host
// forwards every event to Server-Sent Events clients.
//
// # Errors
//
// Requests that name a missing device return editor.ErrUnknownDevice.
// Form edits with an unknown field name return propedit.ErrUnknownField.
package service
