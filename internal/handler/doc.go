// Package handler implements the HTTP host for a netcanvas editing session.
//
// Handlers translate requests into session operations and render the
// session's read-only projections. They hold no model state.
//
// # API Design
//
//   - GET for projections (topology, selection, scene, property form)
//   - POST for canvas and form events
//   - PUT for draft field edits
//
// Errors are returned as JSON with appropriate HTTP status codes.
// Request bodies are validated before processing.
//
// # Response Format
//
// Success responses return JSON data with appropriate status codes (200, 201).
// Error responses return JSON with {error, details} structure.
//
// # Server-Sent Events
//
// The /events endpoint streams every editor change, so several browser
// canvases can follow one session.
package handler
