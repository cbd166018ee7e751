package handler

import (
	"io"
	"log/slog"
	"net/http"
)

// RouterConfig holds everything the HTTP surface is built from. Events and
// MetricsHandler are optional.
type RouterConfig struct {
	Editor         *EditorHandler
	Events         http.Handler
	MetricsHandler http.Handler
	Recorder       HTTPRecorder
	Logger         *slog.Logger
}

// NewRouter registers all routes and wraps them in the middleware chain
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	eh := cfg.Editor
	mux := http.NewServeMux()

	// Projections
	mux.HandleFunc("GET /api/topology", eh.GetTopology)
	mux.HandleFunc("GET /api/selection", eh.GetSelection)
	mux.HandleFunc("GET /api/scene", eh.GetScene)
	mux.HandleFunc("GET /api/scene.svg", eh.GetSceneSVG)

	// Canvas events
	mux.HandleFunc("POST /api/devices", eh.AddDevice)
	mux.HandleFunc("POST /api/devices/{id}/drag", eh.DragDevice)
	mux.HandleFunc("POST /api/devices/{id}/click", eh.ClickDevice)
	mux.HandleFunc("POST /api/canvas/click", eh.ClickCanvas)
	mux.HandleFunc("POST /api/pointer", eh.Pointer)

	// Property editor
	mux.HandleFunc("GET /api/editor", eh.GetForm)
	mux.HandleFunc("PUT /api/editor/fields/{field}", eh.SetField)
	mux.HandleFunc("POST /api/editor/submit", eh.SubmitForm)
	mux.HandleFunc("POST /api/editor/deselect", eh.DeselectForm)

	// Export
	mux.HandleFunc("GET /api/export/{format}", eh.Export)

	if cfg.Events != nil {
		mux.Handle("GET /events", cfg.Events)
	}
	if cfg.MetricsHandler != nil {
		mux.Handle("GET /metrics", cfg.MetricsHandler)
	}

	mws := []Middleware{Recover(logger), CORS, Logger(logger)}
	if cfg.Recorder != nil {
		mws = append(mws, Metrics(cfg.Recorder))
	}
	return Chain(mux, mws...)
}
