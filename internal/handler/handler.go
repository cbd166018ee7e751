package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"netcanvas/internal/codec"
	"netcanvas/internal/domain"
	"netcanvas/internal/editor"
	"netcanvas/internal/propedit"
	"netcanvas/internal/render"
	"netcanvas/internal/service"
)

// EditorHandler handles editing session API requests
type EditorHandler struct {
	session  *service.Session
	validate *validator.Validate
	logger   *slog.Logger
}

// NewEditorHandler creates a new editor handler
func NewEditorHandler(session *service.Session, logger *slog.Logger) *EditorHandler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &EditorHandler{
		session:  session,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// Error response structure
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// PositionRequest is the body of a drag-end
type PositionRequest struct {
	X *float64 `json:"x" validate:"required"`
	Y *float64 `json:"y" validate:"required"`
}

// PointerRequest is one raw pointer event in canvas coordinates
type PointerRequest struct {
	Type string   `json:"type" validate:"required,oneof=press move release"`
	X    *float64 `json:"x" validate:"required"`
	Y    *float64 `json:"y" validate:"required"`
}

// FieldRequest carries the raw text of one form field
type FieldRequest struct {
	Value *string `json:"value" validate:"required"`
}

// ClickResponse is returned after a device click
type ClickResponse struct {
	Link      *domain.Link         `json:"link,omitempty"`
	Selection editor.SelectionView `json:"selection"`
}

// PointerResponse is returned after a pointer event
type PointerResponse struct {
	Outcome   render.Outcome       `json:"outcome"`
	Selection editor.SelectionView `json:"selection"`
}

// GetTopology returns every device and link
func (h *EditorHandler) GetTopology(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.session.Topology(), http.StatusOK)
}

// GetSelection returns the interaction state
func (h *EditorHandler) GetSelection(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.session.Selection(), http.StatusOK)
}

// GetScene returns the derived canvas drawing
func (h *EditorHandler) GetScene(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.session.Scene(), http.StatusOK)
}

// GetSceneSVG renders the canvas as an SVG document
func (h *EditorHandler) GetSceneSVG(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/svg+xml")
	if err := render.WriteSVG(w, h.session.Scene()); err != nil {
		h.logger.Error("failed to write svg", "error", err)
	}
}

// AddDevice adds a device with default attributes
func (h *EditorHandler) AddDevice(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.session.AddDevice(), http.StatusCreated)
}

// DragDevice commits a drag-end for one device
func (h *EditorHandler) DragDevice(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, "Invalid device ID", "Device ID is required", http.StatusBadRequest)
		return
	}

	var req PositionRequest
	if !h.decode(w, r, &req) {
		return
	}

	device, err := h.session.Drag(id, *req.X, *req.Y)
	if err != nil {
		h.writeSessionError(w, "Failed to move device", err)
		return
	}
	h.writeJSON(w, device, http.StatusOK)
}

// ClickDevice runs the click state machine for one device
func (h *EditorHandler) ClickDevice(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, "Invalid device ID", "Device ID is required", http.StatusBadRequest)
		return
	}

	link, view, err := h.session.Click(id)
	if err != nil {
		h.writeSessionError(w, "Failed to click device", err)
		return
	}

	status := http.StatusOK
	if link != nil {
		status = http.StatusCreated
	}
	h.writeJSON(w, ClickResponse{Link: link, Selection: view}, status)
}

// ClickCanvas handles a click on empty canvas
func (h *EditorHandler) ClickCanvas(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.session.BackgroundClick(), http.StatusOK)
}

// Pointer feeds one raw pointer event through the canvas gesture
func (h *EditorHandler) Pointer(w http.ResponseWriter, r *http.Request) {
	var req PointerRequest
	if !h.decode(w, r, &req) {
		return
	}

	outcome, err := h.session.Pointer(service.PointerKind(req.Type), *req.X, *req.Y)
	if err != nil {
		h.writeError(w, "Invalid pointer event", err.Error(), http.StatusBadRequest)
		return
	}
	h.writeJSON(w, PointerResponse{Outcome: outcome, Selection: h.session.Selection()}, http.StatusOK)
}

// GetForm returns the property editor view
func (h *EditorHandler) GetForm(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.session.Form(), http.StatusOK)
}

// SetField edits one draft field
func (h *EditorHandler) SetField(w http.ResponseWriter, r *http.Request) {
	var req FieldRequest
	if !h.decode(w, r, &req) {
		return
	}

	view, err := h.session.SetField(r.PathValue("field"), *req.Value)
	if err != nil {
		h.writeSessionError(w, "Failed to edit field", err)
		return
	}
	h.writeJSON(w, view, http.StatusOK)
}

// SubmitForm sends the draft to the editor
func (h *EditorHandler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	view, err := h.session.Submit()
	if err != nil {
		h.writeSessionError(w, "Failed to submit properties", err)
		return
	}
	h.writeJSON(w, view, http.StatusOK)
}

// DeselectForm clears the selection from the property editor
func (h *EditorHandler) DeselectForm(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.session.Deselect(), http.StatusOK)
}

// Export writes the topology as JSON or YAML
func (h *EditorHandler) Export(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.PathValue("format"))
	if _, err := codec.ForFormat(format); err != nil {
		h.writeError(w, "Unsupported format", err.Error(), http.StatusBadRequest)
		return
	}

	contentType := "application/json"
	if format != "json" {
		contentType = "application/x-yaml"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "attachment; filename=topology."+format)

	if err := h.session.Export(format, w); err != nil {
		// Headers are already out
		h.logger.Error("failed to export topology", "format", format, "error", err)
	}
}

// Helper methods

func (h *EditorHandler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return false
	}
	if err := h.validate.Struct(v); err != nil {
		h.writeError(w, "Invalid request body", validationDetails(err), http.StatusBadRequest)
		return false
	}
	return true
}

func validationDetails(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "oneof":
			msgs = append(msgs, fe.Field()+" must be one of: "+fe.Param())
		default:
			msgs = append(msgs, fe.Field()+" failed "+fe.Tag())
		}
	}
	return strings.Join(msgs, "; ")
}

func (h *EditorHandler) writeSessionError(w http.ResponseWriter, msg string, err error) {
	switch {
	case errors.Is(err, editor.ErrUnknownDevice):
		h.writeError(w, "Not found", err.Error(), http.StatusNotFound)
	case errors.Is(err, propedit.ErrUnknownField):
		h.writeError(w, msg, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrNothingSelected):
		h.writeError(w, msg, err.Error(), http.StatusConflict)
	default:
		h.logger.Error(msg, "error", err)
		h.writeError(w, msg, err.Error(), http.StatusInternalServerError)
	}
}

func (h *EditorHandler) writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON", "error", err)
	}
}

func (h *EditorHandler) writeError(w http.ResponseWriter, error, details string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   error,
		Details: details,
	}); err != nil {
		h.logger.Error("failed to encode error response", "error", err)
	}
}
