package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"pinboard/internal/application"
	"pinboard/internal/domain"
	"pinboard/internal/observability"
)

// Handler exposes the board operations over HTTP. Every operation
// failure collapses to a 500 with a fixed per-operation message; the
// underlying cause is logged, not exposed.
type Handler struct {
	svc         *application.Service
	serviceName string
}

func NewHandler(svc *application.Service, serviceName string) *Handler {
	return &Handler{svc: svc, serviceName: serviceName}
}

// CreateMessage persists a new message. The text is not validated;
// an absent field is stored as empty.
func (h *Handler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	m, err := h.svc.CreateMessage(r.Context(), req.Message)
	if err != nil {
		h.fail(r, "create", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Error saving message"})
		return
	}

	writeJSON(w, http.StatusOK, m)
}

// ListMessages returns the full collection, unpaginated.
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.svc.ListMessages(r.Context())
	if err != nil {
		h.fail(r, "list", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Error fetching messages"})
		return
	}

	if messages == nil {
		messages = []domain.Message{}
	}
	writeJSON(w, http.StatusOK, messages)
}

// UpdateMessage replaces a message's text. A missing id yields a null
// body with status 200 when missing ids are treated as success.
func (h *Handler) UpdateMessage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Message string `json:"message"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	m, err := h.svc.UpdateMessage(r.Context(), id, req.Message)
	if err != nil {
		h.fail(r, "update", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Error updating message"})
		return
	}

	writeJSON(w, http.StatusOK, m)
}

// DeleteMessage removes a message. The response does not distinguish
// "deleted" from "was already absent".
func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.svc.DeleteMessage(r.Context(), id); err != nil {
		h.fail(r, "delete", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Error deleting message"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Message deleted successfully"})
}

func (h *Handler) fail(r *http.Request, operation string, err error) {
	observability.GetLogger(r.Context()).Error("operation failed",
		zap.String("operation", operation), zap.Error(err))
	observability.StorageErrorsTotal.WithLabelValues(h.serviceName, operation).Inc()
}

// writeJSON writes a JSON response with Content-Type header.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
