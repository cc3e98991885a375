package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/restaurant-pos/backend/internal/models"
	"github.com/Lixing-Zhang/restaurant-pos/backend/internal/service"
)

// SessionHandler handles table session requests
type SessionHandler struct {
	service *service.SessionService
	logger  *slog.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(service *service.SessionService, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{service: service, logger: logger}
}

// ListSessions handles GET /tables-sessions
func (h *SessionHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.service.ListSessions(r.Context())
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, sessions, h.logger)
}

// OpenSession handles POST /tables-sessions
func (h *SessionHandler) OpenSession(w http.ResponseWriter, r *http.Request) {
	var req models.OpenSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	tableID, err := req.Validate()
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	session, err := h.service.OpenSession(r.Context(), tableID)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusCreated, session, h.logger)
}

// CloseSession handles PATCH /tables-sessions/{sessionId}
func (h *SessionHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "sessionId")
	if !ok {
		writeInvalidID(w, r, h.logger)
		return
	}

	session, err := h.service.CloseSession(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, session, h.logger)
}
