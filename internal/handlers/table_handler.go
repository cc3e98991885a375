package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/restaurant-pos/backend/internal/service"
)

// TableHandler serves the dining tables
type TableHandler struct {
	service *service.TableService
	logger  *slog.Logger
}

func NewTableHandler(service *service.TableService, logger *slog.Logger) *TableHandler {
	return &TableHandler{service: service, logger: logger}
}

// ListTables handles GET /tables
func (h *TableHandler) ListTables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.service.ListTables(r.Context())
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, tables, h.logger)
}
