package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/restaurant-pos/backend/internal/models"
	"github.com/Lixing-Zhang/restaurant-pos/backend/internal/service"
)

// domainErrors maps service sentinels to a status and user-facing message
var domainErrors = []struct {
	err     error
	status  int
	message string
}{
	{service.ErrSessionNotFound, http.StatusNotFound, "Session not found."},
	{service.ErrSessionClosed, http.StatusBadRequest, "This session is closed."},
	{service.ErrSessionAlreadyClosed, http.StatusBadRequest, "This session is already closed."},
	{service.ErrProductNotFound, http.StatusNotFound, "Product not found."},
	{service.ErrProductInUse, http.StatusConflict, "Product has orders and cannot be deleted."},
	{service.ErrTableNotFound, http.StatusNotFound, "Table not found."},
	{service.ErrTableAlreadyOpen, http.StatusBadRequest, "This table is already open."},
}

// writeServiceError translates an error returned by a service or by decodeJSON
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	var verrs models.ValidationErrors
	if errors.As(err, &verrs) {
		logger.Info("request validation failed", "path", r.URL.Path, "error", err)
		WriteValidationError(w, verrs, logger)
		return
	}

	if errors.Is(err, errInvalidBody) {
		logger.Info("failed to decode request body", "path", r.URL.Path, "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", logger)
		return
	}

	for _, d := range domainErrors {
		if errors.Is(err, d.err) {
			logger.Info("request rejected", "path", r.URL.Path, "reason", err.Error())
			WriteError(w, d.status, d.message, logger)
			return
		}
	}

	logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	WriteError(w, http.StatusInternalServerError, "Internal server error", logger)
}

func writeInvalidID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) {
	logger.Warn("invalid ID format", "path", r.URL.Path)
	WriteError(w, http.StatusBadRequest, "Invalid ID supplied", logger)
}
