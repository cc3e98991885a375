package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/restaurant-pos/backend/internal/models"
)

// ValidationResponse is the body of a 400 caused by invalid request fields
type ValidationResponse struct {
	Error  string              `json:"error"`
	Fields []models.FieldError `json:"fields"`
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, status int, data interface{}, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes an error response in JSON format
func WriteError(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	WriteJSON(w, status, map[string]string{"error": message}, logger)
}

// WriteValidationError writes a 400 listing every invalid field
func WriteValidationError(w http.ResponseWriter, errs models.ValidationErrors, logger *slog.Logger) {
	WriteJSON(w, http.StatusBadRequest, ValidationResponse{
		Error:  "Validation failed",
		Fields: errs,
	}, logger)
}
