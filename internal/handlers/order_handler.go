package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/restaurant-pos/backend/internal/models"
	"github.com/Lixing-Zhang/restaurant-pos/backend/internal/service"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
	log          *slog.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService, log *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		log:          log,
	}
}

// CreateOrder handles POST /orders and responds with the ordered product
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err, h.log)
		return
	}

	in, err := req.Validate()
	if err != nil {
		writeServiceError(w, r, err, h.log)
		return
	}

	product, err := h.orderService.CreateOrder(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err, h.log)
		return
	}

	WriteJSON(w, http.StatusCreated, product, h.log)
}

// ListSessionOrders handles GET /orders/{tableSessionId}
func (h *OrderHandler) ListSessionOrders(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "tableSessionId")
	if !ok {
		writeInvalidID(w, r, h.log)
		return
	}

	summaries, err := h.orderService.SummarizeSession(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, h.log)
		return
	}

	WriteJSON(w, http.StatusOK, summaries, h.log)
}

// SessionTotal handles GET /orders/{tableSessionId}/total
func (h *OrderHandler) SessionTotal(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "tableSessionId")
	if !ok {
		writeInvalidID(w, r, h.log)
		return
	}

	total, err := h.orderService.SessionTotal(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, h.log)
		return
	}

	WriteJSON(w, http.StatusOK, total, h.log)
}
