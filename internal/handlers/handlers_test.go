package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/Lixing-Zhang/restaurant-pos/backend/internal/events"
	"github.com/Lixing-Zhang/restaurant-pos/backend/internal/models"
	"github.com/Lixing-Zhang/restaurant-pos/backend/internal/repository"
	"github.com/Lixing-Zhang/restaurant-pos/backend/internal/service"
	"github.com/Lixing-Zhang/restaurant-pos/backend/internal/telemetry"
	"github.com/Lixing-Zhang/restaurant-pos/backend/pkg/logger"
)

// newTestRouter wires every handler on a seeded in-memory store
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	store := repository.NewInMemoryStore()
	log := logger.New("error")
	metrics := telemetry.NoopMetrics()
	tracer := noop.NewTracerProvider().Tracer("test")

	products := NewProductHandler(service.NewProductService(store.Products, log), log)
	tables := NewTableHandler(service.NewTableService(store.Tables), log)
	sessions := NewSessionHandler(service.NewSessionService(store, events.NoopPublisher{}, metrics, tracer, log), log)
	orders := NewOrderHandler(service.NewOrderService(store, metrics, tracer, log), log)

	r := chi.NewRouter()
	r.Get("/products", products.ListProducts)
	r.Post("/products", products.CreateProduct)
	r.Get("/products/{productId}", products.GetProduct)
	r.Put("/products/{productId}", products.UpdateProduct)
	r.Delete("/products/{productId}", products.DeleteProduct)
	r.Get("/tables", tables.ListTables)
	r.Get("/tables-sessions", sessions.ListSessions)
	r.Post("/tables-sessions", sessions.OpenSession)
	r.Patch("/tables-sessions/{sessionId}", sessions.CloseSession)
	r.Post("/orders", orders.CreateOrder)
	r.Get("/orders/{tableSessionId}", orders.ListSessionOrders)
	r.Get("/orders/{tableSessionId}/total", orders.SessionTotal)
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return v
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]interface{}](t, w)["error"].(string)
}

type failingPinger struct{ err error }

func (p failingPinger) Ping(ctx context.Context) error { return p.err }

func TestHealthHandler(t *testing.T) {
	log := logger.New("error")

	tests := []struct {
		name       string
		pinger     Pinger
		wantStatus int
		wantState  string
	}{
		{"healthy", repository.NewInMemoryStore(), http.StatusOK, "healthy"},
		{"database down", failingPinger{err: errors.New("connection refused")}, http.StatusServiceUnavailable, "unhealthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.pinger, "memory", "test", log)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			resp := decode[HealthResponse](t, w)
			if resp.Status != tt.wantState {
				t.Errorf("expected status %q, got %q", tt.wantState, resp.Status)
			}
			if resp.Database != "memory" {
				t.Errorf("expected database memory, got %q", resp.Database)
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Quantity *int64 `json:"quantity"`
	}

	tests := []struct {
		name      string
		body      string
		wantField string
		wantBody  bool
	}{
		{name: "valid", body: `{"quantity":2}`},
		{name: "fraction", body: `{"quantity":2.5}`, wantField: "quantity"},
		{name: "string", body: `{"quantity":"2"}`, wantField: "quantity"},
		{name: "malformed", body: `{"quantity":`, wantBody: true},
		{name: "empty", body: ``, wantBody: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var p payload
			err := decodeJSON(req, &p)

			switch {
			case tt.wantField != "":
				var verrs models.ValidationErrors
				if !errors.As(err, &verrs) || verrs[0].Field != tt.wantField {
					t.Errorf("decodeJSON() error = %v, want field error on %s", err, tt.wantField)
				}
				if errors.Is(err, errInvalidBody) {
					t.Errorf("decodeJSON() type error should not be errInvalidBody")
				}
			case tt.wantBody:
				if !errors.Is(err, errInvalidBody) {
					t.Errorf("decodeJSON() error = %v, want errInvalidBody", err)
				}
			default:
				if err != nil || p.Quantity == nil || *p.Quantity != 2 {
					t.Errorf("decodeJSON() = %v, %v", p.Quantity, err)
				}
			}
		})
	}
}
