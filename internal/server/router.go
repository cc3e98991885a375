package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/otel/trace"

	"github.com/Lixing-Zhang/restaurant-pos/backend/internal/events"
	"github.com/Lixing-Zhang/restaurant-pos/backend/internal/handlers"
	"github.com/Lixing-Zhang/restaurant-pos/backend/internal/middleware"
	"github.com/Lixing-Zhang/restaurant-pos/backend/internal/repository"
	"github.com/Lixing-Zhang/restaurant-pos/backend/internal/service"
	"github.com/Lixing-Zhang/restaurant-pos/backend/internal/telemetry"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// Deps are the collaborators the router is built from
type Deps struct {
	Store          *repository.Store
	Publisher      events.Publisher
	Metrics        *telemetry.Metrics
	Tracer         trace.Tracer
	Logger         *slog.Logger
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// NewRouter wires services and handlers onto a chi router
func NewRouter(d Deps) http.Handler {
	log := d.Logger

	// Initialize services
	productService := service.NewProductService(d.Store.Products, log)
	tableService := service.NewTableService(d.Store.Tables)
	sessionService := service.NewSessionService(d.Store, d.Publisher, d.Metrics, d.Tracer, log)
	orderService := service.NewOrderService(d.Store, d.Metrics, d.Tracer, log)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(d.Store, d.Store.Driver(), Version, log)
	productHandler := handlers.NewProductHandler(productService, log)
	tableHandler := handlers.NewTableHandler(tableService, log)
	sessionHandler := handlers.NewSessionHandler(sessionService, log)
	orderHandler := handlers.NewOrderHandler(orderService, log)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Tracing(d.Tracer))
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	if d.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(d.RequestTimeout))
	}

	allowed := d.AllowedOrigins
	if len(allowed) == 0 {
		allowed = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowed,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", healthHandler.ServeHTTP)

	r.Route("/products", func(r chi.Router) {
		r.Get("/", productHandler.ListProducts)
		r.Post("/", productHandler.CreateProduct)
		r.Get("/{productId}", productHandler.GetProduct)
		r.Put("/{productId}", productHandler.UpdateProduct)
		r.Delete("/{productId}", productHandler.DeleteProduct)
	})

	r.Get("/tables", tableHandler.ListTables)

	r.Route("/tables-sessions", func(r chi.Router) {
		r.Get("/", sessionHandler.ListSessions)
		r.Post("/", sessionHandler.OpenSession)
		r.Patch("/{sessionId}", sessionHandler.CloseSession)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", orderHandler.CreateOrder)
		r.Get("/{tableSessionId}", orderHandler.ListSessionOrders)
		r.Get("/{tableSessionId}/total", orderHandler.SessionTotal)
	})

	return r
}
