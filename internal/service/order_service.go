package service

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/Lixing-Zhang/restaurant-pos/backend/internal/models"
	"github.com/Lixing-Zhang/restaurant-pos/backend/internal/repository"
	"github.com/Lixing-Zhang/restaurant-pos/backend/internal/telemetry"
)

// OrderService handles order business logic
type OrderService struct {
	sessions repository.SessionRepository
	products repository.ProductRepository
	orders   repository.OrderRepository
	metrics  *telemetry.Metrics
	tracer   trace.Tracer
	logger   *slog.Logger
}

// NewOrderService creates a new order service
func NewOrderService(store *repository.Store, metrics *telemetry.Metrics, tracer trace.Tracer, logger *slog.Logger) *OrderService {
	return &OrderService{
		sessions: store.Sessions,
		products: store.Products,
		orders:   store.Orders,
		metrics:  metrics,
		tracer:   tracer,
		logger:   logger,
	}
}

// CreateOrder records an order against an open session and returns the ordered product.
// The session, its state and the product are checked in that order; the first failure is returned.
// The order keeps the product's current price.
func (s *OrderService) CreateOrder(ctx context.Context, in models.OrderInput) (*models.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CreateOrder",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.Int64("order.table_session_id", in.TableSessionID),
			attribute.Int64("order.product_id", in.ProductID),
			attribute.Int64("order.quantity", in.Quantity),
		),
	)
	defer span.End()

	product, err := s.createOrder(ctx, in)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		s.metrics.OrdersCreated.Add(ctx, 1, metric.WithAttributes(attribute.String("status", "rejected")))
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	return product, nil
}

func (s *OrderService) createOrder(ctx context.Context, in models.OrderInput) (*models.Product, error) {
	if err := in.Check(); err != nil {
		return nil, err
	}

	session, err := s.sessions.GetByID(ctx, in.TableSessionID)
	if err != nil {
		return nil, translate(err)
	}
	if !session.IsOpen() {
		return nil, ErrSessionClosed
	}

	product, err := s.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, translate(err)
	}

	order := &models.Order{
		TableSessionID: session.ID,
		ProductID:      product.ID,
		Quantity:       in.Quantity,
		Price:          product.Price,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	value := order.Price * float64(order.Quantity)
	s.metrics.OrdersCreated.Add(ctx, 1, metric.WithAttributes(attribute.String("status", "ok")))
	s.metrics.OrderValue.Record(ctx, value)

	s.logger.Info("order created",
		"order_id", order.ID,
		"table_session_id", order.TableSessionID,
		"product_id", order.ProductID,
		"quantity", order.Quantity,
		"price", order.Price,
	)

	return product, nil
}

// SummarizeSession returns one entry per product ordered in the session.
// A session without orders yields an empty list.
func (s *OrderService) SummarizeSession(ctx context.Context, sessionID int64) ([]models.ProductSummary, error) {
	lines, err := s.orders.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return SummarizeOrders(lines), nil
}

// SessionTotal returns the amount and item count of a session. Both are 0 without orders.
func (s *OrderService) SessionTotal(ctx context.Context, sessionID int64) (models.OrderTotal, error) {
	return s.orders.TotalBySession(ctx, sessionID)
}
