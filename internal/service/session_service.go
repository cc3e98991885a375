package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/Lixing-Zhang/restaurant-pos/backend/internal/events"
	"github.com/Lixing-Zhang/restaurant-pos/backend/internal/models"
	"github.com/Lixing-Zhang/restaurant-pos/backend/internal/repository"
	"github.com/Lixing-Zhang/restaurant-pos/backend/internal/telemetry"
)

// DefaultPublishTimeout bounds the close event publish after a session is stored
const DefaultPublishTimeout = 5 * time.Second

// SessionService opens and closes table sessions
type SessionService struct {
	tables    repository.TableRepository
	sessions  repository.SessionRepository
	orders    repository.OrderRepository
	publisher events.Publisher
	metrics   *telemetry.Metrics
	tracer    trace.Tracer
	logger    *slog.Logger
	now       func() time.Time

	publishTimeout time.Duration
}

// NewSessionService creates a new session service
func NewSessionService(store *repository.Store, publisher events.Publisher, metrics *telemetry.Metrics, tracer trace.Tracer, logger *slog.Logger) *SessionService {
	return &SessionService{
		tables:    store.Tables,
		sessions:  store.Sessions,
		orders:    store.Orders,
		publisher: publisher,
		metrics:   metrics,
		tracer:    tracer,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },

		publishTimeout: DefaultPublishTimeout,
	}
}

// OpenSession starts a session on a table that has none open
func (s *SessionService) OpenSession(ctx context.Context, tableID int64) (*models.TableSession, error) {
	if _, err := s.tables.GetByID(ctx, tableID); err != nil {
		return nil, translate(err)
	}

	_, err := s.sessions.GetOpenByTable(ctx, tableID)
	if err == nil {
		return nil, ErrTableAlreadyOpen
	}
	if !errors.Is(err, repository.ErrSessionNotFound) {
		return nil, err
	}

	session := &models.TableSession{TableID: tableID, OpenedAt: s.now()}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	s.metrics.SessionsOpened.Add(ctx, 1)
	s.logger.Info("table session opened", "table_session_id", session.ID, "table_id", tableID)
	return session, nil
}

// ListSessions returns closed sessions by closing time, followed by open sessions
func (s *SessionService) ListSessions(ctx context.Context) ([]models.TableSession, error) {
	return s.sessions.List(ctx)
}

// CloseSession closes an open session and publishes its bill.
// A failed publish is logged and does not fail the close.
func (s *SessionService) CloseSession(ctx context.Context, id int64) (*models.TableSession, error) {
	ctx, span := s.tracer.Start(ctx, "CloseSession",
		trace.WithAttributes(attribute.Int64("table_session.id", id)),
	)
	defer span.End()

	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, translate(err)
	}
	if !session.IsOpen() {
		span.SetStatus(codes.Error, ErrSessionAlreadyClosed.Error())
		return nil, ErrSessionAlreadyClosed
	}

	closedAt := s.now()
	if err := s.sessions.Close(ctx, id, closedAt); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, translate(err)
	}
	session.ClosedAt = &closedAt

	s.metrics.SessionsClosed.Add(ctx, 1)
	s.logger.Info("table session closed", "table_session_id", id, "table_id", session.TableID)

	// Request cancellation must not drop the event of a stored close
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.publishTimeout)
	defer cancel()

	if err := s.publishClosed(pubCtx, session); err != nil {
		span.RecordError(err)
		s.metrics.EventsPublished.Add(ctx, 1, metric.WithAttributes(attribute.String("status", "error")))
		s.logger.Error("failed to publish table session closed event", "table_session_id", id, "error", err)
	} else {
		s.metrics.EventsPublished.Add(ctx, 1, metric.WithAttributes(attribute.String("status", "ok")))
	}

	span.SetStatus(codes.Ok, "")
	return session, nil
}

// Bill builds the closed-session event of a session
func (s *SessionService) Bill(ctx context.Context, session *models.TableSession) (*models.TableSessionClosedEvent, error) {
	lines, err := s.orders.ListBySession(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	total, err := s.orders.TotalBySession(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to total orders: %w", err)
	}

	event := &models.TableSessionClosedEvent{
		EventID:        uuid.NewString(),
		Type:           models.EventTableSessionClosed,
		TableSessionID: session.ID,
		TableID:        session.TableID,
		OpenedAt:       session.OpenedAt,
		Items:          SummarizeOrders(lines),
		Total:          total,
	}
	if session.ClosedAt != nil {
		event.ClosedAt = *session.ClosedAt
	}
	return event, nil
}

func (s *SessionService) publishClosed(ctx context.Context, session *models.TableSession) error {
	event, err := s.Bill(ctx, session)
	if err != nil {
		return err
	}
	return s.publisher.Publish(ctx, strconv.FormatInt(session.ID, 10), event)
}
