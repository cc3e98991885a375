package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel/trace/noop"

	"github.com/Lixing-Zhang/restaurant-pos/backend/internal/models"
	"github.com/Lixing-Zhang/restaurant-pos/backend/internal/repository"
	"github.com/Lixing-Zhang/restaurant-pos/backend/internal/telemetry"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// recordingPublisher keeps every published event in memory
type recordingPublisher struct {
	mu     sync.Mutex
	keys   []string
	values []any
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, key string, value any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.keys = append(p.keys, key)
	p.values = append(p.values, value)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

type testEnv struct {
	store     *repository.Store
	publisher *recordingPublisher
	products  *ProductService
	orders    *OrderService
	sessions  *SessionService
}

func newTestEnv() *testEnv {
	store := repository.NewInMemoryStore()
	publisher := &recordingPublisher{}
	metrics := telemetry.NoopMetrics()
	tracer := noop.NewTracerProvider().Tracer("test")
	log := testLogger()

	return &testEnv{
		store:     store,
		publisher: publisher,
		products:  NewProductService(store.Products, log),
		orders:    NewOrderService(store, metrics, tracer, log),
		sessions:  NewSessionService(store, publisher, metrics, tracer, log),
	}
}

func (e *testEnv) openSession(tableID int64) *models.TableSession {
	session, err := e.sessions.OpenSession(context.Background(), tableID)
	if err != nil {
		panic(err)
	}
	return session
}

func isValidationError(err error, field string) bool {
	var verrs models.ValidationErrors
	if !errors.As(err, &verrs) {
		return false
	}
	for _, fe := range verrs {
		if fe.Field == field {
			return true
		}
	}
	return false
}
