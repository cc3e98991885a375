package telemetry

import (
	"context"
	"testing"

	"github.com/Lixing-Zhang/restaurant-pos/backend/internal/config"
)

func TestSetup_WithoutEndpoint(t *testing.T) {
	p, err := Setup(context.Background(), config.TelemetryConfig{ServiceName: "restaurant-pos"})
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	if p.Tracer == nil || p.Meter == nil {
		t.Fatal("Setup() returned nil tracer or meter")
	}
	if p.LogHandler != nil {
		t.Error("Setup() without endpoint should not export logs")
	}
	if err := p.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestNewMetrics(t *testing.T) {
	m, err := NewMetrics(Noop().Meter)
	if err != nil {
		t.Fatalf("NewMetrics() error = %v", err)
	}

	ctx := context.Background()
	m.OrdersCreated.Add(ctx, 1)
	m.OrderValue.Record(ctx, 25.8)
	m.SessionsOpened.Add(ctx, 1)
	m.SessionsClosed.Add(ctx, 1)
	m.EventsPublished.Add(ctx, 1)

	if NoopMetrics() == nil {
		t.Error("NoopMetrics() returned nil")
	}
}
