package telemetry

import (
	"go.opentelemetry.io/otel/metric"
)

type Metrics struct {
	OrdersCreated   metric.Int64Counter
	OrderValue      metric.Float64Histogram
	SessionsOpened  metric.Int64Counter
	SessionsClosed  metric.Int64Counter
	EventsPublished metric.Int64Counter
}

func NewMetrics(meter metric.Meter) (*Metrics, error) {
	ordersCreated, err := meter.Int64Counter("orders_created_total",
		metric.WithDescription("Total orders created"),
		metric.WithUnit("{order}"),
	)
	if err != nil {
		return nil, err
	}

	orderValue, err := meter.Float64Histogram("order_value",
		metric.WithDescription("Price times quantity of created orders"),
		metric.WithUnit("{currency}"),
		metric.WithExplicitBucketBoundaries(1, 5, 10, 25, 50, 100, 250),
	)
	if err != nil {
		return nil, err
	}

	sessionsOpened, err := meter.Int64Counter("table_sessions_opened_total",
		metric.WithDescription("Total table sessions opened"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return nil, err
	}

	sessionsClosed, err := meter.Int64Counter("table_sessions_closed_total",
		metric.WithDescription("Total table sessions closed"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return nil, err
	}

	published, err := meter.Int64Counter("events_published_total",
		metric.WithDescription("Total events published to Kafka"),
		metric.WithUnit("{message}"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		OrdersCreated:   ordersCreated,
		OrderValue:      orderValue,
		SessionsOpened:  sessionsOpened,
		SessionsClosed:  sessionsClosed,
		EventsPublished: published,
	}, nil
}

// NoopMetrics returns instruments that record nothing
func NoopMetrics() *Metrics {
	m, _ := NewMetrics(Noop().Meter)
	return m
}
