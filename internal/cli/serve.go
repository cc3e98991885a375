package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Lixing-Zhang/restaurant-pos/backend/internal/config"
	"github.com/Lixing-Zhang/restaurant-pos/backend/internal/events"
	"github.com/Lixing-Zhang/restaurant-pos/backend/internal/server"
	"github.com/Lixing-Zhang/restaurant-pos/backend/internal/telemetry"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long:  "Connects to the database, applies migrations when enabled and serves the API until interrupted",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rt, err := setup(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		return err
	}
	defer rt.shutdown()

	cfg, log := rt.cfg, rt.log
	log.Info("starting restaurant pos api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"database", cfg.Database.Scheme(),
		"log_level", cfg.LogLevel,
	)

	store, err := rt.openStore(ctx, cfg.Database.Migrate)
	if err != nil {
		log.Error("failed to open store", "error", err)
		return err
	}
	defer store.Close()

	metrics, err := telemetry.NewMetrics(rt.telemetry.Meter)
	if err != nil {
		return fmt.Errorf("failed to create metrics: %w", err)
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		ensureTopic(ctx, cfg.Kafka, log)
		publisher = events.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, rt.telemetry.Tracer)
		log.Info("publishing table session events", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
	}
	defer publisher.Close()

	router := server.NewRouter(server.Deps{
		Store:          store,
		Publisher:      publisher,
		Metrics:        metrics,
		Tracer:         rt.telemetry.Tracer,
		Logger:         log,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RequestTimeout: time.Duration(cfg.Server.RequestTimeout) * time.Second,
	})

	if err := server.Run(ctx, cfg.Server, router, log); err != nil {
		log.Error("server error", "error", err)
		return err
	}
	return nil
}

const topicSetupTimeout = 10 * time.Second

var createTopic = events.CreateTopic

// ensureTopic creates the events topic. Failures only warn since the topic may already exist.
func ensureTopic(ctx context.Context, cfg config.KafkaConfig, log *slog.Logger) {
	ctx, cancel := context.WithTimeout(ctx, topicSetupTimeout)
	defer cancel()

	if err := createTopic(ctx, cfg.Brokers[0], cfg.Topic, 3, 1); err != nil {
		log.Warn("failed to create topic (may already exist)", "topic", cfg.Topic, "error", err)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
