package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Lixing-Zhang/restaurant-pos/backend/internal/config"
	"github.com/Lixing-Zhang/restaurant-pos/backend/internal/repository"
	"github.com/Lixing-Zhang/restaurant-pos/backend/internal/telemetry"
	"github.com/Lixing-Zhang/restaurant-pos/backend/pkg/logger"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "restaurant-pos",
	Short: "Restaurant point-of-sale API",
	Long:  "Serves products, tables, table sessions and orders over HTTP",
	RunE:  runServe,
	// usage is noise on runtime failures
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
}

// runtime holds what every command needs after startup
type runtime struct {
	cfg       *config.Config
	log       *slog.Logger
	telemetry *telemetry.Providers
}

func setup(ctx context.Context) (*runtime, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	providers, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	var log *slog.Logger
	if providers.LogHandler != nil {
		log = logger.New(cfg.LogLevel, providers.LogHandler)
	} else {
		log = logger.New(cfg.LogLevel)
	}
	slog.SetDefault(log)

	return &runtime{cfg: cfg, log: log, telemetry: providers}, nil
}

func (rt *runtime) shutdown() {
	if err := rt.telemetry.Shutdown(context.Background()); err != nil {
		rt.log.Warn("telemetry shutdown failed", "error", err)
	}
}

// openStore connects to the configured backend and migrates it when enabled
func (rt *runtime) openStore(ctx context.Context, migrate bool) (*repository.Store, error) {
	store, err := repository.Open(ctx, rt.cfg.Database, rt.log)
	if err != nil {
		return nil, err
	}

	if migrate {
		if err := store.Migrate(ctx); err != nil {
			store.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	return store, nil
}
