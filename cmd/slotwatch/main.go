package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aleister1102/slotwatch/internal/config"
	"github.com/aleister1102/slotwatch/internal/datastore"
	"github.com/aleister1102/slotwatch/internal/extractor"
	"github.com/aleister1102/slotwatch/internal/fetcher"
	"github.com/aleister1102/slotwatch/internal/logger"
	"github.com/aleister1102/slotwatch/internal/monitor"
	"github.com/aleister1102/slotwatch/internal/notifier"
	"github.com/rs/zerolog"
)

func main() {
	flags := ParseFlags()

	if err := run(flags); err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] %v\n", err)
		os.Exit(1)
	}
}

func run(flags AppFlags) error {
	bootLogger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	gCfg, err := config.LoadGlobalConfig(flags.GlobalConfigFile, bootLogger)
	if err != nil {
		return fmt.Errorf("could not load global config using path '%s': %w", flags.GlobalConfigFile, err)
	}

	if err := config.ValidateConfig(gCfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	zLogger, err := logger.New(gCfg.LogConfig)
	if err != nil {
		return fmt.Errorf("could not initialize logger: %w", err)
	}
	zLogger.Info().Msg("Logger initialized successfully.")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	service, cleanup, err := buildService(gCfg, zLogger)
	if err != nil {
		zLogger.Error().Err(err).Msg("Failed to initialize monitor")
		return err
	}
	defer cleanup()

	if flags.Once {
		report, err := service.RunCycle(ctx)
		if err != nil {
			zLogger.Error().Err(err).Msg("Monitoring cycle failed")
			return err
		}
		zLogger.Info().
			Str("cycle_id", report.CycleID).
			Int("reachable", report.ReachableCount()).
			Int("changed", report.ChangedCount()).
			Bool("site_down", report.SiteDown).
			Msg("Single cycle completed")
		return nil
	}

	if err := service.Run(ctx); err != nil {
		return err
	}
	zLogger.Info().Msg("Application shutdown complete.")
	return nil
}

// buildService wires the state store, fetcher, extractor and notifier into a
// monitor service. The returned cleanup releases the fetcher.
func buildService(gCfg *config.GlobalConfig, zLogger zerolog.Logger) (*monitor.Service, func(), error) {
	store, err := datastore.NewFileStateStore(&gCfg.StorageConfig, zLogger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize state store: %w", err)
	}

	pageFetcher, err := fetcher.New(gCfg.FetcherConfig, zLogger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize fetcher: %w", err)
	}
	cleanup := func() {
		if closer, ok := pageFetcher.(fetcher.Closer); ok {
			if err := closer.Close(); err != nil {
				zLogger.Warn().Err(err).Msg("Failed to close fetcher")
			}
		}
	}

	itemExtractor, err := extractor.New(gCfg.ExtractorConfig, zLogger)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to initialize extractor: %w", err)
	}

	retrying := fetcher.NewRetryingFetcher(pageFetcher, fetcher.RetryPolicyFromConfig(gCfg.FetcherConfig), zLogger)

	service, err := monitor.NewService(gCfg.MonitorConfig, monitor.ServiceDeps{
		Store:     store,
		Fetcher:   retrying,
		Extractor: itemExtractor,
		Notifier:  notifier.New(gCfg.NotificationConfig, zLogger),
	}, zLogger)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to initialize monitor service: %w", err)
	}

	zLogger.Info().
		Str("state_file", store.Path()).
		Str("fetch_mode", gCfg.FetcherConfig.Mode).
		Strs("extractor_strategies", itemExtractor.Strategies()).
		Msg("Monitor initialized")
	return service, cleanup, nil
}
