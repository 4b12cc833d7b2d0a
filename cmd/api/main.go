package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"moneytracker/internal/interfaces/scheduler"
	"moneytracker/internal/shared/config"
	"moneytracker/internal/shared/logger"
	"moneytracker/internal/shared/telemetry"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(!cfg.IsProduction()).With().
		Str("service", cfg.Telemetry.ServiceName).
		Str("env", cfg.Server.Environment).
		Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry.Enabled {
		shutdownTelemetry, err := telemetry.Init(ctx, telemetry.Config{
			ServiceName:  cfg.Telemetry.ServiceName,
			Environment:  cfg.Server.Environment,
			OTLPEndpoint: cfg.Telemetry.OTLPEndpoint,
			MetricsPort:  cfg.Telemetry.MetricsPort,
			Logger:       log,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize telemetry: %w", err)
		}
		defer func() {
			if err := shutdownTelemetry(context.Background()); err != nil {
				log.Error().Err(err).Msg("telemetry shutdown error")
			}
		}()
		log.Info().Str("endpoint", cfg.Telemetry.OTLPEndpoint).Msg("telemetry initialized")
	}

	deps, err := NewDependencies(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer deps.Close()

	sched, err := startScheduler(cfg, deps, log)
	if err != nil {
		return err
	}

	handler := SetupRoutes(deps, cfg, log)
	srv, redirectSrv, serverErr := StartServers(NewServerConfigFromConfig(handler, cfg), log)

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		log.Error().Err(err).Msg("server error")
		GracefulShutdown(srv, redirectSrv, sched, shutdownTimeout, log)
		return err
	}

	GracefulShutdown(srv, redirectSrv, sched, shutdownTimeout, log)
	return nil
}

func startScheduler(cfg *config.Config, deps *Dependencies, log zerolog.Logger) (*scheduler.Scheduler, error) {
	if !cfg.Scheduler.Enabled {
		log.Info().Msg("scheduler is disabled")
		return nil, nil
	}

	sched, err := scheduler.NewScheduler(scheduler.SchedulerConfig{
		ScheduleTimes: cfg.Scheduler.ScheduleTimes,
		WorkerCount:   cfg.Scheduler.WorkerCount,
		JobDelay:      cfg.Scheduler.JobDelay,
		QueueSize:     cfg.Scheduler.QueueSize,
		RunOnStartup:  cfg.Scheduler.RunOnStartup,
		JobProvider:   deps.Reminders.Jobs,
		Logger:        log,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	sched.Start()
	return sched, nil
}
