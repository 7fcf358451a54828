// Command apiserver runs the AlloyFrontier exploration API server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/turtacn/AlloyFrontier/internal/application/exploration"
	"github.com/turtacn/AlloyFrontier/internal/application/reporting"
	"github.com/turtacn/AlloyFrontier/internal/config"
	"github.com/turtacn/AlloyFrontier/internal/domain/constraint"
	"github.com/turtacn/AlloyFrontier/internal/domain/solution"
	"github.com/turtacn/AlloyFrontier/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/AlloyFrontier/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/AlloyFrontier/internal/infrastructure/optimizer"
	"github.com/turtacn/AlloyFrontier/internal/infrastructure/storage/history"
	httpserver "github.com/turtacn/AlloyFrontier/internal/interfaces/http"
	"github.com/turtacn/AlloyFrontier/internal/interfaces/http/handlers"
	"github.com/turtacn/AlloyFrontier/internal/interfaces/http/middleware"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file (defaults to environment-only)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "apiserver: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(logging.LogConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logging.SetDefault(logger)
	logger = logger.Named("apiserver")

	metrics := prometheus.NewMetrics()

	optClient, err := optimizer.NewClient(cfg.Optimizer.BaseURL, cfg.Optimizer.RequestTimeout)
	if err != nil {
		return fmt.Errorf("init optimizer client: %w", err)
	}

	hist, err := history.NewStore(cfg.History.Path)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer hist.Close()

	svc := exploration.NewService(
		constraint.NewModel(),
		solution.NewStore(),
		optClient,
		hist,
		metrics,
		logger,
	)

	exporter := reporting.NewExporter(
		reporting.NewChartRenderer(),
		hist,
		metrics,
		logger,
		cfg.Export.OutputDir,
		cfg.Export.ReportPrefix,
		cfg.Export.ImageWidth,
		cfg.Export.ImageHeight,
	)

	router := httpserver.NewRouter(httpserver.RouterConfig{
		ExplorationHandler: handlers.NewExplorationHandler(svc),
		ReportHandler:      handlers.NewReportHandler(svc, exporter),
		HealthHandler:      handlers.NewHealthHandler(optClient, logger),
		GateMiddleware:     middleware.NewGateMiddleware(cfg.Gate.Enabled, cfg.Gate.Header, cfg.Gate.Secret, logger),
		LoggingMiddleware:  middleware.NewLoggingMiddleware(logger, metrics, "/healthz", "/readyz", "/metrics"),
		CORSConfig:         middleware.DefaultCORSConfig(),
		Metrics:            metrics,
	})

	srv := httpserver.NewServer(router, "", cfg.Server.Port, logger)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("signal received, shutting down", logging.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Stop(ctx)
}
