package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/alexanderramin/throughput/internal/cli"
	"github.com/alexanderramin/throughput/internal/config"
	"github.com/alexanderramin/throughput/internal/db"
	"github.com/alexanderramin/throughput/internal/logging"
	"github.com/alexanderramin/throughput/internal/service"
)

func main() {
	err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(cli.ExitCode(err))
}

func run() error {
	cfg, err := config.Load(config.DefaultEnvFiles...)
	if err != nil {
		return err
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()
	logger.Debug("database ready", zap.String("path", cfg.DBPath))

	observers := []service.UseCaseObserver{service.NewLogUseCaseObserver(logger)}
	app := &cli.App{
		Projects: service.NewProjectService(database),
		Config:   cfg,
		Logger:   logger,
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics, err := service.NewMetricsObserver(reg)
		if err != nil {
			return fmt.Errorf("registering metrics: %w", err)
		}
		observers = append(observers, metrics)
		app.Metrics = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	}

	uow := db.NewSQLiteUnitOfWork(database, logger)
	app.Imports = service.NewImportService(uow, logger, observers...)

	return cli.NewRootCmd(app).ExecuteContext(context.Background())
}
