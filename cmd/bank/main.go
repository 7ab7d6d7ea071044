package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"savings_bank/internal/config"
	"savings_bank/internal/console"
	"savings_bank/internal/repository/memory"
	"savings_bank/internal/service"
	"savings_bank/internal/teller"
	"savings_bank/pkg/crypto"
	"savings_bank/pkg/metrics"
	"time"
)

const (
	appName = "savings_bank"
)

func main() {
	logger := setupLogger()
	logger.Info("Starting application",
		slog.String("name", appName))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Configuration failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	metricsCollector := metrics.NewMetricsCollector(logger)
	signer := crypto.NewSigner(cfg.SigningKey, logger)
	accountRepo := memory.NewAccountRepository()
	txRepo := memory.NewTransactionRepository()
	auditService := service.NewAuditService(
		[]service.AuditSink{&service.LogSink{Logger: logger}},
		cfg.AuditWorkers,
		logger,
	)

	bankTeller := teller.NewTeller(
		accountRepo,
		txRepo,
		signer,
		cfg.SavingsInterestRate,
		cfg.SavingsMinimumBalance,
		logger,
	).WithMetrics(metricsCollector).WithAudit(auditService)

	var metricsServer *http.Server
	if cfg.MetricsAddr != "" {
		metricsServer = metricsCollector.StartMetricsServer(cfg.MetricsAddr)
	}

	shell := console.NewShell(bankTeller, os.Stdin, os.Stdout, logger)
	if err := shell.Run(context.Background()); err != nil {
		logger.Error("Shell exited with error", slog.String("error", err.Error()))
	}

	shutdown(logger, metricsServer, auditService, metricsCollector)
	logger.Info("Application shutdown complete")
}

// setupLogger writes JSON logs to stderr; stdout belongs to the menu.
func setupLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	handler := slog.NewJSONHandler(os.Stderr, opts)
	return slog.New(handler)
}

func shutdown(
	logger *slog.Logger,
	metricsServer *http.Server,
	auditService *service.AuditService,
	metricsCollector *metrics.MetricsCollector,
) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if metricsServer != nil {
		if err := metricsServer.Shutdown(ctx); err != nil {
			logger.Error("Metrics server shutdown failed", slog.String("error", err.Error()))
		}
	}

	if err := auditService.Shutdown(ctx); err != nil {
		logger.Error("Audit service shutdown failed", slog.String("error", err.Error()))
	}

	if err := metricsCollector.Shutdown(ctx); err != nil {
		logger.Error("Metrics collector shutdown failed", slog.String("error", err.Error()))
	}
}
