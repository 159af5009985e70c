package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/ogurasousui/codex-grpc-payroll/internal/adapters/grpc/handler"
	"github.com/ogurasousui/codex-grpc-payroll/internal/app"
	"github.com/ogurasousui/codex-grpc-payroll/internal/platform/config"
	pg "github.com/ogurasousui/codex-grpc-payroll/internal/platform/db/postgres"
	"github.com/ogurasousui/codex-grpc-payroll/internal/platform/logging"
	"github.com/ogurasousui/codex-grpc-payroll/internal/platform/metrics"
	"github.com/ogurasousui/codex-grpc-payroll/internal/platform/server"
	"github.com/ogurasousui/codex-grpc-payroll/internal/platform/tracing"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("failed to load .env: %v", err)
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	shutdownTracing, err := tracing.Setup(ctx, cfg.Tracing)
	if err != nil {
		logger.Fatal("failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("failed to flush traces", zap.Error(err))
		}
	}()

	dbPool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("failed to initialize database pool", zap.Error(err))
	}
	defer dbPool.Close()

	services, err := app.NewServices(dbPool, cfg, logger)
	if err != nil {
		logger.Fatal("failed to build services", zap.Error(err))
	}

	if cfg.Metrics.ListenAddr != "" {
		go func() {
			if err := metrics.Serve(ctx, cfg.Metrics.ListenAddr); err != nil {
				logger.Error("metrics endpoint stopped", zap.Error(err))
			}
		}()
		logger.Info("metrics endpoint listening", zap.String("addr", cfg.Metrics.ListenAddr))
	}

	payroll := handler.NewPayrollGrpcHandler(
		services.Departments,
		services.NewHires,
		services.Bonuses,
		services.Sales,
		nil,
	)
	grpcServer := server.New(cfg.Server.ListenAddr, payroll, logger.Named("grpc"))

	logger.Info("gRPC server listening",
		zap.String("addr", cfg.Server.ListenAddr),
		zap.String("new_hire_policy", cfg.NewHire.FailurePolicy),
		zap.Duration("new_hire_window", cfg.NewHire.Window),
	)

	if err := grpcServer.Run(ctx); err != nil {
		logger.Fatal("server stopped with error", zap.Error(err))
	}
}
