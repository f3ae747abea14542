package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	"github.com/simaogato/wealthtrack-backend/internal/adapter/cache"
	grpcadapter "github.com/simaogato/wealthtrack-backend/internal/adapter/grpc"
	"github.com/simaogato/wealthtrack-backend/internal/adapter/repository/postgres"
	"github.com/simaogato/wealthtrack-backend/internal/config"
	"github.com/simaogato/wealthtrack-backend/internal/domain"
	"github.com/simaogato/wealthtrack-backend/internal/logger"
	"github.com/simaogato/wealthtrack-backend/internal/monitoring"
	"github.com/simaogato/wealthtrack-backend/internal/usecase/investment"
	"github.com/simaogato/wealthtrack-backend/internal/usecase/report"
	"github.com/simaogato/wealthtrack-backend/internal/usecase/seeder"
)

func main() {
	cfg := config.Load()
	log := logger.Init(cfg.Logger)

	// 1. Setup Database
	// Give Postgres a moment to come up (Simple retry)
	time.Sleep(cfg.Database.StartupDelay)

	db, err := postgres.NewDB(cfg.Database.ConnectionString(), cfg.Database.MaxOpenConns)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.Migrate(ctx); err != nil {
		log.WithError(err).Fatal("Failed to migrate database")
	}

	// 2. Initialize Repositories (Postgres) and the report cache
	assetRepo := postgres.NewAssetRepository(db)
	balanceChangeRepo := postgres.NewBalanceChangeRepository(db)
	reportCache := newReportCache(cfg.Cache, log)
	defer func() {
		if err := cache.Close(reportCache); err != nil {
			log.WithError(err).Warn("Failed to close report cache")
		}
	}()

	// 3. Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db.DB, cfg.Database.Name),
	)
	metrics := monitoring.NewMetrics(registry)

	// 4. Initialize Services (Use Cases)
	reportService := report.NewReportService(assetRepo, balanceChangeRepo, reportCache, metrics, log, cfg.Report)
	investmentService := investment.NewInvestmentService(assetRepo, balanceChangeRepo, reportCache, log)

	if cfg.Server.SeedDemo {
		demoSeeder := seeder.NewDemoSeeder(assetRepo, balanceChangeRepo, log)
		if err := demoSeeder.Seed(ctx); err != nil {
			log.WithError(err).Fatal("Failed to seed demo portfolio")
		}
		log.WithField("portfolio_id", seeder.DEMO_PORTFOLIO).Info("Demo portfolio seeded")
	}

	// 5. Start gRPC Server with logging and auth interceptors
	grpcServer := grpclib.NewServer(
		grpclib.ChainUnaryInterceptor(
			grpcadapter.LoggingInterceptor(log, metrics),
			grpcadapter.AuthInterceptor(cfg.Server.APIToken),
		),
	)

	grpcadapter.RegisterPerformanceServiceServer(grpcServer, grpcadapter.NewServer(reportService, investmentService))
	reflection.Register(grpcServer)

	addr := cfg.Server.GRPCAddr()
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		log.WithError(err).Fatalf("Failed to listen on %s", addr)
	}

	go func() {
		log.Infof("gRPC server listening on %s", addr)
		if err := grpcServer.Serve(lis); err != nil {
			log.WithError(err).Fatal("Failed to serve gRPC server")
		}
	}()

	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		metricsServer = startMetricsServer(cfg.Metrics.Addr(), metrics, log)
	}

	// Graceful shutdown
	waitForShutdown(grpcServer, metricsServer, log)
}

// newReportCache connects to Redis when enabled. Reports are still served without it
func newReportCache(cfg config.CacheConfig, log *logrus.Logger) domain.ReportCache {
	if !cfg.Enabled {
		log.Info("Report cache disabled")
		return cache.Noop{}
	}

	redisCache, err := cache.NewRedisCache(cfg)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, report cache disabled")
		return cache.Noop{}
	}

	log.WithField("addr", cfg.Addr).Info("Report cache connected")
	return redisCache
}

func startMetricsServer(addr string, metrics *monitoring.Metrics, log *logrus.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Infof("Metrics server listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("Metrics server stopped")
		}
	}()

	return server
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the servers
func waitForShutdown(grpcServer *grpclib.Server, metricsServer *http.Server, log *logrus.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	log.Infof("Received signal: %v. Shutting down gracefully...", sig)

	if metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsServer.Shutdown(ctx); err != nil {
			log.WithError(err).Warn("Failed to stop metrics server")
		}
	}

	grpcServer.GracefulStop()
	log.Info("gRPC server stopped")
}
