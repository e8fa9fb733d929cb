package main

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/omnipos-warehouse/config"
	"github.com/fekuna/omnipos-warehouse/internal/grpcerr"
	"github.com/fekuna/omnipos-warehouse/internal/server"
	"github.com/fekuna/omnipos-warehouse/internal/store"
	"github.com/fekuna/omnipos-warehouse/pkg/broker"
	"github.com/fekuna/omnipos-warehouse/pkg/database/sqlite"
	"github.com/fekuna/omnipos-warehouse/pkg/i18n"
	"github.com/fekuna/omnipos-warehouse/pkg/logger"
	"github.com/fekuna/omnipos-warehouse/pkg/search"

	inH "github.com/fekuna/omnipos-warehouse/internal/inbound/handler"
	inRepoPkg "github.com/fekuna/omnipos-warehouse/internal/inbound/repository"
	inUCPkg "github.com/fekuna/omnipos-warehouse/internal/inbound/usecase"

	invH "github.com/fekuna/omnipos-warehouse/internal/inventory/handler"
	invListenerPkg "github.com/fekuna/omnipos-warehouse/internal/inventory/listener"
	invRepoPkg "github.com/fekuna/omnipos-warehouse/internal/inventory/repository"
	invUCPkg "github.com/fekuna/omnipos-warehouse/internal/inventory/usecase"

	outH "github.com/fekuna/omnipos-warehouse/internal/outbound/handler"
	outRepoPkg "github.com/fekuna/omnipos-warehouse/internal/outbound/repository"
	outUCPkg "github.com/fekuna/omnipos-warehouse/internal/outbound/usecase"

	prodH "github.com/fekuna/omnipos-warehouse/internal/product/handler"
	prodRepoPkg "github.com/fekuna/omnipos-warehouse/internal/product/repository"
	prodUCPkg "github.com/fekuna/omnipos-warehouse/internal/product/usecase"

	repH "github.com/fekuna/omnipos-warehouse/internal/report/handler"
	repUCPkg "github.com/fekuna/omnipos-warehouse/internal/report/usecase"

	setH "github.com/fekuna/omnipos-warehouse/internal/settings/handler"
	setRemotePkg "github.com/fekuna/omnipos-warehouse/internal/settings/remote"
	setRepoPkg "github.com/fekuna/omnipos-warehouse/internal/settings/repository"
	setUCPkg "github.com/fekuna/omnipos-warehouse/internal/settings/usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	// 2. Initialize i18n
	i18n.Init()
	for _, f := range cfg.Locale.Files {
		if err := i18n.Load(f); err != nil {
			log.Printf("Failed to load locale file %s: %v", f, err)
		}
	}

	// 3. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}

	if cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = "console"
		logConfig.Level = "debug"
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 4. Open the local settings store
	db, err := sqlite.NewSQLite(&sqlite.Config{Path: cfg.Store.SettingsDSN})
	if err != nil {
		appLogger.Fatal("Could not open settings database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Opened settings database", zap.String("path", cfg.Store.SettingsDSN))

	setRepo, err := setRepoPkg.NewSQLiteRepository(ctx, db)
	if err != nil {
		appLogger.Fatal("Could not prepare settings table", zap.Error(err))
	}

	// 5. Initialize Repositories
	st := store.New()
	prodRepo := prodRepoPkg.NewMemoryRepository(st)
	inRepo := inRepoPkg.NewMemoryRepository(st)
	outRepo := outRepoPkg.NewMemoryRepository(st)
	invRepo := invRepoPkg.NewMemoryRepository(st)

	// 6. Initialize Elasticsearch
	var esClient *search.Client
	if cfg.Elastic.Enabled {
		esClient, err = search.NewClient(&search.Config{
			Addresses: cfg.Elastic.Addresses,
			Username:  cfg.Elastic.Username,
			Password:  cfg.Elastic.Password,
		})
		if err != nil {
			appLogger.Warn("Could not connect to Elasticsearch, catalog search stays in memory", zap.Error(err))
			esClient = nil
		} else {
			appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
		}
	}

	// 7. Initialize UseCases
	setUC := setUCPkg.NewSettingsUseCase(setRepo, setRemotePkg.NewDialer(cfg.Redis.Channel, appLogger), appLogger)
	if err := setUC.Load(ctx); err != nil {
		appLogger.Fatal("Could not load settings", zap.Error(err))
	}
	if err := setUC.StartSync(ctx); err != nil {
		appLogger.Warn("Settings sync unavailable, continuing with local settings", zap.Error(err))
	}
	defer setUC.Close()

	prodUC := prodUCPkg.NewProductUseCase(prodRepo, esClient, cfg.Elastic.Index, appLogger)
	inUC := inUCPkg.NewInboundUseCase(inRepo, prodRepo, appLogger)
	outUC := outUCPkg.NewOutboundUseCase(outRepo, prodRepo, setUC, appLogger)
	invUC := invUCPkg.NewInventoryUseCase(invRepo, appLogger)
	repUC := repUCPkg.NewReportUseCase(invRepo, invUC, setUC, appLogger)

	// 8. Initialize Listeners
	if cfg.Kafka.Enabled {
		kafkaConsumer := broker.NewConsumer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
			GroupID: cfg.Kafka.GroupID,
		})
		defer kafkaConsumer.Close()
		appLogger.Info("Connected to Kafka Consumer", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))

		invListener := invListenerPkg.NewInventoryListener(kafkaConsumer, inUC, outUC, prodRepo, appLogger)
		go invListener.Start(ctx)
	}

	// 9. Initialize Handlers
	errs := grpcerr.NewMapper(prodRepo, appLogger)
	services := server.Services{
		Products:  prodH.NewProductHandler(prodUC, errs, appLogger),
		Inbound:   inH.NewInboundHandler(inUC, prodRepo, errs, appLogger),
		Outbound:  outH.NewOutboundHandler(outUC, prodRepo, errs, appLogger),
		Inventory: invH.NewInventoryHandler(invUC, errs, appLogger),
		Reports:   repH.NewReportHandler(repUC, errs, appLogger),
		Settings:  setH.NewSettingsHandler(setUC, errs, appLogger),
	}

	// 10. Start gRPC Server
	port := cfg.Server.GRPCPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	lis, err := net.Listen("tcp", port)
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}

	grpcServer := server.NewGRPCServer(services, cfg.Locale.Default, appLogger)

	appLogger.Info("Starting gRPC server", zap.String("port", port))

	// Graceful Shutdown
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	cancel()

	stopped := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(10 * time.Second):
		appLogger.Warn("Graceful stop timed out, forcing")
		grpcServer.Stop()
	}
	appLogger.Info("Server stopped")
}
