package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orders/cmd"
	"orders/internal/adapters/in/natsrpc"
	"orders/internal/adapters/out/postgres/orderrepo"
	"orders/internal/jobs"
	"orders/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zlog, err := logger.New(cfg.AppMode, cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() {
		_ = zlog.Sync()
	}()

	gormDB, err := gorm.Open(gormpostgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		zlog.Fatal("database connection failed", zap.Error(err))
	}

	if err = gormDB.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{}); err != nil {
		zlog.Fatal("database migration failed", zap.Error(err))
	}

	natsConn, err := nats.Connect(
		cfg.NATSURL,
		nats.Name("orders"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		zlog.Fatal("nats connection failed", zap.Error(err), zap.String("url", cfg.NATSURL))
	}

	root := cmd.NewCompositionRoot(cfg, gormDB, natsConn, zlog)

	server := natsrpc.NewServer(
		natsConn,
		root.CreateCreateOrderCommandHandler(),
		root.CreateChangeOrderStatusCommandHandler(),
		root.CreateGetOrdersQueryHandler(),
		root.CreateGetOrderQueryHandler(),
		cfg.RequestTimeout,
		zlog,
	)
	if err = server.Start(); err != nil {
		zlog.Fatal("subject subscription failed", zap.Error(err))
	}

	jobManager := jobs.NewJobManager(root.CreateGetOrdersQueryHandler(), cfg.StatusReportSchedule, zlog)
	if err = jobManager.StartAll(); err != nil {
		zlog.Fatal("job startup failed", zap.Error(err))
	}

	e := startWebServer(zlog, cfg.HTTPPort)

	zlog.Info("orders service started",
		zap.String("nats", cfg.NATSURL),
		zap.String("http_port", cfg.HTTPPort))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down")

	server.Stop()
	jobManager.StopAll()

	if err = natsConn.Drain(); err != nil {
		zlog.Warn("nats drain failed", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = e.Shutdown(ctx); err != nil {
		zlog.Warn("http shutdown failed", zap.Error(err))
	}

	if sqlDB, dbErr := gormDB.DB(); dbErr == nil {
		_ = sqlDB.Close()
	}

	zlog.Info("orders service stopped")
}

func startWebServer(zlog *zap.Logger, port string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && err != http.ErrServerClosed {
			zlog.Error("http server stopped", zap.Error(err))
		}
	}()

	return e
}
