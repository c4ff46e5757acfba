package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/instanthaul/haul-platform/internal/config"
	"github.com/instanthaul/haul-platform/internal/db"
	"github.com/instanthaul/haul-platform/internal/model"
	"github.com/instanthaul/haul-platform/internal/server"
	"github.com/instanthaul/haul-platform/internal/service"
	"github.com/instanthaul/haul-platform/internal/storage"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("load config", "err", err)
		os.Exit(1)
	}

	var store storage.Storage
	switch cfg.StorageBackend {
	case config.BackendPostgres:
		gormDB, err := db.NewGormDB(&cfg.DB)
		if err != nil {
			log.Error("init db", "err", err)
			os.Exit(1)
		}
		if err := model.AutoMigrate(gormDB); err != nil {
			log.Error("auto migrate", "err", err)
			os.Exit(1)
		}
		sqlDB, err := gormDB.DB()
		if err != nil {
			log.Error("sql DB", "err", err)
			os.Exit(1)
		}
		defer sqlDB.Close()
		store = storage.NewGormStorage(gormDB)
	default:
		store = storage.NewMemoryStorage()
	}
	log.Info("storage ready", "backend", cfg.StorageBackend)

	booking := service.NewBookingService(store)
	e := server.New(store, booking).Router()

	go func() {
		if err := e.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http serve", "err", err)
			os.Exit(1)
		}
	}()
	log.Info("haul core listening", "addr", cfg.HTTPAddr)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error("shutdown", "err", err)
	}
}
