package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Mohd-Abdelaleem/darbi-salati/internal"
	"github.com/Mohd-Abdelaleem/darbi-salati/internal/api"
	"github.com/Mohd-Abdelaleem/darbi-salati/internal/config"
	"github.com/Mohd-Abdelaleem/darbi-salati/internal/prayer"
	"github.com/Mohd-Abdelaleem/darbi-salati/internal/service"
	"github.com/Mohd-Abdelaleem/darbi-salati/internal/storage"
)

type app struct {
	logger internal.Logger
	store  *service.DayStore
}

func (a *app) Logger() internal.Logger  { return a.logger }
func (a *app) Store() *service.DayStore { return a.store }

func main() {
	cfg := config.Load()

	logger, err := internal.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	weights, err := config.LoadWeights(cfg.WeightsFile)
	if err != nil {
		logger.Fatalf("failed to load weights: %v", err)
	}

	provider, err := prayer.NewFixedProvider(internal.PrayerTimes{
		Fajr:    cfg.FajrTime,
		Sunrise: cfg.SunriseTime,
		Dhuhr:   cfg.DhuhrTime,
		Asr:     cfg.AsrTime,
		Maghrib: cfg.MaghribTime,
		Isha:    cfg.IshaTime,
	})
	if err != nil {
		logger.Fatalf("invalid prayer schedule: %v", err)
	}

	var dayRepo storage.DayRepository
	var snapRepo storage.SnapshotRepository
	switch cfg.DBType {
	case "postgres":
		dayRepo, snapRepo, err = storage.NewPostgresRepositories(cfg.DBDSN, logger)
	default:
		dayRepo, snapRepo, err = storage.NewFileRepositories(cfg.DataDir, logger)
	}
	if err != nil {
		logger.Fatalf("failed to init storage (%s): %v", cfg.DBType, err)
	}
	logger.Infof("storage backend: %s", cfg.DBType)

	store := service.NewDayStore(service.DayStoreOptions{
		DayRepo:   dayRepo,
		SnapRepo:  snapRepo,
		Provider:  provider,
		Weights:   weights,
		Logger:    logger,
		Latitude:  cfg.Latitude,
		Longitude: cfg.Longitude,
	})

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	api.RegisterRoutes(r, &app{logger: logger, store: store})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Infof("server running on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("server shutdown: %v", err)
	}
	// Land any debounced writes before exiting.
	if err := store.Flush(); err != nil {
		logger.Errorf("flush on shutdown: %v", err)
	}
}
