package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/GoSim-25-26J-441/regnet-backend/config"
	"github.com/GoSim-25-26J-441/regnet-backend/internal/bootstrap"
	cronjob "github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/cron"
)

const serviceName = "regnet-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	bootstrap.SetupLogger(cfg.App.Environment, cfg.App.LogLevel)
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var db *pgxpool.Pool
	if cfg.DB.DSN != "" {
		db, err = bootstrap.OpenDB(ctx, bootstrap.DBOptions{
			DSN:      cfg.DB.DSN,
			MaxConns: int32(cfg.DB.MaxConns),
			MinConns: int32(cfg.DB.MinConns),
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open database")
		}
		defer db.Close()
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to redis")
		}
		defer rdb.Close()
	}

	svcs, err := bootstrap.BuildServices(ctx, cfg, db, rdb)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build services")
	}
	defer svcs.Layouts.Close()

	if err := svcs.Dashboard.Reload(ctx); err != nil {
		log.Error().Err(err).Msg("Initial dataset load failed")
	}

	scheduler := cronjob.NewScheduler(cfg.Sources.RefreshSchedule, svcs.Dashboard, cfg.Sources.FetchTimeout*4)
	if err := scheduler.Start(ctx); err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.Sources.RefreshSchedule).Msg("Invalid REFRESH_SCHEDULE")
	}
	defer scheduler.Stop()

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Version:     cfg.App.Version,
		CORSOrigins: cfg.Server.CORSOrigins,
		ExportRate:  cfg.Server.ExportRateLimit,
		ExportBurst: cfg.Server.ExportBurst,
		DB:          db,
		Redis:       rdb,
		Dashboard:   svcs.Dashboard,
		Layouts:     svcs.Layouts,
		Themes:      svcs.Themes,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Str("env", cfg.App.Environment).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server shutdown complete")
}
