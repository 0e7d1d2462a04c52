package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"funnel-analytics/database"
	"funnel-analytics/entities/funnel"
	"funnel-analytics/entities/history"
	"funnel-analytics/entities/insights"
	"funnel-analytics/entities/live"
	"funnel-analytics/entities/report"
	"funnel-analytics/middlewares"
	"funnel-analytics/utils"
)

const (
	SERVER_READ_HEADER_TIMEOUT = 10 * time.Second
	SERVER_WRITE_TIMEOUT       = 60 * time.Second
	SERVER_SHUTDOWN_TIMEOUT    = 15 * time.Second
)

func main() {
	cfg, err := utils.LoadEnvVariables()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := utils.NewLogger(cfg.Env, cfg.LogLevel)
	if cfg.Env == utils.ENV_RELEASE {
		logger.Warn().Msg("running in PRODUCTION environment")
	} else {
		logger.Info().Str("env", cfg.Env).Msg("current environment")
	}

	if err := run(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg utils.Config, logger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.OpenMySQL(ctx, cfg.MySQLURI)
	if err != nil {
		return err
	}
	defer db.Close()

	hub := live.NewHub(logger)
	trackListeners := []funnel.TrackListener{hub}
	bundleListeners := []insights.BundleListener{hub}
	var handlerOpts []report.Option

	if cfg.MongoURI != "" {
		mongoDB, err := database.OpenMongo(ctx, cfg.MongoURI, cfg.Env)
		if err != nil {
			logger.Error().Err(err).Msg("MongoDB unavailable, history archive disabled")
		} else {
			defer mongoDB.Client().Disconnect(context.Background())
			archive := history.NewArchive(mongoDB, logger)
			trackListeners = append(trackListeners, archive)
			bundleListeners = append(bundleListeners, archive)
			handlerOpts = append(handlerOpts, report.WithSnapshots(archive))
		}
	}

	if cfg.RedisURI != "" {
		rdb, err := database.OpenRedis(ctx, cfg.RedisURI)
		if err != nil {
			logger.Error().Err(err).Msg("Redis unavailable, report cache disabled")
		} else {
			defer rdb.Close()
			ttl := time.Duration(cfg.ReportCacheTTLMinutes) * time.Minute
			handlerOpts = append(handlerOpts, report.WithCache(report.NewRedisCache(rdb, ttl, logger)))
		}
	}

	engine, err := funnel.NewEngine(ctx, db, logger, funnel.WithTrackListeners(trackListeners...))
	if err != nil {
		return err
	}
	generator := insights.NewGenerator(engine, logger, insights.WithBundleListeners(bundleListeners...))

	mux := http.NewServeMux()
	report.NewHandlers(engine, generator, logger, handlerOpts...).Register(mux)
	mux.Handle("GET /v1/ws/analytics", hub)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           middlewares.RequestLogger(logger)(middlewares.SecurityHeaders(middlewares.Cors(mux))),
		ReadHeaderTimeout: SERVER_READ_HEADER_TIMEOUT,
		WriteTimeout:      SERVER_WRITE_TIMEOUT,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server started")
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), SERVER_SHUTDOWN_TIMEOUT)
	defer cancel()
	logger.Info().Msg("shutting down")
	return server.Shutdown(shutdownCtx)
}
