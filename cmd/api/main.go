package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"holidaykeeper/internal/country"
	"holidaykeeper/internal/holiday"
	"holidaykeeper/internal/httpx"
	"holidaykeeper/internal/ingest"
	"holidaykeeper/internal/platform/nager"
)

func main() {
	loadEnvFiles()
	cfg := loadConfig()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool := mustOpenDB(ctx, cfg.DBDSN)
	defer dbPool.Close()

	countryRepository := country.NewPostgresRepo(dbPool, cfg.DBTimeout)
	holidayRepository := holiday.NewPostgresRepo(dbPool, cfg.DBTimeout, cfg.HolidayCountFiltered)
	runRepository := ingest.NewPostgresRepo(dbPool)

	countryService := country.NewService(countryRepository)
	holidayService := holiday.NewService(holidayRepository, countryService)
	nagerClient := nager.NewClient(cfg.Nager)
	ingestService := ingest.NewService(nagerClient, holidayService, country.NewDBSource(countryRepository), runRepository, cfg.Ingest)

	scheduler, err := ingest.NewScheduler(ingestService, cfg.SyncCron, cfg.SyncTimezone)
	if err != nil {
		slog.Error("scheduler_init_failed", "error", err)
		os.Exit(1)
	}

	if cfg.BootstrapEnabled {
		bootstrapper := ingest.NewBootstrapper(countryService, country.NewAPISource(nagerClient), ingestService)
		go bootstrapper.Run(ctx)
	}
	scheduler.Start(ctx)

	if cfg.JWTSecret == "" {
		slog.Warn("jwt_secret_unset", "detail", "write routes are not authenticated")
	}

	limiter := httpx.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go limiter.Run(ctx)

	router := newRouter(cfg, handlers{
		holidays: holiday.NewHTTPHandler(holidayService),
		ingest:   ingest.NewHTTPHandler(ingestService, countryService, cfg.InternalSecret),
		ready:    dbPool.Ping,
	}, limiter)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server_starting", "addr", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutdown_signal_received")
	case err := <-serverErr:
		if err != nil {
			slog.Error("server_error", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("server_shutdown_failed", "error", err)
	}
	if err := scheduler.Stop(shutdownCtx); err != nil {
		slog.Error("scheduler_stop_failed", "error", err)
	}
	slog.Info("server_stopped")
}

func mustOpenDB(ctx context.Context, dsn string) *pgxpool.Pool {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		slog.Error("db_pool_create_failed", "error", err)
		os.Exit(1)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		slog.Error("db_ping_failed", "dsn", redactDSN(dsn), "error", err)
		os.Exit(1)
	}
	slog.Info("database_connection_ok")
	return pool
}

func redactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
