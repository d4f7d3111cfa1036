package main

import (
	"context"
	"net/http"
	"time"

	"holidaykeeper/internal/holiday"
	"holidaykeeper/internal/httpx"
	"holidaykeeper/internal/ingest"
	"holidaykeeper/internal/platform/crypto"
)

const maxBodyBytes = 1 << 20

type handlers struct {
	holidays *holiday.HTTPHandler
	ingest   *ingest.HTTPHandler
	ready    func(ctx context.Context) error
}

func newRouter(cfg Config, h handlers, limiter *httpx.RateLimiter) http.Handler {
	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := h.ready(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	admin := httpx.RequireRole(cfg.JWTSecret, crypto.RoleAdmin)

	router.HandleFunc("GET /api/v1/holidays", h.holidays.List)
	router.Handle("PUT /api/v1/holidays/upsert", admin(http.HandlerFunc(h.ingest.Upsert)))
	router.Handle("DELETE /api/v1/holidays/{countryName}", admin(http.HandlerFunc(h.holidays.Delete)))

	router.HandleFunc("POST /internal/jobs/sync", h.ingest.Sync)
	router.HandleFunc("GET /internal/jobs/runs", h.ingest.Runs)

	return httpx.Chain(router,
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware,
		httpx.RecoveryMiddleware,
		httpx.SecurityHeadersMiddleware,
		httpx.CORSMiddleware(cfg.CORSAllowedOrigins),
		limiter.Middleware,
		httpx.RequestSizeLimitMiddleware(maxBodyBytes),
	)
}
