package httpserver

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"astro-proxy/internal/handlers"
	"astro-proxy/internal/metrics"
	"astro-proxy/internal/middleware"
)

const maxRequestBody = 512 * 1024

func SetupRouter(
	r chi.Router,
	baseLogger *zap.Logger,
	pingHandler *handlers.PingHandler,
	horoscopeHandler *handlers.HoroscopeHandler,
) {
	r.Use(metrics.Middleware)

	// base middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)

	r.Use(middleware.LoggingContext(baseLogger))
	r.Use(middleware.Recoverer())
	r.Use(middleware.MaxBodySize(maxRequestBody))

	r.Get("/ping", pingHandler.Ping)
	r.Post("/"+horoscopeHandler.Route, horoscopeHandler.WesternHoroscope)

	r.Handle("/metrics", metrics.Handler())
}
