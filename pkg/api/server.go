// Package api serves archived SMF parse runs over HTTP: run summaries,
// decoded records per family/subtype, health, and Prometheus metrics.
package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router builds the full route tree for a server.
func Router(server *Server, metrics *Metrics, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", metrics.InstrumentHandler("GET", "/api/v1/health", server.handleHealth))
		r.Get("/runs", metrics.InstrumentHandler("GET", "/api/v1/runs", server.handleListRuns))
		r.Get("/runs/{runID}", metrics.InstrumentHandler("GET", "/api/v1/runs/{runID}", server.handleGetRun))
		r.Get("/runs/{runID}/records/{family}/{subtype}",
			metrics.InstrumentHandler("GET", "/api/v1/runs/{runID}/records/{family}/{subtype}", server.handleGetRecords))
	})

	return r
}

// StartServer starts the HTTP server with all routes configured. It
// blocks until the listener fails.
func StartServer(runs RunStore, config ServerConfig) error {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)
	server := NewServer(runs, config, metrics)

	addr := fmt.Sprintf("%s:%d", config.Bind, config.Port)
	return http.ListenAndServe(addr, Router(server, metrics, registry))
}
