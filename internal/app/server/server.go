// Package server assembles the HTTP router of the shortener.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/atinyakov/shortlink-registry/internal/app/handler"
	"github.com/atinyakov/shortlink-registry/internal/app/service"
	"github.com/atinyakov/shortlink-registry/internal/metrics"
	"github.com/atinyakov/shortlink-registry/internal/middleware"
)

// Init returns the router serving the public API, the internal stats
// endpoint (guarded by trustedSubnet) and, when m is set, /metrics.
func Init(baseURL string, logger *zap.Logger, registry service.RegistryIface, m *metrics.Metrics, trustedSubnet string) *chi.Mux {
	post := handler.NewPost(baseURL, registry, logger)
	get := handler.NewGet(registry, logger)

	r := chi.NewRouter()
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(middleware.WithMetrics(m))
	r.Use(middleware.WithGzipRequest)
	r.Use(middleware.WithGzipResponse)

	r.Post("/", post.PlainBody)
	r.Post("/shorten", post.HandleShorten)
	r.Post("/api/shorten", post.HandlePostJSON)

	r.Get("/s/{code}", get.ByShort)
	r.Get("/ping", get.PingDB)

	r.With(middleware.WithTrustedSubnet(trustedSubnet, logger)).
		Get("/api/internal/stats", get.Stats)

	if m != nil {
		r.Handle("/metrics", m.Handler())
	}

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Route not found", http.StatusNotFound)
	})

	return r
}
