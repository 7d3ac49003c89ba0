package ical

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Routes serves the schedules handled by h as /{feed}.ics and /{feed}.json
// and the metrics gathered by g as /metrics.
func Routes(h *Handler, g prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	r.Get("/{file}", h.ServeHTTP)
	return r
}
