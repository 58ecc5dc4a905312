package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sealcost_http_requests_total",
		Help: "HTTP requests served, by method and path pattern.",
	}, []string{"method", "path"})

	scenarioRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sealcost_scenario_runs_total",
		Help: "Scenario pipeline runs, by outcome.",
	}, []string{"outcome"})

	estimates = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sealcost_estimates_total",
		Help: "One-shot estimate computations.",
	})
)

// requestCounter counts requests by method and route pattern. The pattern
// is read after the handler runs so path parameters stay as placeholders
// and the label set stays bounded.
func requestCounter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)
		path := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				path = p
			}
		}
		httpRequests.WithLabelValues(r.Method, path).Inc()
	})
}
