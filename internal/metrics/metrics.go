package metrics

import (
	"encoding/json"
	"net/http"

	"github.com/azimbek-dev/converter-api/internal/health"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "converter",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "converter",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})

	// Auth metrics

	RegistrationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "converter",
		Name:      "registrations_total",
		Help:      "Total registration attempts, by outcome.",
	}, []string{"outcome"})

	LoginsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "converter",
		Name:      "logins_total",
		Help:      "Total login attempts, by outcome.",
	}, []string{"outcome"})

	TokenValidationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "converter",
		Name:      "token_validations_total",
		Help:      "Total bearer token validations, by result.",
	}, []string{"result"})
)

func Register() {
	prometheus.MustRegister(
		HTTPRequestDuration,
		HTTPRequestsTotal,
		RegistrationsTotal,
		LoginsTotal,
		TokenValidationsTotal,
	)
}

// NewServer exposes /metrics plus liveness and readiness probes on a
// separate port so they stay off the public API surface.
func NewServer(addr string, checker *health.Checker) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, checker.Liveness(r.Context()))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		result := checker.Readiness(r.Context())
		status := http.StatusOK
		if result.Status != "up" {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, result)
	})
	return &http.Server{Addr: addr, Handler: mux}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
