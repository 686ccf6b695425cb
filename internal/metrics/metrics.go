package metrics

import (
	"encoding/json"
	"net/http"

	"github.com/ErlanBelekov/tinyapp/internal/health"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Links

	LinksCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tinyapp",
		Name:      "links_created_total",
		Help:      "Total short links created.",
	})

	ShortCodeCollisionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tinyapp",
		Name:      "short_code_collisions_total",
		Help:      "Generated short codes that were already taken and had to be regenerated.",
	})

	RedirectsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tinyapp",
		Name:      "redirects_total",
		Help:      "Short link resolutions, by outcome.",
	}, []string{"outcome"})

	// Users

	UsersRegisteredTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tinyapp",
		Name:      "users_registered_total",
		Help:      "Total accounts created.",
	})

	LoginAttemptsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tinyapp",
		Name:      "login_attempts_total",
		Help:      "Login attempts, by outcome.",
	}, []string{"outcome"})

	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tinyapp",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tinyapp",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})
)

func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		LinksCreatedTotal,
		ShortCodeCollisionsTotal,
		RedirectsTotal,
		UsersRegisteredTotal,
		LoginAttemptsTotal,
		HTTPRequestDuration,
		HTTPRequestsTotal,
	)
}

// NewServer serves /metrics plus liveness and readiness probes.
func NewServer(addr string, checker *health.Checker) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, checker.Liveness(r.Context()))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, checker.Readiness(r.Context()))
	})
	return &http.Server{Addr: addr, Handler: mux}
}

func writeHealth(w http.ResponseWriter, result health.HealthResult) {
	status := http.StatusOK
	if result.Status != "up" {
		status = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(result)
}
