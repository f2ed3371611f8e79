package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// CacheHitsTotal counts horoscope responses served from the cache.
	CacheHitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "astro_cache_hits_total",
			Help: "Total number of response cache hits.",
		},
	)

	// CacheMissesTotal counts lookups that had to go upstream.
	CacheMissesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "astro_cache_misses_total",
			Help: "Total number of response cache misses.",
		},
	)

	// UpstreamRequestsTotal counts calls to the astrology API by status.
	// Transport failures are recorded with status_code="error".
	UpstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "astro_upstream_requests_total",
			Help: "Total number of upstream astrology API calls.",
		},
		[]string{"status_code"},
	)

	// ProxyLatencySeconds is the inbound HTTP latency in seconds.
	ProxyLatencySeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "astro_proxy_latency_seconds",
			Help:    "HTTP request latency for the proxy in seconds.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"path", "method", "status_code"},
	)
)

// Register is called once in main() to register metrics.
func Register() {
	prometheus.MustRegister(
		CacheHitsTotal,
		CacheMissesTotal,
		UpstreamRequestsTotal,
		ProxyLatencySeconds,
	)
}

// Handler exposes the /metrics endpoint for Prometheus to scrape.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveUpstream records one upstream call. status 0 means the call
// never produced a response.
func ObserveUpstream(status int) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	UpstreamRequestsTotal.WithLabelValues(label).Inc()
}

// Middleware measures proxy latency for each HTTP request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rec := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rec, r)

		ProxyLatencySeconds.
			WithLabelValues(r.URL.Path, r.Method, strconv.Itoa(rec.statusCode)).
			Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}
