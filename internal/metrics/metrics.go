package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/lease"
)

const namespace = "nestly"

// Metrics owns a private registry so tests and multiple servers don't collide
// on the global one.
type Metrics struct {
	registry *prometheus.Registry

	requests   *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	candidates *prometheus.GaugeVec
	digestRuns *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		candidates: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "lease_renewal_candidates",
			Help:      "Active leases due for renewal by expiration bucket, as of the last digest run.",
		}, []string{"bucket"}),
		digestRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renewal_digest_runs_total",
			Help:      "Renewal digest job runs by result.",
		}, []string{"result"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.duration,
		m.candidates,
		m.digestRuns,
	)

	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records request count and latency labelled by the chi route
// pattern, so path parameters don't explode label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.requests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

// SetRenewalCandidates publishes the candidate count per bucket. Buckets with
// no candidates are reset to zero.
func (m *Metrics) SetRenewalCandidates(candidates []lease.Candidate) {
	counts := map[lease.Bucket]int{
		lease.BucketUrgent:  0,
		lease.BucketWarning: 0,
		lease.BucketNormal:  0,
	}

	for _, c := range candidates {
		counts[c.Bucket]++
	}

	for bucket, n := range counts {
		m.candidates.WithLabelValues(string(bucket)).Set(float64(n))
	}
}

func (m *Metrics) DigestRun(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}

	m.digestRuns.WithLabelValues(result).Inc()
}
