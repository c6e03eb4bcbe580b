package metrics_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/lease"
	"github.com/mohammadr7204/nyc-rental-platform-sub002/internal/metrics"
)

func scrape(t *testing.T, m *metrics.Metrics) string {
	t.Helper()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	return string(body)
}

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	m := metrics.New()

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/leases/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"a", "b"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/leases/"+id, nil))
	}

	body := scrape(t, m)
	assert.Contains(t, body, `nestly_http_requests_total{code="404",method="GET",route="/leases/{id}"} 2`)
	assert.Contains(t, body, `nestly_http_request_duration_seconds_count{method="GET",route="/leases/{id}"} 2`)
}

func TestSetRenewalCandidates(t *testing.T) {
	m := metrics.New()

	m.SetRenewalCandidates([]lease.Candidate{
		{Bucket: lease.BucketUrgent},
		{Bucket: lease.BucketUrgent},
		{Bucket: lease.BucketWarning},
	})

	body := scrape(t, m)
	assert.Contains(t, body, `nestly_lease_renewal_candidates{bucket="urgent"} 2`)
	assert.Contains(t, body, `nestly_lease_renewal_candidates{bucket="warning"} 1`)
	assert.Contains(t, body, `nestly_lease_renewal_candidates{bucket="normal"} 0`)

	m.SetRenewalCandidates(nil)
	assert.Contains(t, scrape(t, m), `nestly_lease_renewal_candidates{bucket="urgent"} 0`)
}

func TestDigestRun(t *testing.T) {
	m := metrics.New()

	m.DigestRun(nil)
	m.DigestRun(nil)
	m.DigestRun(errors.New("db down"))

	body := scrape(t, m)
	assert.Contains(t, body, `nestly_renewal_digest_runs_total{result="ok"} 2`)
	assert.Contains(t, body, `nestly_renewal_digest_runs_total{result="error"} 1`)
}
