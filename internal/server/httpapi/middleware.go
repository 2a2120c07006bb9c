package httpapi

import (
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/dmitrijs2005/staffkeeper/internal/server/auth"
)

// statusRecorder captures the response status so middleware can count
// errors after the handler has run.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

type metrics struct {
	endpointCalls *prometheus.CounterVec
	endpointErrs  *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		endpointCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "staffkeeper_endpoint_calls_total",
			Help: "Total number of calls per endpoint.",
		}, []string{"endpoint"}),
		endpointErrs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "staffkeeper_endpoint_errors_total",
			Help: "Total number of error responses per endpoint.",
		}, []string{"endpoint"}),
	}
	reg.MustRegister(m.endpointCalls, m.endpointErrs)
	return m
}

// withMetrics counts calls and error responses for one endpoint label.
func (m *metrics) withMetrics(endpoint string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.endpointCalls.WithLabelValues(endpoint).Inc()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		if rec.status >= http.StatusBadRequest {
			m.endpointErrs.WithLabelValues(endpoint).Inc()
		}
	})
}

// withRateLimit rejects requests above the configured global rate with 429.
func withRateLimit(limiter *rate.Limiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "The API is at capacity, try again later.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withAuth demands a valid bearer token before dispatch. When enabled is
// false the check is skipped entirely, restoring the open behavior of the
// original service.
func withAuth(enabled bool, secret []byte, next http.Handler) http.Handler {
	if !enabled {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		if _, err := auth.ParseToken(token, secret); err != nil {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		next.ServeHTTP(w, r)
	})
}
