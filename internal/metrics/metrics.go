// Package metrics defines the Prometheus metrics of the med-cms server.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values of the result label.
const (
	ResultSuccess     = "success"
	ResultInvalid     = "invalid_credentials"
	ResultInactive    = "inactive"
	ResultRateLimited = "rate_limited"
	ResultRejected    = "rejected"
	ResultError       = "error"
)

// Metrics holds all Prometheus metrics of the application. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	Logins                       *prometheus.CounterVec
	Registrations                *prometheus.CounterVec
	Downloads                    prometheus.Counter
	IdentificationNumbersCreated prometheus.Counter
	RevokedTokensPruned          prometheus.Counter
	HTTPRequests                 *prometheus.CounterVec
	HTTPRequestDuration          *prometheus.HistogramVec
}

// New creates the metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Logins: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "medcms_logins_total",
			Help: "Login attempts by result",
		}, []string{"result"}),
		Registrations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "medcms_specialist_registrations_total",
			Help: "Specialist registration attempts by result",
		}, []string{"result"}),
		Downloads: factory.NewCounter(prometheus.CounterOpts{
			Name: "medcms_file_downloads_total",
			Help: "Successful specialist file downloads",
		}),
		IdentificationNumbersCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "medcms_identification_numbers_created_total",
			Help: "Identification numbers created individually or in batches",
		}),
		RevokedTokensPruned: factory.NewCounter(prometheus.CounterOpts{
			Name: "medcms_revoked_tokens_pruned_total",
			Help: "Expired revoked tokens removed by the background worker",
		}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "medcms_http_requests_total",
			Help: "HTTP requests by method and status code",
		}, []string{"method", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "medcms_http_request_duration_seconds",
			Help:    "HTTP request latency by method",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method"}),
	}
}

func (m *Metrics) IncLogin(result string) {
	if m == nil {
		return
	}
	m.Logins.WithLabelValues(result).Inc()
}

func (m *Metrics) IncRegistration(result string) {
	if m == nil {
		return
	}
	m.Registrations.WithLabelValues(result).Inc()
}

func (m *Metrics) IncDownload() {
	if m == nil {
		return
	}
	m.Downloads.Inc()
}

// AddIdentificationNumbers records n newly created codes.
func (m *Metrics) AddIdentificationNumbers(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.IdentificationNumbersCreated.Add(float64(n))
}

func (m *Metrics) AddPrunedTokens(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.RevokedTokensPruned.Add(float64(n))
}

// ObserveHTTPRequest records one served request.
// Call with time.Now() taken when the request arrived.
func (m *Metrics) ObserveHTTPRequest(method string, status int, start time.Time) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
}
