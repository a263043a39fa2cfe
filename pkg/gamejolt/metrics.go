package gamejolt

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors updated by Client and Session.
// A nil *Metrics records nothing.
type Metrics struct {
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	AuthAttempts *prometheus.CounterVec
	TrophyEvents *prometheus.CounterVec
}

// NewMetricsWithRegistry registers the collectors with registry, or with the
// default registerer when registry is nil.
func NewMetricsWithRegistry(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	return &Metrics{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gamejolt_requests_total",
			Help: "The total number of API requests by endpoint and outcome",
		},
			[]string{"endpoint", "outcome"},
		),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gamejolt_request_duration_seconds",
			Help:    "API round trip latency",
			Buckets: prometheus.DefBuckets,
		},
			[]string{"endpoint"},
		),
		AuthAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gamejolt_auth_attempts_total",
			Help: "The total number of session authentication attempts by result",
		},
			[]string{"result"},
		),
		TrophyEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gamejolt_trophy_events_total",
			Help: "The total number of confirmed trophy grants and revokes",
		},
			[]string{"kind"},
		),
	}
}

func (m *Metrics) observeRequest(endpoint Endpoint, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(endpoint.String(), outcomeLabel(err)).Inc()
	m.RequestDuration.WithLabelValues(endpoint.String()).Observe(elapsed.Seconds())
}

func (m *Metrics) observeAuth(result string) {
	if m == nil {
		return
	}
	m.AuthAttempts.WithLabelValues(result).Inc()
}

func (m *Metrics) observeTrophyEvent(kind TrophyEventKind) {
	if m == nil {
		return
	}
	m.TrophyEvents.WithLabelValues(kind.String()).Inc()
}
