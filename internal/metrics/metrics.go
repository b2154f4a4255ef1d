package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeOK            = "ok"
	OutcomeConfigError   = "config_error"
	OutcomeInvalidTopic  = "invalid_topic"
	OutcomeUpstreamError = "upstream_error"
	OutcomeInternalError = "internal_error"
)

type Metrics struct {
	ChatRequests     *prometheus.CounterVec
	UpstreamDuration prometheus.Histogram
}

var (
	once   sync.Once
	global *Metrics
)

// Global returns metrics registered on the default prometheus registry.
func Global() *Metrics {
	once.Do(func() {
		global = New(prometheus.DefaultRegisterer)
	})
	return global
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ChatRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "curriculum",
			Name:      "chat_requests_total",
			Help:      "Total /api/chat requests by outcome",
		}, []string{"outcome"}),
		UpstreamDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "curriculum",
			Name:      "upstream_request_duration_seconds",
			Help:      "Latency of chat completion calls to the provider",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32, 64},
		}),
	}
	reg.MustRegister(m.ChatRequests, m.UpstreamDuration)
	return m
}
