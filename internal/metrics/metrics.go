package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	HTTPRequests   *prometheus.CounterVec
	LLMCalls       *prometheus.CounterVec
	LLMDuration    *prometheus.HistogramVec
	SessionsActive prometheus.Gauge
}

var (
	once   sync.Once
	global *Metrics
)

func Global() *Metrics {
	once.Do(func() {
		global = New()
		prometheus.MustRegister(global.HTTPRequests, global.LLMCalls, global.LLMDuration, global.SessionsActive)
	})
	return global
}

// New builds an unregistered set of collectors.
func New() *Metrics {
	return &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "promptlab",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests served, by route and status code",
		}, []string{"route", "status"}),
		LLMCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "promptlab",
			Name:      "llm_calls_total",
			Help:      "Total LLM calls, by output schema and outcome",
		}, []string{"schema", "outcome"}),
		LLMDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "promptlab",
			Name:      "llm_call_duration_seconds",
			Help:      "LLM call latency, by output schema",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 40, 80, 160},
		}, []string{"schema"}),
		SessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "promptlab",
			Name:      "sessions_active",
			Help:      "Sessions currently held in memory",
		}),
	}
}
