package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		engineIntents,
		engineAttempts,
		engineRetries,
		engineFallbacks,
		engineLatencyMs,
	)
}

var (
	engineIntents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_intents_total",
			Help: "Classified user message intents by type.",
		},
		[]string{"intent"},
	)

	engineAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_attempts_total",
			Help: "Synthesis attempts by result (success|failure|timeout).",
		},
		[]string{"result"},
	)

	engineRetries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "engine_retries_total",
			Help: "Retried synthesis attempts after a transient failure or timeout.",
		},
	)

	engineFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_fallbacks_total",
			Help: "Terminal fallback responses by path (text|image).",
		},
		[]string{"path"},
	)

	engineLatencyMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "engine_generation_latency_ms",
			Help:    "End-to-end response generation latency in milliseconds.",
			Buckets: []float64{100, 250, 500, 1000, 2000, 3000, 5000, 10000, 20000, 30000},
		},
		[]string{"path", "success"},
	)
)

func IncIntent(intent string) {
	engineIntents.WithLabelValues(intent).Inc()
}

func IncAttempt(result string) {
	engineAttempts.WithLabelValues(result).Inc()
}

func IncRetry() {
	engineRetries.Inc()
}

func IncFallback(path string) {
	engineFallbacks.WithLabelValues(path).Inc()
}

func ObserveGeneration(path string, latencyMs int, success bool) {
	engineLatencyMs.WithLabelValues(path, strconv.FormatBool(success)).
		Observe(float64(latencyMs))
}
