// Package telemetry owns the Prometheus registry for the process: tool
// invocation counters and latencies plus screening run outcomes, served on
// the API's /metrics endpoint.
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Telemetry struct {
	registry     *prometheus.Registry
	toolCalls    *prometheus.CounterVec
	toolDuration *prometheus.HistogramVec
	runs         *prometheus.CounterVec
}

func New() *Telemetry {
	t := &Telemetry{
		registry: prometheus.NewRegistry(),
		toolCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "talentsift_tool_calls_total",
			Help: "Remote tool invocations by tool name and outcome.",
		}, []string{"tool", "outcome"}),
		toolDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "talentsift_tool_call_duration_seconds",
			Help:    "Remote tool invocation latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"tool"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "talentsift_screening_runs_total",
			Help: "Screening runs by outcome.",
		}, []string{"outcome"}),
	}
	t.registry.MustRegister(t.toolCalls, t.toolDuration, t.runs)
	return t
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// ObserveToolCall implements mcpclient.CallObserver.
func (t *Telemetry) ObserveToolCall(tool string, elapsed time.Duration, err error) {
	t.toolCalls.WithLabelValues(tool, outcome(err)).Inc()
	t.toolDuration.WithLabelValues(tool).Observe(elapsed.Seconds())
}

func (t *Telemetry) ObserveRun(err error) {
	t.runs.WithLabelValues(outcome(err)).Inc()
}

// Handler serves the registry in Prometheus exposition format.
func (t *Telemetry) Handler() http.Handler {
	return promhttp.HandlerFor(t.registry, promhttp.HandlerOpts{})
}
