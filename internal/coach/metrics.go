package coach

import "github.com/prometheus/client_golang/prometheus"

//nolint:gochecknoglobals // Prometheus collectors are process-wide.
var (
	proxyRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ecotrack",
		Subsystem: "coach_proxy",
		Name:      "requests_total",
		Help:      "Coach proxy requests, labeled by response code.",
	}, []string{"code"})

	upstreamFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ecotrack",
		Subsystem: "coach_proxy",
		Name:      "upstream_failures_total",
		Help:      "Upstream chat completion calls that failed or returned no text.",
	})

	upstreamDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "ecotrack",
		Subsystem: "coach_proxy",
		Name:      "upstream_duration_seconds",
		Help:      "Time spent waiting for the upstream chat completion.",
		Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
	})
)

func init() {
	prometheus.MustRegister(proxyRequests, upstreamFailures, upstreamDuration)
}
