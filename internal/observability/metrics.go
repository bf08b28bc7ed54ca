package observability

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/danmuck/pink072/internal/protocol"
)

var (
	registerOnce sync.Once

	// Registry holds only codec metrics so textfile exports stay small.
	Registry = prometheus.NewRegistry()

	codecOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pink072",
			Subsystem: "codec",
			Name:      "operations_total",
			Help:      "Codec operations by kind and result.",
		},
		[]string{"op", "result"},
	)
	codecPayloadBytes = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pink072",
			Subsystem: "codec",
			Name:      "payload_bytes",
			Help:      "Payload size handled by successful codec operations.",
			Buckets:   prometheus.ExponentialBuckets(64, 4, 10),
		},
		[]string{"op"},
	)
	codecDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pink072",
			Subsystem: "codec",
			Name:      "duration_seconds",
			Help:      "Codec operation duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"op"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		Registry.MustRegister(codecOps, codecPayloadBytes, codecDuration)
	})
}

// RecordOperation counts one codec operation. result is "ok" or the error kind.
func RecordOperation(op string, payloadBytes int, duration time.Duration, err error) {
	RegisterMetrics()
	result := "ok"
	if err != nil {
		result = string(protocol.KindOf(err))
	}
	codecOps.WithLabelValues(op, result).Inc()
	codecDuration.WithLabelValues(op).Observe(duration.Seconds())
	if err == nil {
		codecPayloadBytes.WithLabelValues(op).Observe(float64(payloadBytes))
	}
}

// WriteTextfile dumps the codec registry in the node_exporter textfile format.
func WriteTextfile(path string) error {
	RegisterMetrics()
	return prometheus.WriteToTextfile(path, Registry)
}
