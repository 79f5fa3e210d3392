// Package metrics exposes header protection outcomes as Prometheus metrics.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/nettrix/quichp/logging"
)

const metricNamespace = "quichp"

var (
	headersProtected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "headers_protected_total",
			Help:      "Packet headers protected",
		},
		[]string{"key_phase"},
	)
	headersUnprotected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "headers_unprotected_total",
			Help:      "Packet headers unprotected",
		},
		[]string{"key_phase", "packet_type"},
	)
	packetsPassedThrough = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "packets_passed_through_total",
			Help:      "Packets exempt from header protection",
		},
		[]string{"packet_type"},
	)
	packetsDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Name:      "packets_dropped_total",
			Help:      "Packets dropped before their header could be (un)protected",
		},
		[]string{"reason"},
	)
)

// NewTracer creates a new tracer using the default Prometheus registerer.
func NewTracer() *logging.Tracer {
	return NewTracerWithRegisterer(prometheus.DefaultRegisterer)
}

// NewTracerWithRegisterer creates a new tracer using a given Prometheus registerer.
func NewTracerWithRegisterer(registerer prometheus.Registerer) *logging.Tracer {
	for _, c := range [...]prometheus.Collector{
		headersProtected,
		headersUnprotected,
		packetsPassedThrough,
		packetsDropped,
	} {
		if err := registerer.Register(c); err != nil {
			var dup prometheus.AlreadyRegisteredError
			if !errors.As(err, &dup) {
				panic(err)
			}
		}
	}
	return &logging.Tracer{
		ProtectedHeader: func(phase logging.KeyPhase, _ logging.PacketNumberLen) {
			headersProtected.WithLabelValues(phase.String()).Inc()
		},
		UnprotectedHeader: func(phase logging.KeyPhase, typ logging.PacketType, _ logging.PacketNumberLen) {
			headersUnprotected.WithLabelValues(phase.String(), typ.String()).Inc()
		},
		PassedThrough: func(typ logging.PacketType) {
			packetsPassedThrough.WithLabelValues(typ.String()).Inc()
		},
		DroppedPacket: func(reason logging.PacketDropReason) {
			packetsDropped.WithLabelValues(reason.String()).Inc()
		},
	}
}
