package crazyserver

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mikehamer/crazycodec/crtp"
)

// metrics live in a registry per server so several servers can coexist in
// one process.
type metrics struct {
	registry *prometheus.Registry

	framesDecoded *prometheus.CounterVec
	decodeErrors  *prometheus.CounterVec
	framesEncoded *prometheus.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		framesDecoded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "crazycodec",
				Name:      "frames_decoded_total",
				Help:      "Frames decoded, by port and message kind.",
			},
			[]string{"port", "kind"},
		),
		decodeErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "crazycodec",
				Name:      "decode_errors_total",
				Help:      "Frames rejected by the decoder, by reason.",
			},
			[]string{"reason"},
		),
		framesEncoded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "crazycodec",
				Name:      "frames_encoded_total",
				Help:      "Frames encoded, by packet kind.",
			},
			[]string{"kind"},
		),
	}
	m.registry.MustRegister(m.framesDecoded, m.decodeErrors, m.framesEncoded)
	return m
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *metrics) decoded(port crtp.Port, kind string) {
	m.framesDecoded.WithLabelValues(port.String(), kind).Inc()
}

func (m *metrics) decodeError(reason string) {
	m.decodeErrors.WithLabelValues(reason).Inc()
}

func (m *metrics) encoded(kind string) {
	m.framesEncoded.WithLabelValues(kind).Inc()
}

const reasonHex = "hex"

func errorReason(err error) string {
	switch {
	case errors.Is(err, crtp.ErrorTruncatedFrame):
		return "truncated"
	case errors.Is(err, crtp.ErrorShortResponse):
		return "short"
	case errors.Is(err, crtp.ErrorPacketIncorrectType):
		return "type"
	}
	return "other"
}
