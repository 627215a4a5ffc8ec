package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for outbound requests.
const (
	OutcomeSuccess   = "success"
	OutcomeRejected  = "rejected"
	OutcomeTransport = "transport_error"
)

var (
	clientRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "whatsapp_client_requests_total",
			Help: "Total number of requests sent to the WhatsApp gateway.",
		},
		[]string{"route", "method", "outcome"},
	)
	clientRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "whatsapp_client_request_duration_seconds",
			Help:    "WhatsApp gateway request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
	mediaDownloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "whatsapp_media_downloads_total",
			Help: "Total number of media downloads by result.",
		},
		[]string{"result"},
	)
	webhookEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "whatsapp_webhook_events_total",
			Help: "Total number of webhook events received, by event type.",
		},
		[]string{"type"},
	)
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "whatsapp_gateway_http_requests_total",
			Help: "Total number of HTTP requests processed by the local gateway.",
		},
		[]string{"method", "route", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "whatsapp_gateway_http_request_duration_seconds",
			Help:    "Local gateway HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
)

func init() {
	prometheus.MustRegister(
		clientRequestsTotal,
		clientRequestDuration,
		mediaDownloadsTotal,
		webhookEventsTotal,
		httpRequestsTotal,
		httpRequestDuration,
	)
}

// ObserveRequest records one outbound gateway request.
func ObserveRequest(route, method, outcome string, elapsed time.Duration) {
	clientRequestsTotal.WithLabelValues(route, method, outcome).Inc()
	clientRequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// IncMediaDownload counts a finished media download; result is "ok" or the
// failed operation name.
func IncMediaDownload(result string) {
	mediaDownloadsTotal.WithLabelValues(result).Inc()
}

// IncWebhookEvent counts an inbound webhook by its type field.
func IncWebhookEvent(eventType string) {
	if eventType == "" {
		eventType = "unknown"
	}
	webhookEventsTotal.WithLabelValues(eventType).Inc()
}

// ObserveHTTP records one request served by the local gateway.
func ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}
