package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "stayseed", Name: "http_requests_total", Help: "HTTP requests served by the fake store."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "stayseed", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	ExternalRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "stayseed", Name: "external_requests_total", Help: "Outbound store writes."},
		[]string{"service", "endpoint", "status"},
	)
	ExternalLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "stayseed", Name: "external_request_duration_seconds",
			Help:    "Outbound store write duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "endpoint"},
	)
	RecordsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "stayseed", Name: "records_generated_total", Help: "Synthetic records generated."},
		[]string{"category"},
	)
	Chunks = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "stayseed", Name: "chunks_total", Help: "Uploaded chunks by outcome."},
		[]string{"outcome"}, // outcome: ok|failed|aborted
	)
	JournalEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "stayseed", Name: "journal_events_total", Help: "Run journal writes."},
		[]string{"event"}, // event: chunk|finish|error
	)
)

var collectors = []prometheus.Collector{
	HTTPRequests, HTTPLatency, ExternalRequests, ExternalLatency, RecordsGenerated, Chunks, JournalEvents,
}

// Serve exposes the default registry on addr in the background. Empty addr disables it.
func Serve(addr string) {
	if addr == "" {
		return
	}
	for _, c := range collectors {
		if err := prometheus.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				log.Error().Err(err).Msg("metrics register failed")
			}
		}
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors...)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveExternal(service, endpoint string, status int, dur time.Duration) {
	ExternalRequests.WithLabelValues(service, endpoint, strconv.Itoa(status)).Inc()
	ExternalLatency.WithLabelValues(service, endpoint).Observe(dur.Seconds())
}

func ObserveGenerated(category string, n int) {
	RecordsGenerated.WithLabelValues(category).Add(float64(n))
}

func ObserveChunk(outcome string) { // outcome: ok|failed|aborted
	Chunks.WithLabelValues(outcome).Inc()
}

func ObserveJournal(event string) { // event: chunk|finish|error
	JournalEvents.WithLabelValues(event).Inc()
}
