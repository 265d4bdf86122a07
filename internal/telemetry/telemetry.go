// Package telemetry exports HTTP request metrics through OpenTelemetry and
// Prometheus.
package telemetry

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/global"
	export "go.opentelemetry.io/otel/sdk/export/metric"
	"go.opentelemetry.io/otel/sdk/metric/aggregator/histogram"
	controller "go.opentelemetry.io/otel/sdk/metric/controller/basic"
	processor "go.opentelemetry.io/otel/sdk/metric/processor/basic"
	selector "go.opentelemetry.io/otel/sdk/metric/selector/simple"
)

var (
	routeKey  = attribute.Key("http.route")
	methodKey = attribute.Key("http.method")
	statusKey = attribute.Key("http.status_code")
)

// NewPrometheusExporter builds the exporter and installs its meter provider
// globally. The exporter is also the /metrics handler.
func NewPrometheusExporter() (*prometheus.Exporter, error) {
	config := prometheus.Config{}
	c := controller.New(
		processor.New(
			selector.NewWithHistogramDistribution(
				histogram.WithExplicitBoundaries(config.DefaultHistogramBoundaries),
			),
			export.CumulativeExportKindSelector(),
			processor.WithMemory(true),
		),
	)

	exporter, err := prometheus.New(config, c)
	if err != nil {
		return nil, fmt.Errorf("initialize prometheus exporter: %w", err)
	}
	global.SetMeterProvider(exporter.MeterProvider())

	return exporter, nil
}

// Metrics records completed requests and their latency.
type Metrics struct {
	completed metric.Int64Counter
	duration  metric.Float64ValueRecorder
}

func New(meter metric.Meter) *Metrics {
	must := metric.Must(meter)

	return &Metrics{
		completed: must.NewInt64Counter(
			"http/server/completed_count",
			metric.WithDescription("Count of completed requests, by route, HTTP method and response status"),
		),
		duration: must.NewFloat64ValueRecorder(
			"http/server/duration_ms",
			metric.WithDescription("Request latency in milliseconds"),
		),
	}
}

// Middleware labels by chi route pattern, so it must be mounted on the
// router whose routes it measures.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		labels := []attribute.KeyValue{
			routeKey.String(route),
			methodKey.String(r.Method),
			statusKey.String(strconv.Itoa(status)),
		}
		m.completed.Add(r.Context(), 1, labels...)
		m.duration.Record(r.Context(), float64(time.Since(start).Microseconds())/1000, labels...)
	})
}
