package calculator

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"ruleofthree/internal/observability"
)

// Metric instruments, set once by InitMetrics.
var (
	calcCounter   metric.Int64Counter
	calcHistogram metric.Float64Histogram
	errorCounter  metric.Int64Counter
	resultGauge   metric.Float64Gauge

	historyEntries prometheus.Gauge
)

// InitMetrics registers the calculator's OTel instruments and its
// Prometheus history gauge. Call this once at startup (after
// observability.InitMetrics); later calls are harmless.
func InitMetrics() error {
	meter := otel.Meter("calculator")

	var err error

	calcCounter, err = meter.Int64Counter("ruleofthree.calculations.total",
		metric.WithDescription("Total number of successful rule of three calculations"),
		metric.WithUnit("{calculation}"),
	)
	if err != nil {
		return fmt.Errorf("creating calculations counter: %w", err)
	}

	calcHistogram, err = meter.Float64Histogram("ruleofthree.calculation.duration",
		metric.WithDescription("Duration of calculations, including history persistence, in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50),
	)
	if err != nil {
		return fmt.Errorf("creating calculation histogram: %w", err)
	}

	errorCounter, err = meter.Int64Counter("ruleofthree.errors.total",
		metric.WithDescription("Total number of rejected or failed requests"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	resultGauge, err = meter.Float64Gauge("ruleofthree.last_result",
		metric.WithDescription("The rounded X of the last calculation"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("creating result gauge: %w", err)
	}

	historyEntries, err = observability.RegisterCollector(prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "ruleofthree",
		Name:      "history_entries",
		Help:      "Number of calculations currently held in the history.",
	}))
	if err != nil {
		return fmt.Errorf("registering history gauge: %w", err)
	}

	return nil
}
