package otel

import (
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the instruments recorded per Coder operation. Each one
// carries the operation and backend attributes; ErrorCount also carries
// error_type, the strictjson.Kind of the failure.
type Metrics struct {
	OperationCount   metric.Int64Counter
	ErrorCount       metric.Int64Counter
	OperationLatency metric.Float64Histogram

	// PayloadSize is the encoded output for Encode and the input for
	// Decode. DecodeFile does not record it.
	PayloadSize metric.Int64Histogram
}

// payloadBuckets run from small API bodies to the size of a large file.
var payloadBuckets = []float64{64, 256, 1 << 10, 4 << 10, 16 << 10, 64 << 10, 256 << 10, 1 << 20, 4 << 20, 16 << 20}

// latencyBuckets are in seconds. Most calls finish well under a millisecond.
var latencyBuckets = []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1}

func initMetrics(meter metric.Meter) (*Metrics, error) {
	var (
		m   Metrics
		err error
	)

	if m.OperationCount, err = meter.Int64Counter(
		"strictjson.operations.total",
		metric.WithDescription("Total number of JSON encode and decode operations"),
		metric.WithUnit("1"),
	); err != nil {
		return nil, fmt.Errorf("otel: operations counter: %w", err)
	}

	if m.ErrorCount, err = meter.Int64Counter(
		"strictjson.errors.total",
		metric.WithDescription("Total number of failed JSON operations by error kind"),
		metric.WithUnit("1"),
	); err != nil {
		return nil, fmt.Errorf("otel: errors counter: %w", err)
	}

	if m.OperationLatency, err = meter.Float64Histogram(
		"strictjson.operation.duration",
		metric.WithDescription("Duration of JSON operations"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, fmt.Errorf("otel: duration histogram: %w", err)
	}

	if m.PayloadSize, err = meter.Int64Histogram(
		"strictjson.payload.size",
		metric.WithDescription("Size of encoded output and decoded input"),
		metric.WithUnit("By"),
		metric.WithExplicitBucketBoundaries(payloadBuckets...),
	); err != nil {
		return nil, fmt.Errorf("otel: payload histogram: %w", err)
	}

	return &m, nil
}
