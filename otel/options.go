package otel

import (
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// instrumentationName is the default tracer and meter name.
const instrumentationName = "github.com/rbaliyan/strictjson"

type options struct {
	tracerName    string
	meterName     string
	serviceName   string
	backendName   string
	enableTraces  bool
	enableMetrics bool
	filePaths     bool
	tracer        trace.Tracer
	meter         metric.Meter
}

// defaultOptions leaves backendName empty so Wrap can take it from the
// wrapped Codec. Traces, metrics and file path attributes are opt-in.
func defaultOptions() options {
	return options{
		tracerName: instrumentationName,
		meterName:  instrumentationName,
	}
}

// Option configures Wrap.
type Option func(*options)

// WithTracerName names the tracer taken from the global provider. It is
// ignored when WithTracer is given.
func WithTracerName(name string) Option {
	return func(o *options) {
		o.tracerName = name
	}
}

// WithMeterName names the meter taken from the global provider. It is
// ignored when WithMeter is given.
func WithMeterName(name string) Option {
	return func(o *options) {
		o.meterName = name
	}
}

// WithTracer uses t instead of a tracer from the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) {
		o.tracer = t
	}
}

// WithMeter uses m instead of a meter from the global provider.
func WithMeter(m metric.Meter) Option {
	return func(o *options) {
		o.meter = m
	}
}

// WithServiceName adds a service.name attribute to every span.
func WithServiceName(name string) Option {
	return func(o *options) {
		o.serviceName = name
	}
}

// WithBackendName overrides the strictjson.backend attribute. Without it a
// *strictjson.Codec reports its own backend (e.g., "go-json") and any other
// Coder reports "unknown".
func WithBackendName(name string) Option {
	return func(o *options) {
		o.backendName = name
	}
}

// WithTracesEnabled turns on spans for Encode, Decode and DecodeFile.
func WithTracesEnabled(enabled bool) Option {
	return func(o *options) {
		o.enableTraces = enabled
	}
}

// WithMetricsEnabled turns on the operation, error, duration and payload
// size instruments.
func WithMetricsEnabled(enabled bool) Option {
	return func(o *options) {
		o.enableMetrics = enabled
	}
}

// WithFilePathAttribute records the path passed to DecodeFile on its span.
// Paths are left out by default since they may be user-controlled or
// unbounded in number.
func WithFilePathAttribute(enabled bool) Option {
	return func(o *options) {
		o.filePaths = enabled
	}
}
