// Package otel provides OpenTelemetry instrumentation for strictjson.
package otel

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/rbaliyan/strictjson"
)

// InstrumentedCodec wraps a Coder with OpenTelemetry tracing and metrics.
type InstrumentedCodec struct {
	coder   strictjson.Coder
	tracer  trace.Tracer
	meter   metric.Meter
	metrics *Metrics
	opts    options
}

// Compile-time interface check
var _ strictjson.Coder = (*InstrumentedCodec)(nil)

// Wrap wraps a Coder with OpenTelemetry instrumentation.
// By default, both tracing and metrics are disabled. Use WithTracesEnabled(true)
// and/or WithMetricsEnabled(true) to enable them.
func Wrap(coder strictjson.Coder, opts ...Option) (*InstrumentedCodec, error) {
	o := defaultOptions()
	if c, ok := coder.(*strictjson.Codec); ok {
		o.backendName = c.Backend()
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.backendName == "" {
		o.backendName = "unknown"
	}

	ic := &InstrumentedCodec{
		coder: coder,
		opts:  o,
	}

	// Only initialize tracer if tracing is enabled
	if o.enableTraces {
		if o.tracer != nil {
			ic.tracer = o.tracer
		} else {
			ic.tracer = otel.Tracer(o.tracerName)
		}
	}

	// Only initialize meter and metrics if metrics are enabled
	if o.enableMetrics {
		var meter metric.Meter
		if o.meter != nil {
			meter = o.meter
		} else {
			meter = otel.Meter(o.meterName)
		}
		ic.meter = meter

		metrics, err := initMetrics(meter)
		if err != nil {
			return nil, err
		}
		ic.metrics = metrics
	}

	return ic, nil
}

// Unwrap returns the underlying Coder.
func (c *InstrumentedCodec) Unwrap() strictjson.Coder {
	return c.coder
}

// Encode encodes v. See EncodeContext.
func (c *InstrumentedCodec) Encode(v any, opts ...strictjson.CallOption) ([]byte, error) {
	return c.EncodeContext(context.Background(), v, opts...)
}

// EncodeContext encodes v, starting the span from ctx.
func (c *InstrumentedCodec) EncodeContext(ctx context.Context, v any, opts ...strictjson.CallOption) ([]byte, error) {
	ctx, span := c.start(ctx, "strictjson.Encode")
	start := time.Now()
	out, err := c.coder.Encode(v, opts...)
	c.recordOperation(ctx, "encode", start, len(out), err)
	c.end(span, err, attribute.Int("strictjson.output_bytes", len(out)))
	return out, err
}

// Decode decodes data. See DecodeContext.
func (c *InstrumentedCodec) Decode(data []byte, opts ...strictjson.CallOption) (any, error) {
	return c.DecodeContext(context.Background(), data, opts...)
}

// DecodeContext decodes data, starting the span from ctx.
func (c *InstrumentedCodec) DecodeContext(ctx context.Context, data []byte, opts ...strictjson.CallOption) (any, error) {
	ctx, span := c.start(ctx, "strictjson.Decode", attribute.Int("strictjson.input_bytes", len(data)))
	start := time.Now()
	v, err := c.coder.Decode(data, opts...)
	c.recordOperation(ctx, "decode", start, len(data), err)
	c.end(span, err)
	return v, err
}

// DecodeFile decodes the file at path. See DecodeFileContext.
func (c *InstrumentedCodec) DecodeFile(path string, opts ...strictjson.CallOption) (any, error) {
	return c.DecodeFileContext(context.Background(), path, opts...)
}

// DecodeFileContext decodes the file at path, starting the span from ctx.
func (c *InstrumentedCodec) DecodeFileContext(ctx context.Context, path string, opts ...strictjson.CallOption) (any, error) {
	ctx, span := c.start(ctx, "strictjson.DecodeFile", c.fileAttributes(path)...)
	start := time.Now()
	v, err := c.coder.DecodeFile(path, opts...)
	c.recordOperation(ctx, "decode_file", start, -1, err)
	c.end(span, err)
	return v, err
}

// ValidData reports whether data is valid JSON. It is not instrumented.
func (c *InstrumentedCodec) ValidData(data any) bool {
	return c.coder.ValidData(data)
}

// ValidFile reports whether the file at path is valid JSON. It is not
// instrumented.
func (c *InstrumentedCodec) ValidFile(path string) bool {
	return c.coder.ValidFile(path)
}

// start opens a span when tracing is enabled. The returned span is nil otherwise.
func (c *InstrumentedCodec) start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if !c.opts.enableTraces {
		return ctx, nil
	}
	return c.tracer.Start(ctx, name,
		trace.WithAttributes(append(c.commonAttributes(), attrs...)...))
}

func (c *InstrumentedCodec) end(span trace.Span, err error, attrs ...attribute.KeyValue) {
	if span == nil {
		return
	}
	defer span.End()

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String("strictjson.error_type", strictjson.KindOf(err).String()))
		return
	}
	span.SetStatus(codes.Ok, "")
	span.SetAttributes(attrs...)
}

func (c *InstrumentedCodec) fileAttributes(path string) []attribute.KeyValue {
	if !c.opts.filePaths {
		return nil
	}
	return []attribute.KeyValue{attribute.String("strictjson.path", path)}
}

// commonAttributes returns attributes common to all spans
func (c *InstrumentedCodec) commonAttributes() []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("strictjson.backend", c.opts.backendName),
	}
	if c.opts.serviceName != "" {
		attrs = append(attrs, attribute.String("service.name", c.opts.serviceName))
	}
	return attrs
}

// recordOperation records metrics for an operation. size < 0 skips the
// payload histogram.
func (c *InstrumentedCodec) recordOperation(ctx context.Context, op string, start time.Time, size int, err error) {
	if !c.opts.enableMetrics {
		return
	}

	latency := time.Since(start).Seconds()
	attrs := []attribute.KeyValue{
		attribute.String("operation", op),
		attribute.String("backend", c.opts.backendName),
	}

	c.metrics.OperationCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	c.metrics.OperationLatency.Record(ctx, latency, metric.WithAttributes(attrs...))
	if size >= 0 && err == nil {
		c.metrics.PayloadSize.Record(ctx, int64(size), metric.WithAttributes(attrs...))
	}

	if err != nil {
		errorAttrs := append(attrs, attribute.String("error_type", errorType(err)))
		c.metrics.ErrorCount.Add(ctx, 1, metric.WithAttributes(errorAttrs...))
	}
}

// errorType returns a string classification of the error
func errorType(err error) string {
	return strictjson.KindOf(err).String()
}
