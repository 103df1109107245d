package middleware

import (
	"context"
	"time"

	"github.com/broady/restahead"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/broady/restahead/middleware"

// TracingConfig configures [Tracing].
type TracingConfig struct {
	// TracerProvider supplies the tracer. Defaults to otel.GetTracerProvider().
	TracerProvider trace.TracerProvider
	// MeterProvider supplies the request counter and duration histogram.
	// Defaults to otel.GetMeterProvider().
	MeterProvider metric.MeterProvider
	// Propagator injects the span context into request headers.
	// Defaults to otel.GetTextMapPropagator().
	Propagator propagation.TextMapPropagator
	// Attributes are added to every span.
	Attributes []attribute.KeyValue
}

// Tracing returns an interceptor that wraps every request in a client span,
// injects the span context into the request headers, and records the
// restahead.client.requests and restahead.client.duration metrics.
func Tracing(cfg TracingConfig) restahead.Interceptor {
	if cfg.TracerProvider == nil {
		cfg.TracerProvider = otel.GetTracerProvider()
	}
	if cfg.MeterProvider == nil {
		cfg.MeterProvider = otel.GetMeterProvider()
	}
	if cfg.Propagator == nil {
		cfg.Propagator = otel.GetTextMapPropagator()
	}

	tracer := cfg.TracerProvider.Tracer(instrumentationName)
	meter := cfg.MeterProvider.Meter(instrumentationName)
	requests, _ := meter.Int64Counter("restahead.client.requests",
		metric.WithUnit("{request}"),
		metric.WithDescription("Number of requests sent"),
	)
	durations, _ := meter.Float64Histogram("restahead.client.duration",
		metric.WithUnit("s"),
		metric.WithDescription("Duration of requests"),
	)

	return func(ctx context.Context, req *restahead.Request, next restahead.ClientFunc) *restahead.Future[*restahead.Response] {
		attrs := []attribute.KeyValue{
			attribute.String("http.request.method", req.Verb().String()),
			attribute.String("url.path", req.Path()),
		}
		name := req.Verb().String() + " " + req.Path()
		if service, method, ok := restahead.CallFromContext(ctx); ok {
			name = service + "/" + method
			attrs = append(attrs,
				attribute.String("rpc.service", service),
				attribute.String("rpc.method", method),
			)
		}
		attrs = append(attrs, cfg.Attributes...)

		start := time.Now()
		ctx, span := tracer.Start(ctx, name,
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(attrs...),
		)
		cfg.Propagator.Inject(ctx, requestCarrier{req})

		f := next(ctx, req)
		return restahead.Go(func() (*restahead.Response, error) {
			resp, err := f.Result()
			outcome := "ok"
			switch {
			case err != nil:
				outcome = "error"
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			case resp == nil:
				outcome = "error"
				span.SetStatus(codes.Error, "no response")
			default:
				span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
				if resp.StatusCode >= 400 {
					outcome = "error"
					span.SetStatus(codes.Error, "")
				}
			}
			span.End()

			metricAttrs := metric.WithAttributes(
				attribute.String("http.request.method", req.Verb().String()),
				attribute.String("outcome", outcome),
			)
			requests.Add(ctx, 1, metricAttrs)
			durations.Record(ctx, time.Since(start).Seconds(), metricAttrs)
			return resp, err
		})
	}
}

// requestCarrier adapts a request to propagation.TextMapCarrier.
// Set only adds keys the request does not carry yet.
type requestCarrier struct {
	req *restahead.Request
}

func (c requestCarrier) Get(key string) string {
	if values := c.req.HeaderValues(key); len(values) > 0 {
		return values[0]
	}
	return ""
}

func (c requestCarrier) Set(key, value string) {
	if !c.req.HasHeader(key) {
		c.req.AddHeader(key, value)
	}
}

func (c requestCarrier) Keys() []string {
	var keys []string
	seen := make(map[string]bool)
	for _, h := range c.req.Headers() {
		if !seen[h.Name] {
			seen[h.Name] = true
			keys = append(keys, h.Name)
		}
	}
	return keys
}
