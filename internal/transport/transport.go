// Package transport provides HTTP round trippers shared by the provider SDK clients.
package transport

import (
	"log"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/cchalm/urbanai/internal/transport"

// TracingTransport records a client span for every request it forwards
type TracingTransport struct {
	base   http.RoundTripper
	tracer trace.Tracer
}

// WithTracing wraps base, or http.DefaultTransport if base is nil. If provider is nil the global tracer provider is
// used
func WithTracing(base http.RoundTripper, provider trace.TracerProvider) *TracingTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	if provider == nil {
		provider = otel.GetTracerProvider()
	}
	return &TracingTransport{
		base:   base,
		tracer: provider.Tracer(instrumentationName),
	}
}

func (t *TracingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx, span := t.tracer.Start(req.Context(), "HTTP "+req.Method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", req.Method),
			attribute.String("server.address", req.URL.Host),
			attribute.String("url.path", req.URL.Path),
		),
	)
	defer span.End()

	start := time.Now()
	resp, err := t.base.RoundTrip(req.WithContext(ctx))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Printf("%s %s failed after %s: %v", req.Method, req.URL.Host, time.Since(start), err)
		return resp, err
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if resp.StatusCode >= http.StatusBadRequest {
		span.SetStatus(codes.Error, resp.Status)
	}
	log.Printf("%s %s%s -> %d in %s", req.Method, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))
	return resp, nil
}
