package httpmiddleware

import (
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Instrument wraps the handler with OpenTelemetry HTTP tracing and a request
// counter keyed by method and status-bearing route path.
func Instrument(service string, tp trace.TracerProvider, mp metric.MeterProvider) Middleware {
	meter := mp.Meter(service)
	requests, err := meter.Int64Counter("http.server.request.count",
		metric.WithDescription("Number of HTTP requests handled"),
	)

	return func(next http.Handler) http.Handler {
		counted := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err == nil {
				requests.Add(r.Context(), 1, metric.WithAttributes(
					attribute.String("http.request.method", r.Method),
					attribute.String("url.path", r.URL.Path),
				))
			}
			span := trace.SpanFromContext(r.Context())
			span.SetAttributes(attribute.String("http.route", r.URL.Path))
			next.ServeHTTP(w, r)
		})

		return otelhttp.NewHandler(counted, service,
			otelhttp.WithTracerProvider(tp),
			otelhttp.WithMeterProvider(mp),
		)
	}
}
