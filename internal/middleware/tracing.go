package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// NewTracer returns a middleware that starts a server span for every request
// through otelhttp. An incoming W3C traceparent header is honoured through the
// global propagator. Once chi has matched a route the span is renamed to
// "METHOD /pattern" so spans group by endpoint rather than by trip id.
// With no provider installed the spans are no-ops.
func NewTracer() func(http.Handler) http.Handler {
	instrument := otelhttp.NewMiddleware("http.server",
		otelhttp.WithSpanNameFormatter(spanName),
	)
	return func(next http.Handler) http.Handler {
		return instrument(nameAfterRoute(next))
	}
}

// nameAfterRoute runs inside the otelhttp span. chi fills in the route
// pattern while next is serving, so it can only be read afterwards.
func nameAfterRoute(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)

		pattern := routePattern(r)
		if pattern == "" {
			return
		}
		span := trace.SpanFromContext(r.Context())
		span.SetName(r.Method + " " + pattern)
		span.SetAttributes(semconv.HTTPRoute(pattern))
	})
}

func spanName(_ string, r *http.Request) string {
	if pattern := routePattern(r); pattern != "" {
		return r.Method + " " + pattern
	}
	return r.Method + " " + r.URL.Path
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		return rctx.RoutePattern()
	}
	return ""
}
