package telemetry

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/mrops-br/product-catalog/internal/infrastructure/config"
	"go.opentelemetry.io/otel/trace"
)

// Context key for storing HTTP route
type contextKey string

const httpRouteKey contextKey = "http.route"

// WithHTTPRoute adds the HTTP route to the context
func WithHTTPRoute(ctx context.Context, route string) context.Context {
	return context.WithValue(ctx, httpRouteKey, route)
}

// HTTPRouteFromContext extracts the HTTP route from context
func HTTPRouteFromContext(ctx context.Context) string {
	if route, ok := ctx.Value(httpRouteKey).(string); ok {
		return route
	}
	return ""
}

// traceContextHandler decorates records with trace_id, span_id and
// http.route taken from the context.
type traceContextHandler struct {
	slog.Handler
}

// Handle adds trace_id, span_id, and http.route to log records from the context
func (h traceContextHandler) Handle(ctx context.Context, r slog.Record) error {
	// Add trace context if available
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		r.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}

	// Add HTTP route if available in context
	if route := HTTPRouteFromContext(ctx); route != "" {
		r.AddAttrs(slog.String("http.route", route))
	}
	return h.Handler.Handle(ctx, r)
}

// WithAttrs keeps trace injection on handlers derived with extra attributes
func (h traceContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return traceContextHandler{h.Handler.WithAttrs(attrs)}
}

// WithGroup keeps trace injection on grouped handlers
func (h traceContextHandler) WithGroup(name string) slog.Handler {
	return traceContextHandler{h.Handler.WithGroup(name)}
}

// NewLogger builds a JSON logger writing to w that injects trace context
func NewLogger(w io.Writer, level slog.Level, cfg *config.OTLPConfig) *slog.Logger {
	// Create JSON handler for structured logging
	jsonHandler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})

	// Wrap with trace context handler and stamp service identity
	return slog.New(traceContextHandler{jsonHandler}).With(
		slog.String("service.name", cfg.ServiceName),
		slog.String("environment", cfg.Environment),
	)
}

// initLogger initializes the process logger on stdout
func initLogger(cfg *config.OTLPConfig, level slog.Level) *slog.Logger {
	return NewLogger(os.Stdout, level, cfg)
}
