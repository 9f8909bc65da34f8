package telemetry

import (
	"context"
	"fmt"

	"github.com/mrops-br/product-catalog/internal/infrastructure/config"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/sdk/metric"
	"google.golang.org/grpc"
)

// initMeterProvider builds a meter provider that pushes to the OTLP collector
// and is scraped through the Prometheus default registry at /metrics.
func initMeterProvider(ctx context.Context, cfg *config.OTLPConfig, conn *grpc.ClientConn) (*metric.MeterProvider, error) {
	otlpExporter, err := otlpmetricgrpc.New(ctx, otlpmetricgrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, fmt.Errorf("failed to create metric exporter: %w", err)
	}

	promExporter, err := otelprom.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	res, err := newResource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return metric.NewMeterProvider(
		metric.WithReader(metric.NewPeriodicReader(otlpExporter)),
		metric.WithReader(promExporter),
		metric.WithResource(res),
	), nil
}
