package telemetry_test

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/pythia-plus/console/internal/platform/telemetry"
)

func TestInitTracer_Stdout(t *testing.T) {
	ctx := context.Background()

	tp, err := telemetry.InitTracer(ctx, "pythia-console", telemetry.ExporterStdout, "")
	if err != nil {
		t.Fatalf("InitTracer(stdout) error = %v", err)
	}
	t.Cleanup(func() {
		if err := tp.Shutdown(ctx); err != nil {
			t.Errorf("Shutdown error = %v", err)
		}
	})

	if len(otel.GetTextMapPropagator().Fields()) == 0 {
		t.Error("global propagator has no fields, want TraceContext + Baggage fields")
	}
}

func TestInitTracer_OTLP(t *testing.T) {
	ctx := context.Background()

	tp, err := telemetry.InitTracer(ctx, "pythia-console", telemetry.ExporterOTLP, "http://localhost:4318")
	if err != nil {
		t.Fatalf("InitTracer(otlp) error = %v", err)
	}
	t.Cleanup(func() {
		// No collector runs in unit tests.
		_ = tp.Shutdown(ctx)
	})
}

func TestInit_RejectsBadExporterSettings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		exporter string
		endpoint string
	}{
		{name: "unknown exporter", exporter: "invalid"},
		{name: "otlp without endpoint", exporter: telemetry.ExporterOTLP},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := telemetry.InitTracer(context.Background(), "svc", tt.exporter, tt.endpoint); err == nil {
				t.Error("InitTracer() error = nil, want error")
			}
			if _, err := telemetry.InitMeter(context.Background(), "svc", tt.exporter, tt.endpoint); err == nil {
				t.Error("InitMeter() error = nil, want error")
			}
		})
	}
}

func TestInitMeter_Stdout(t *testing.T) {
	ctx := context.Background()

	mp, err := telemetry.InitMeter(ctx, "pythia-console", telemetry.ExporterStdout, "")
	if err != nil {
		t.Fatalf("InitMeter(stdout) error = %v", err)
	}
	t.Cleanup(func() {
		if err := mp.Shutdown(ctx); err != nil {
			t.Errorf("Shutdown error = %v", err)
		}
	})

	if _, err := telemetry.NewMetrics(mp); err != nil {
		t.Fatalf("NewMetrics error = %v", err)
	}
}

func TestNewMetrics(t *testing.T) {
	t.Parallel()

	metrics, err := telemetry.NewMetrics(noop.NewMeterProvider())
	if err != nil {
		t.Fatalf("NewMetrics error = %v", err)
	}

	if metrics.ServerRequestDuration == nil || metrics.ServerRequestTotal == nil {
		t.Error("server instruments not registered")
	}
	if metrics.ClientRequestDuration == nil || metrics.ClientRequestTotal == nil {
		t.Error("client instruments not registered")
	}
	if metrics.ContractViolations == nil {
		t.Error("ContractViolations is nil")
	}
	if metrics.ProfileCacheLookups == nil {
		t.Error("ProfileCacheLookups is nil")
	}
}
