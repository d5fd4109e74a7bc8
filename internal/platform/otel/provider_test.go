package otel_test

import (
	"context"
	"testing"

	gootel "go.opentelemetry.io/otel"

	"github.com/louisbranch/sanity/internal/platform/otel"
)

func TestSetup_NoopWhenEndpointEmpty(t *testing.T) {
	t.Setenv("SANITY_OTEL_ENDPOINT", "")
	t.Setenv("SANITY_OTEL_ENABLED", "true")

	shutdown, err := otel.Setup(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_NoopWhenExplicitlyDisabled(t *testing.T) {
	t.Setenv("SANITY_OTEL_ENDPOINT", "http://localhost:4318")
	t.Setenv("SANITY_OTEL_ENABLED", "false")

	shutdown, err := otel.Setup(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_RejectsInvalidEnabledFlag(t *testing.T) {
	t.Setenv("SANITY_OTEL_ENABLED", "sometimes")

	if _, err := otel.Setup(context.Background(), "test-service"); err == nil {
		t.Fatal("expected config error")
	}
}

func TestSetupWithConfig_CreatesProviderWhenEndpointSet(t *testing.T) {
	// Use a non-routable address so no actual export happens.
	shutdown, err := otel.SetupWithConfig(context.Background(), "test-service", otel.Config{
		Enabled:  true,
		Endpoint: "http://192.0.2.1:4318",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Shutdown should flush cleanly even though the endpoint is unreachable.
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetupWithConfig_NoopShutdownIgnoresCancelledContext(t *testing.T) {
	shutdown, err := otel.SetupWithConfig(context.Background(), "noop-test", otel.Config{Enabled: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := shutdown(ctx); err != nil {
		t.Fatalf("noop shutdown should not error: %v", err)
	}
}

func TestSetupWithConfig_LeavesPropagatorUnset(t *testing.T) {
	shutdown, err := otel.SetupWithConfig(context.Background(), "test-service", otel.Config{
		Enabled:  true,
		Endpoint: "http://192.0.2.1:4318",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer shutdown(context.Background())

	if fields := gootel.GetTextMapPropagator().Fields(); len(fields) != 0 {
		t.Fatalf("expected no propagation fields, got %v", fields)
	}
}
