package tracer

import (
	"context"
	"testing"

	"simple-notes-be/internal/config"
	"simple-notes-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func TestInitTracerDisabled(t *testing.T) {
	shutdown := InitTracer(context.Background(), config.TelemetryConfig{}, logger.NewNopLogger())
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitTracerEnabled(t *testing.T) {
	// The exporter connects lazily, so no collector is needed.
	shutdown := InitTracer(context.Background(), config.TelemetryConfig{
		OtelEnabled:  true,
		OtelEndpoint: "localhost:4318",
	}, logger.NewNopLogger())
	assert.NotNil(t, shutdown)
}
