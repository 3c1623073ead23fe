// SPDX-License-Identifier: MIT

package experiment_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/katalvlaran/qmkp/experiment"
)

// TestInitTracing_Disabled installs a no-op provider.
func TestInitTracing_Disabled(t *testing.T) {
	shutdown, err := experiment.InitTracing(context.Background(), experiment.DefaultTracingConfig(), nil)
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))

	_, span := otel.Tracer("t").Start(context.Background(), "noop")
	assert.False(t, span.SpanContext().IsValid(), "noop spans carry no context")
	span.End()
}

// TestInitTracing_Stdout exports finished spans to the configured writer.
func TestInitTracing_Stdout(t *testing.T) {
	var buf bytes.Buffer
	cfg := experiment.DefaultTracingConfig()
	cfg.Enabled = true
	cfg.Writer = &buf

	shutdown, err := experiment.InitTracing(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = experiment.InitTracing(context.Background(), experiment.DefaultTracingConfig(), nil)
	})

	_, span := otel.Tracer(experiment.TracerName).Start(context.Background(), "experiment.run")
	span.End()
	experiment.ShutdownWithTimeout(context.Background(), shutdown, nil)

	assert.Contains(t, buf.String(), `"Name":"experiment.run"`)
}

// TestInitTracing_Errors rejects unknown exporters and bad ratios.
func TestInitTracing_Errors(t *testing.T) {
	cfg := experiment.DefaultTracingConfig()
	cfg.Enabled = true
	cfg.Exporter = "zipkin"
	_, err := experiment.InitTracing(context.Background(), cfg, nil)
	assert.ErrorIs(t, err, experiment.ErrInvalidConfig)

	cfg.Exporter = "stdout"
	cfg.SampleRatio = 2
	_, err = experiment.InitTracing(context.Background(), cfg, nil)
	assert.ErrorIs(t, err, experiment.ErrInvalidConfig)
}
