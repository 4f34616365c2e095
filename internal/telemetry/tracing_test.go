package telemetry

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace"

	"cdnupload/internal/config"
)

func TestNewSampler(t *testing.T) {
	tests := []struct {
		name string
		arg  string
		want string
	}{
		{"always_on", "", trace.AlwaysSample().Description()},
		{"always_off", "", trace.NeverSample().Description()},
		{"traceidratio", "0.5", trace.TraceIDRatioBased(0.5).Description()},
		{"traceidratio", "junk", trace.TraceIDRatioBased(1.0).Description()},
		{"parentbased_traceidratio", "0.25", trace.ParentBased(trace.TraceIDRatioBased(0.25)).Description()},
		{"unknown", "", trace.ParentBased(trace.AlwaysSample()).Description()},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.arg, func(t *testing.T) {
			assert.Equal(t, tt.want, newSampler(tt.name, tt.arg).Description())
		})
	}
}

func TestInit_Disabled(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	shutdown, err := Init(context.Background(), config.TracingConfig{Disabled: true}, log)
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
	assert.Contains(t, buf.String(), `"tracing_enabled":false`)
}

func TestInit_UnsupportedProtocolDegrades(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	shutdown, err := Init(context.Background(), config.TracingConfig{
		ServiceName: "cdnupload-test",
		Protocol:    "carrier-pigeon",
	}, log)
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
	assert.Contains(t, buf.String(), "unsupported OTLP protocol")
}
