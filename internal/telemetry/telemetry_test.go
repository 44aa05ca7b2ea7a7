package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestNewProvider_Disabled(t *testing.T) {
	p, err := NewProvider(context.Background(), TelemetryConfig{Enabled: false})

	require.NoError(t, err)
	assert.False(t, p.Enabled())
	assert.Equal(t, otel.GetTracerProvider(), p.TracerProvider())
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestNewProvider_ExportsSpansOnShutdown(t *testing.T) {
	var exports atomic.Int32
	collector := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/traces" {
			exports.Add(1)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer collector.Close()

	previous := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	p, err := NewProvider(context.Background(), TelemetryConfig{
		Enabled:        true,
		Endpoint:       collector.URL + "/v1/traces",
		ServiceVersion: "test",
	})
	require.NoError(t, err)
	assert.True(t, p.Enabled())
	assert.Equal(t, p.TracerProvider(), otel.GetTracerProvider())

	_, span := otel.Tracer("test").Start(context.Background(), "chat.send")
	span.End()

	require.NoError(t, p.Shutdown(context.Background()))
	assert.Equal(t, int32(1), exports.Load())
}
