package tracing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/jask/regform/internal/config"
)

func keepGlobalProvider(t *testing.T) {
	t.Helper()
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
}

func TestInitDisabledLeavesGlobalProvider(t *testing.T) {
	keepGlobalProvider(t)
	before := otel.GetTracerProvider()

	shutdown, err := Init(context.Background(), config.TraceConfig{Protocol: config.ProtocolGRPC})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
	require.Equal(t, before, otel.GetTracerProvider())
}

func TestInitHTTPInstallsSDKProvider(t *testing.T) {
	keepGlobalProvider(t)

	shutdown, err := Init(context.Background(), config.TraceConfig{
		Endpoint:    "http://127.0.0.1:4318/v1/traces",
		Protocol:    config.ProtocolHTTP,
		ServiceName: "regform-test",
	})
	require.NoError(t, err)
	_, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider)
	require.True(t, ok, "got %T", otel.GetTracerProvider())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, shutdown(ctx))
}

func TestInitRejectsUnknownProtocol(t *testing.T) {
	keepGlobalProvider(t)

	_, err := Init(context.Background(), config.TraceConfig{
		Endpoint: "http://127.0.0.1:4318",
		Protocol: "thrift",
	})
	require.Error(t, err)
}
