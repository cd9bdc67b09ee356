package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/khoahotran/video-hub/internal/config"
	"github.com/khoahotran/video-hub/pkg/logger"
)

func TestInitWithoutEndpointIsNoop(t *testing.T) {
	shutdown, err := Init(context.Background(), Options{ServiceName: "video-hub-api"}, logger.NewNop())
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestOptionsFrom(t *testing.T) {
	var cfg config.Config
	cfg.App.Env = "production"
	cfg.Jaeger.OTLPEndpoint = "collector:4317"
	cfg.Jaeger.SampleRatio = 0.25

	opts := OptionsFrom(cfg, "video-hub-worker")
	assert.Equal(t, Options{
		Endpoint:    "collector:4317",
		ServiceName: "video-hub-worker",
		Environment: "production",
		SampleRatio: 0.25,
	}, opts)
}

func TestSamplerFor(t *testing.T) {
	root := sdktrace.SamplingParameters{
		ParentContext: context.Background(),
		TraceID:       trace.TraceID{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
		Name:          "GET /api/v1/video/all",
	}

	assert.Equal(t, sdktrace.RecordAndSample, samplerFor(1).ShouldSample(root).Decision)
	assert.Equal(t, sdktrace.Drop, samplerFor(0).ShouldSample(root).Decision)
	assert.Contains(t, samplerFor(0.5).Description(), "TraceIDRatioBased{0.5}")
}

func TestNewResourceCarriesServiceAndEnv(t *testing.T) {
	res, err := newResource(Options{ServiceName: "video-hub-api", Environment: "staging"})
	require.NoError(t, err)

	attrs := map[attribute.Key]string{}
	for _, kv := range res.Attributes() {
		attrs[kv.Key] = kv.Value.Emit()
	}
	assert.Equal(t, "video-hub-api", attrs["service.name"])
	assert.Equal(t, "staging", attrs["deployment.environment.name"])
}
