package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/comitanigiacomo/kanso-study-engine/internal/platform/logger"
)

func TestInitTracing_Disabled(t *testing.T) {
	shutdown := InitTracing(context.Background(), logger.NewNop(), TracingConfig{Enabled: false})
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitTracing_StdoutExporter(t *testing.T) {
	shutdown := InitTracing(context.Background(), logger.NewNop(), TracingConfig{
		Enabled:     true,
		ServiceName: "test-service",
		Environment: "test",
	})
	assert.NoError(t, shutdown(context.Background()))
}
