package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	for _, mode := range []string{"dev", "prod", "PRODUCTION", ""} {
		log, err := New(mode)
		require.NoError(t, err, "mode %q", mode)
		assert.NotNil(t, log.SugaredLogger)
	}
}

func TestNop(t *testing.T) {
	log := NewNop().With("component", "test")

	assert.NotPanics(t, func() {
		log.Debug("debug", "k", 1)
		log.Info("info")
		log.Warn("warn", "k", "v")
		log.Error("error")
		log.Sync()
	})
}
