package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_Modes(t *testing.T) {
	for _, mode := range []string{"dev", "prod", "PRODUCTION", ""} {
		l, err := New(mode)
		require.NoError(t, err, mode)
		require.NotNil(t, l.SugaredLogger)
	}
}

func TestWith_CarriesFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{SugaredLogger: zap.New(core).Sugar()}

	l.With("run", "r1").Info("pass done", "pass", "organization", "relationships", 12)
	l.Debug("skipped")

	require.Equal(t, 2, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "pass done", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, "r1", fields["run"])
	assert.Equal(t, "organization", fields["pass"])
	assert.EqualValues(t, 12, fields["relationships"])
	assert.NotContains(t, logs.All()[1].ContextMap(), "run")
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Info("ignored", "k", "v")
	l.Sync()
}
