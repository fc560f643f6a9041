package telemetry

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_Stdout(t *testing.T) {
	var buf bytes.Buffer
	tp, shutdown, err := Setup(context.Background(), Config{Exporter: ExporterStdout}, &buf)
	require.NoError(t, err)

	_, span := tp.Tracer("test").Start(context.Background(), "generate")
	span.End()
	require.NoError(t, shutdown(context.Background()))

	assert.Contains(t, buf.String(), `"Name": "generate"`)
	assert.Contains(t, buf.String(), "orggraph")
}

func TestSetup_Disabled(t *testing.T) {
	var buf bytes.Buffer
	tp, shutdown, err := Setup(context.Background(), Config{}, &buf)
	require.NoError(t, err)

	_, span := tp.Tracer("test").Start(context.Background(), "generate")
	span.End()
	require.NoError(t, shutdown(context.Background()))
	assert.Empty(t, buf.String())
}

func TestSetup_UnknownExporter(t *testing.T) {
	_, _, err := Setup(context.Background(), Config{Exporter: "jaeger"}, nil)
	assert.ErrorContains(t, err, "jaeger")
}
