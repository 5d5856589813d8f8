package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONInProduction(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, true, "info")
	log.Debug("hidden")
	log.Info("shown", "resource", "invoice")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "shown", line["msg"])
	assert.Equal(t, "invoice", line["resource"])
}

func TestNewTextRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false, "warn")
	log.Info("dropped")
	log.Warn("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "msg=kept")
}

func TestWithCtx(t *testing.T) {
	assert.Same(t, L, WithCtx(context.Background()))

	var buf bytes.Buffer
	tagged := New(&buf, false, "debug").With("request_id", "abc")
	ctx := InjectLogger(context.Background(), tagged)
	assert.Same(t, tagged, WithCtx(ctx))
}
