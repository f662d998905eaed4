package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Formats(t *testing.T) {
	ctx := context.Background()

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := New("", "info", &buf)
		require.NoError(t, err)
		l.Info(ctx, "hello", "k", "v")
		assert.Contains(t, buf.String(), "msg=hello")
		assert.Contains(t, buf.String(), "k=v")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := New("JSON", "info", &buf)
		require.NoError(t, err)
		l.Info(ctx, "hello", "k", "v")

		var m map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
		assert.Equal(t, "hello", m["msg"])
		assert.Equal(t, "v", m["k"])
	})

	t.Run("zap", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := New(FormatZap, "info", &buf)
		require.NoError(t, err)
		zl, ok := l.(*ZapLogger)
		require.True(t, ok)
		l.Info(ctx, "hello", "k", "v")
		require.NoError(t, zl.Sync())

		var m map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
		assert.Equal(t, "hello", m["msg"])
		assert.Equal(t, "v", m["k"])
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := New("xml", "info", &bytes.Buffer{})
		require.Error(t, err)
	})
}

func TestNew_Level(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	l, err := New(FormatText, "warn", &buf)
	require.NoError(t, err)

	l.Debug(ctx, "dbg")
	l.Info(ctx, "inf")
	l.Warn(ctx, "wrn")
	l.Error(ctx, "err")

	out := buf.String()
	assert.NotContains(t, out, "msg=dbg")
	assert.NotContains(t, out, "msg=inf")
	assert.Contains(t, out, "msg=wrn")
	assert.Contains(t, out, "msg=err")
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestNop(t *testing.T) {
	l := Nop()
	require.NotNil(t, l)
	l.Error(context.Background(), "ignored")
	assert.NotNil(t, l.With("a", 1))
}
