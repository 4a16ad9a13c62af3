package logging

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInit_WritesToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "fsprops.log")
	require.NoError(t, Init(Config{Level: "debug", Format: "json", OutputPath: out}))
	defer Replace(zap.NewNop())()

	L().Info("hello", zap.String("path", "/docs"))
	_ = Sync()

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"path":"/docs"`)
}

func TestSetLevel(t *testing.T) {
	SetLevel("error")
	assert.Equal(t, zapcore.ErrorLevel, globalLevel.Level())
	SetLevel("bogus")
	assert.Equal(t, zapcore.ErrorLevel, globalLevel.Level())
	SetLevel("info")
}

func TestWithDialogID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	defer Replace(zap.New(core))()

	ctx := WithDialogID(context.Background(), "abc")
	WithContext(ctx).Info("opened")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "abc", logs.All()[0].ContextMap()["dialog_id"])
}
