package log

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLevels(t *testing.T) {
	tests := []struct {
		level      int
		allowedLvl int
		logged     bool
	}{
		{InfoLevel, InfoLevel, true},
		{DebugLevel, InfoLevel, false},
		{ErrorLevel, DebugLevel, true},
		{WarnLevel, ErrorLevel, false},
		{WarnLevel, DebugLevel, true},
	}

	for i, test := range tests {
		var b bytes.Buffer
		writer := bufio.NewWriter(&b)
		logger := New(zapcore.AddSync(writer), test.allowedLvl, true)

		var logging func(string, ...interface{})
		switch test.level {
		case InfoLevel:
			logging = logger.Infow
		case DebugLevel:
			logging = logger.Debugw
		case WarnLevel:
			logging = logger.Warnw
		case ErrorLevel:
			logging = logger.Errorw
		}
		logging("hello", "block", 8)
		require.NoError(t, writer.Flush())

		if test.logged {
			require.Contains(t, b.String(), "hello", "test %d", i)
		} else {
			require.Empty(t, b.String(), "test %d", i)
		}
	}
}

func TestJSONFields(t *testing.T) {
	var b bytes.Buffer
	logger := New(zapcore.AddSync(&b), DebugLevel, true).Named("cli").With("ice_level", "thin")
	logger.Infow("encrypted", "bytes", 4096)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(b.Bytes(), &entry))
	require.Equal(t, "encrypted", entry["msg"])
	require.Equal(t, "cli", entry["logger"])
	require.Equal(t, "thin", entry["ice_level"])
	require.EqualValues(t, 4096, entry["bytes"])
}

func TestConsoleEncoding(t *testing.T) {
	var b bytes.Buffer
	logger := New(zapcore.AddSync(&b), InfoLevel, false)
	logger.Warnw("tail passed through", "bytes", 5)

	out := b.String()
	require.Contains(t, out, "WARN")
	require.Contains(t, out, "tail passed through")
	require.Contains(t, out, `"bytes": 5`)
}

func TestContext(t *testing.T) {
	l := Nop()
	ctx := ToContext(context.Background(), l)
	require.Same(t, l, FromContextOrDefault(ctx))
	require.NotNil(t, FromContextOrDefault(context.Background()))
}
