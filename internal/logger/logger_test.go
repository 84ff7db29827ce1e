package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		wantErr  bool
		wantInfo bool
		wantWarn bool
	}{
		{name: "default level is warn", wantWarn: true},
		{name: "debug", level: "debug", wantInfo: true, wantWarn: true},
		{name: "error", level: "error"},
		{name: "unknown level", level: "loud", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			log, closeFn, err := New(Config{Level: tt.level}, &out)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			log.Info("info line")
			log.Warn("warn line")
			closeFn()

			assert.Equal(t, tt.wantInfo, bytes.Contains(out.Bytes(), []byte("info line")))
			assert.Equal(t, tt.wantWarn, bytes.Contains(out.Bytes(), []byte("warn line")))
		})
	}
}

func TestNew_file(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfbdump.log")

	var out bytes.Buffer
	log, closeFn, err := New(Config{Level: "info", File: path, MaxSizeMB: 1}, &out)
	require.NoError(t, err)

	log.Info("opened", zap.String("path", "a.doc"))
	closeFn()

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"msg":"opened"`)
	assert.Contains(t, string(content), `"path":"a.doc"`)
	assert.Contains(t, out.String(), "opened")
}
