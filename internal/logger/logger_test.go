package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/possync/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "INFO", want: slog.LevelInfo},
		{in: "", want: slog.LevelInfo},
		{in: "warning", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "trace", want: slog.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_JSONToStdoutAndFile(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "sync.log")

	l, err := New(config.LogConfig{Level: "info", Format: "json", File: path, MaxSizeMB: 10, MaxAgeDays: 7}, &buf)
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("No new records to sync", "table", "products")
	require.NoError(t, l.Close())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "No new records to sync", entry["msg"])
	assert.Equal(t, "products", entry["table"])
	assert.Equal(t, "possync", entry["service"])

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "No new records to sync")
	assert.NotContains(t, string(data), "hidden")
}

func TestNew_TextWithoutFile(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(config.LogConfig{Level: "debug", Format: "text"}, &buf)
	require.NoError(t, err)

	l.Debug("Pushed row", "id", 7)
	assert.Contains(t, buf.String(), "msg=\"Pushed row\"")
	assert.Contains(t, buf.String(), "id=7")
	assert.NoError(t, l.Close())
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(config.LogConfig{Level: "loud", Format: "text"}, nil)
	assert.Error(t, err)

	_, err = New(config.LogConfig{Level: "info", Format: "xml"}, nil)
	assert.Error(t, err)
}
