package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 1024, cfg.Limits.MaxComponents)
	assert.Equal(t, 256, cfg.Limits.MaxRays)
	assert.Equal(t, int64(1<<20), cfg.MaxBodyBytes)
	assert.True(t, cfg.MetricsEnabled())
	assert.Empty(t, cfg.Redis.Addr)
}

func TestDecode(t *testing.T) {
	cfg, err := Decode(strings.NewReader(`
port: 9090
log_level: debug
catalog: ./lab.yaml
limits:
  max_rays: 16
metrics: false
redis:
  addr: localhost:6379
  prefix: "lab:"
  ttl: 1h
`))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "./lab.yaml", cfg.CatalogPath)
	assert.Equal(t, 16, cfg.Limits.MaxRays)
	assert.Equal(t, 1024, cfg.Limits.MaxComponents, "unset limit keeps default")
	assert.False(t, cfg.MetricsEnabled())
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "lab:", cfg.Redis.Prefix)
	assert.Equal(t, time.Hour, cfg.Redis.TTL)
}

func TestDecode_Empty(t *testing.T) {
	cfg, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default().Port, cfg.Port)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"Unknown Field", "colour: red\n"},
		{"Bad Port", "port: 70000\n"},
		{"Negative Limit", "limits:\n  max_rays: -1\n"},
		{"Negative TTL", "redis:\n  ttl: -1s\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Port, cfg.Port)

	path := filepath.Join(t.TempDir(), "optirail.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 8181\n"), 0o644))
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8181, cfg.Port)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
