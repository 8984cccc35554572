package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Server.Addr = ":9090"
	cfg.Filter.DescContains = "ACME PAYROLL"
	cfg.Filter.Rate = 0.15

	path := filepath.Join(t.TempDir(), "tithe.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", got.Server.Addr)
	assert.Equal(t, "ACME PAYROLL", got.Filter.DescContains)
	assert.InDelta(t, 0.15, got.Filter.Rate, 0.001)
	assert.True(t, got.Filter.CaseInsensitive)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "MILLWORK DEV PAYROLL", cfg.Filter.DescContains)
	assert.InDelta(t, 0.10, cfg.Filter.Rate, 0.001)
	assert.True(t, cfg.Filter.CaseInsensitive)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestYAMLFormat(t *testing.T) {
	cfg := Default()
	path := filepath.Join(t.TempDir(), "tithe.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "addr: :8080")
	assert.Contains(t, contents, "desc_contains: MILLWORK DEV PAYROLL")
	assert.Contains(t, contents, "case_insensitive: true")
}
