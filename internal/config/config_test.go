package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tally.yaml")

	cfg := Default("Acme Widgets")
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "tally.yaml"))
	assert.Error(t, err)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tally.yaml")
	require.NoError(t, os.WriteFile(path, []byte("business: [not a map"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tally.yaml")
	require.NoError(t, Save(path, Default("Acme Widgets")))

	t.Setenv("TALLY_CASH_FLOW_MONTHS", "6")
	t.Setenv("TALLY_BUSINESS_NAME", "Acme Intl")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Reports.CashFlowMonths)
	assert.Equal(t, "Acme Intl", cfg.Business.Name)
	assert.Equal(t, "USD", cfg.Business.Currency, "unset vars leave file values alone")
}

func TestDefault(t *testing.T) {
	cfg := Default("Acme Widgets")
	assert.Equal(t, "Acme Widgets", cfg.Business.Name)
	assert.Equal(t, 12, cfg.Reports.CashFlowMonths)
	assert.True(t, cfg.Reports.CashFlowOpening)
	assert.NotEmpty(t, cfg.Server.Addr)
}
