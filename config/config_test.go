package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

const sample = `datasets:
  waybills: "all_waybill_info.csv"
  courier_waves: "courier_wave_info.csv"
  dispatching_orders: "dispatch_rider.csv"
  dispatch_waybills: "dispatch_waybill.csv"
features:
  near_shift_end_seconds: 900
  causal_rejection_rate: true
snapshot:
  state_window_seconds: 1800
metrics:
  prometheus_enabled: true
logging:
  level: "warn"
`

func TestLoad(t *testing.T) {
	path := writeConfig(t, "config.yaml", sample)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "all_waybill_info.csv", cfg.Datasets.Waybills)
	require.Equal(t, 900, cfg.Features.NearShiftEndSeconds)
	require.True(t, cfg.Features.CausalRejectionRate)
	require.Equal(t, 1800, cfg.Snapshot.StateWindowSeconds)
	require.True(t, cfg.Metrics.PrometheusEnabled)
	require.Equal(t, "warn", cfg.Logging.Level)
	// Defaults fill what the file leaves out.
	require.Equal(t, ":9090", cfg.Metrics.PrometheusAddr)
	require.Len(t, cfg.Features.PeakHourRanges, 2)
}

func TestLoadDefaultLogLevel(t *testing.T) {
	path := writeConfig(t, "config.yaml", strings.Replace(sample, "logging:\n  level: \"warn\"\n", "", 1))
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadBadLogLevel(t *testing.T) {
	path := writeConfig(t, "config.yaml", strings.Replace(sample, "\"warn\"", "\"loud\"", 1))
	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "log level")
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, "config.yaml", sample)
	t.Setenv("LMD_SNAPSHOT__STATE_WINDOW_SECONDS", "600")
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 600, cfg.Snapshot.StateWindowSeconds)
}

func TestLoadMissingDataset(t *testing.T) {
	path := writeConfig(t, "config.yaml", "datasets:\n  waybills: \"w.csv\"\n")
	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "courier_waves")
}

func TestLoadUnsupportedFormat(t *testing.T) {
	path := writeConfig(t, "config.toml", "x = 1\n")
	_, err := Load(path)
	require.Error(t, err)
}
