package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/patrol/internal/config"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	return path
}

func TestNewDefaultConfig_Valid(t *testing.T) {
	cfg := config.NewDefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, ":8080", cfg.App.HTTP.Address())
	assert.Equal(t, 5*time.Hour, cfg.Planner.Weights.MaxStaleness)
}

func TestLoad_MergesOverDefaults(t *testing.T) {
	t.Setenv("PATROL_TEST_MAP", "/srv/maps/floor2.txt")
	path := writeFile(t, `
app:
  log_level: debug
  http:
    port: 9090
map:
  path: ${PATROL_TEST_MAP}
  watch: true
planner:
  weights:
    time_weight: 0.7
    tie_epsilon: 0.000001
  step_budget: 5000
  skip_unreachable: true
`)

	cfg := config.NewDefaultConfig()
	require.NoError(t, config.Load(path, cfg))

	assert.Equal(t, slog.LevelDebug, cfg.App.LogLevel)
	assert.Equal(t, 9090, cfg.App.HTTP.Port)
	assert.Equal(t, "/srv/maps/floor2.txt", cfg.Map.Path)
	assert.True(t, cfg.Map.Watch)
	assert.Equal(t, 0.7, cfg.Planner.Weights.TimeWeight)
	assert.Equal(t, 0.4, cfg.Planner.Weights.RiskWeight, "unset weights keep defaults")
	assert.Equal(t, 5*time.Hour, cfg.Planner.Weights.MaxStaleness)
	assert.Equal(t, 1e-6, cfg.Planner.Weights.TieEpsilon)
	assert.Equal(t, 5000, cfg.Planner.StepBudget)
	assert.True(t, cfg.Planner.SkipUnreachable)
}

func TestLoad_ValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"PortOutOfRange", "app:\n  http:\n    port: 70000\n"},
		{"WatchWithoutPath", "map:\n  watch: true\n"},
		{"NegativeBudget", "planner:\n  step_budget: -1\n"},
		{"NegativeWeight", "planner:\n  weights:\n    risk_weight: -0.4\n"},
		{"InfiniteWeight", "planner:\n  weights:\n    time_weight: .inf\n"},
		{"BadStaleness", "planner:\n  weights:\n    max_staleness: -5m\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.NewDefaultConfig()
			err := config.Load(writeFile(t, tc.body), cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "validation failed")
		})
	}
}

func TestLoad_ReadAndParseErrors(t *testing.T) {
	cfg := config.NewDefaultConfig()
	err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"), cfg)
	require.ErrorIs(t, err, os.ErrNotExist)

	err = config.Load(writeFile(t, "app: [unterminated"), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestDecode_RejectsUnknownKeys(t *testing.T) {
	cfg := config.NewDefaultConfig()
	err := config.Decode([]byte("planner:\n  weights:\n    risk_wieght: 0.9\n"), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "risk_wieght")
	assert.Equal(t, 0.4, cfg.Planner.Weights.RiskWeight)
}

func TestDecode_EmptyDocumentKeepsDefaults(t *testing.T) {
	cfg := config.NewDefaultConfig()
	require.NoError(t, config.Decode(nil, cfg))
	assert.Equal(t, config.NewDefaultConfig(), cfg)
}

func TestLoadOrDefault(t *testing.T) {
	cfg := config.NewDefaultConfig()
	require.NoError(t, config.LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"), cfg))
	assert.Equal(t, 8080, cfg.App.HTTP.Port)

	require.NoError(t, config.LoadOrDefault("", cfg))

	require.NoError(t, config.LoadOrDefault(writeFile(t, "app:\n  http:\n    port: 7000\n"), cfg))
	assert.Equal(t, 7000, cfg.App.HTTP.Port)

	cfg.App.HTTP.Port = 0
	require.Error(t, config.LoadOrDefault("", cfg))
}
