package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "console", cfg.Logging.Output)
	assert.Equal(t, filepath.Join("data", "reports"), cfg.Paths.ReportsDir)
	assert.Equal(t, "CLO 0", cfg.Grading.BonusLabel)
	assert.Equal(t, "Bonus", cfg.Grading.BonusModule)
	assert.Equal(t, DefaultOverallWeights(), cfg.Grading.OverallWeights)
}

func TestLoadFrom_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "obecli.yaml")
	content := `
logging:
  level: debug
  output: file
  file_path: custom/obecli.log
paths:
  reports_dir: out/reports
grading:
  overall_weights:
    "CLO 1": 0.25
    "CLO 2": 0.25
  bonus_label: "CLO 0"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "file", cfg.Logging.Output)
	assert.Equal(t, "out/reports", cfg.Paths.ReportsDir)
	assert.Equal(t, map[string]float64{"CLO 1": 0.25, "CLO 2": 0.25}, cfg.Grading.OverallWeights)
	// Unset sections still receive defaults.
	assert.Equal(t, filepath.Join("data", "payloads"), cfg.Paths.PayloadsDir)
}

func TestLoadFrom_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "obecli.yaml")
	content := `
logging:
  level: debug
  output: file
paths:
  reports_dir: out/reports
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	t.Setenv("OBE_LOGGING_LEVEL", "warn")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	// The set env var wins over the file.
	assert.Equal(t, "warn", cfg.Logging.Level)
	// Fields without an env var keep their file values instead of being
	// reset to defaults.
	assert.Equal(t, "file", cfg.Logging.Output)
	assert.Equal(t, "out/reports", cfg.Paths.ReportsDir)
}

func TestLoadFrom_InvalidWeights(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "weight above one",
			yaml: `
grading:
  overall_weights:
    "CLO 1": 1.5
`,
			wantErr: "out of range",
		},
		{
			name: "weights exceed total",
			yaml: `
grading:
  overall_weights:
    "CLO 1": 0.6
    "CLO 2": 0.6
`,
			wantErr: "must not exceed 1.0",
		},
		{
			name: "bad logging output",
			yaml: `
logging:
  output: socket
`,
			wantErr: "invalid logging output",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "obecli.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0644))

			_, err := LoadFrom(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{
		Paths: PathsConfig{
			PayloadsDir: filepath.Join(dir, "payloads"),
			ReportsDir:  filepath.Join(dir, "reports"),
			LogsDir:     filepath.Join(dir, "logs"),
		},
	}

	require.NoError(t, cfg.EnsureDirectories())

	for _, sub := range []string{"payloads", "reports", "logs"} {
		info, err := os.Stat(filepath.Join(dir, sub))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}
